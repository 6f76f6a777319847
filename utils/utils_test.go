package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Govind-619/storefront/cart"
	"github.com/Govind-619/storefront/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{&cart.CouponError{Code: "X", Reason: cart.CouponExpired}, http.StatusBadRequest},
		{cart.ErrInsufficientStock, http.StatusBadRequest},
		{cart.ErrEmptyCart, http.StatusBadRequest},
		{cart.ErrLineNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", cart.ErrProductNotFound), http.StatusNotFound},
		{cart.ErrBusy, http.StatusConflict},
		{storage.ErrDuplicate, http.StatusConflict},
		{fmt.Errorf("%w: timeout", cart.ErrCatalogUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, FromError(tt.err).Code, tt.err.Error())
	}

	appErr := FromError(&cart.CouponError{Code: "X", Reason: cart.CouponUsageExceeded})
	assert.Equal(t, "usage_exceeded", appErr.Reason)

	inactive := FromError(&cart.CouponError{Code: "OFF", Reason: cart.CouponInactive})
	unknown := FromError(&cart.CouponError{Code: "OFF", Reason: cart.CouponNotFound})
	assert.Equal(t, "not_found", inactive.Reason)
	assert.Equal(t, unknown.Error(), inactive.Error())
}

func TestPriceFormatter(t *testing.T) {
	format, err := PriceFormatter("en-US")
	require.NoError(t, err)
	assert.Equal(t, "$1,234,567", format(1234567))
	assert.Equal(t, "$0", format(0))

	_, err = PriceFormatter("not a locale!")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "u-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = ValidateToken("other", token)
	assert.Error(t, err)

	expired, err := GenerateToken("secret", "u-1", "", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken("secret", expired)
	assert.Error(t, err)
}

func TestPaginationSlice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=2&limit=2", nil)

	p := NewPagination(c)
	got := Slice(p, []int{1, 2, 3, 4, 5})
	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, int64(5), p.Total)
	assert.Equal(t, 3, p.LastPage)

	p.Offset = 10
	assert.Empty(t, Slice(p, []int{1}))
}

func TestResponseCarriesNotices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		AttachNotices(c, []cart.Notice{{Level: cart.NoticeSuccess, Message: "hi"}})
		Success(c, "done", gin.H{"n": 1})
	})
	r.GET("/fail", func(c *gin.Context) { RespondError(c, cart.ErrBusy) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	resp := MakeTestRequest(t, r, TestRequest{Method: http.MethodGet, Path: "/ok"})
	AssertResponse(t, resp, http.StatusOK, "success")
	notices := resp.Body["notices"].([]interface{})
	require.Len(t, notices, 1)
	assert.NotEmpty(t, resp.Raw.Header().Get("X-Request-ID"))

	resp = MakeTestRequest(t, r, TestRequest{Method: http.MethodGet, Path: "/fail"})
	AssertResponse(t, resp, http.StatusConflict, "error")

	resp = MakeTestRequest(t, r, TestRequest{Method: http.MethodGet, Path: "/panic"})
	AssertResponse(t, resp, http.StatusInternalServerError, "error")
}

func TestValidation(t *testing.T) {
	assert.Empty(t, ValidateCouponCode("SAVE10"))
	assert.Empty(t, ValidateCouponCode("BLACK-FRIDAY_24"))
	assert.NotEmpty(t, ValidateCouponCode("AB"))
	assert.NotEmpty(t, ValidateCouponCode("TWO WORDS"))

	assert.Empty(t, ValidateSearch("blue pen"))
	assert.NotEmpty(t, ValidateSearch("<script>alert(1)</script>"))

	var errs FieldValidationErrors
	errs.Add("code", "")
	assert.Empty(t, errs)
	errs.Add("code", "too short")
	errs.Add("expiry", "must be in the future")
	assert.Equal(t, "code: too short; expiry: must be in the future", errs.Error())
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://shop.example.com"}))
	r.GET("/cart", func(c *gin.Context) { Success(c, "ok", nil) })

	listed := MakeTestRequest(t, r, TestRequest{Method: http.MethodGet, Path: "/cart",
		Headers: map[string]string{"Origin": "https://shop.example.com"}})
	assert.Equal(t, "https://shop.example.com", listed.Raw.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", listed.Raw.Header().Get("Access-Control-Allow-Credentials"))

	other := MakeTestRequest(t, r, TestRequest{Method: http.MethodGet, Path: "/cart",
		Headers: map[string]string{"Origin": "https://evil.example.com"}})
	assert.Empty(t, other.Raw.Header().Get("Access-Control-Allow-Origin"))

	preflight := MakeTestRequest(t, r, TestRequest{Method: http.MethodOptions, Path: "/cart"})
	assert.Equal(t, http.StatusNoContent, preflight.StatusCode)
}
