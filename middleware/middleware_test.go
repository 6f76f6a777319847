package middleware

import (
	"net/http"
	"testing"

	"github.com/Govind-619/storefront/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("storefront", cookie.NewStore([]byte("session-secret"))), SessionID())
	r.GET("/whoami", OptionalAuth(secret), func(c *gin.Context) {
		utils.Success(c, "ok", gin.H{"user": c.GetString(UserIDKey), "session": c.GetString(SessionIDKey)})
	})
	r.GET("/admin", AdminOnly(secret), func(c *gin.Context) {
		utils.Success(c, "ok", nil)
	})
	return r
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestOptionalAuth(t *testing.T) {
	r := testRouter()

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/whoami"})
	utils.AssertResponse(t, resp, http.StatusOK, "success")
	assert.Equal(t, "", resp.Body["data"].(map[string]interface{})["user"])

	token := utils.GetTestToken(t, secret, "u-7", utils.RoleCustomer)
	resp = utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/whoami", Headers: bearer(token)})
	assert.Equal(t, "u-7", resp.Body["data"].(map[string]interface{})["user"])

	resp = utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/whoami", Headers: bearer("garbage")})
	utils.AssertResponse(t, resp, http.StatusOK, "success")
	assert.Equal(t, "", resp.Body["data"].(map[string]interface{})["user"])
}

func TestSessionIDIsStable(t *testing.T) {
	r := testRouter()

	first := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/whoami"})
	require.NotEmpty(t, first.Cookies)
	id := first.Body["data"].(map[string]interface{})["session"]
	assert.NotEmpty(t, id)

	second := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/whoami", Cookies: first.Cookies})
	assert.Equal(t, id, second.Body["data"].(map[string]interface{})["session"])
}

func TestAdminOnly(t *testing.T) {
	r := testRouter()

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/admin"})
	utils.AssertResponse(t, resp, http.StatusUnauthorized, "error")

	customer := utils.GetTestToken(t, secret, "u-1", utils.RoleCustomer)
	resp = utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/admin", Headers: bearer(customer)})
	utils.AssertResponse(t, resp, http.StatusForbidden, "error")

	admin := utils.GetTestToken(t, secret, "root", utils.RoleAdmin)
	resp = utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/admin", Headers: bearer(admin)})
	utils.AssertResponse(t, resp, http.StatusOK, "success")
}
