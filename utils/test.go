package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
	Cookies []*http.Cookie
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Body       map[string]interface{}
	Cookies    []*http.Cookie
	Raw        *httptest.ResponseRecorder
}

// MakeTestRequest makes a test HTTP request
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	for _, ck := range req.Cookies {
		httpReq.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	var responseBody map[string]interface{}
	if w.Body.Len() > 0 && json.Valid(w.Body.Bytes()) {
		if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
			t.Fatalf("Failed to unmarshal response body: %v", err)
		}
	}

	return TestResponse{
		StatusCode: w.Code,
		Body:       responseBody,
		Cookies:    w.Result().Cookies(),
		Raw:        w,
	}
}

// AssertResponse asserts the status code and the top-level status field
func AssertResponse(t *testing.T, response TestResponse, expectedStatusCode int, expectedStatus string) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode, "body: %v", response.Body)
	if expectedStatus != "" {
		assert.Equal(t, expectedStatus, response.Body["status"])
	}
}

// GetTestToken generates a signed token for tests
func GetTestToken(t *testing.T, secret, userID, role string) string {
	t.Helper()
	token, err := GenerateToken(secret, userID, role, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}
