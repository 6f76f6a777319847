package utils

import (
	"net/http"

	"github.com/Govind-619/storefront/cart"
	"github.com/gin-gonic/gin"
)

const noticesKey = "notices"

// StandardResponse represents the standard API response structure
type StandardResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Data    interface{}   `json:"data,omitempty"`
	Notices []cart.Notice `json:"notices,omitempty"`
}

// AttachNotices queues shopper notices for the response written next.
func AttachNotices(c *gin.Context, notices []cart.Notice) {
	if len(notices) == 0 {
		return
	}
	if prev, ok := c.Get(noticesKey); ok {
		notices = append(prev.([]cart.Notice), notices...)
	}
	c.Set(noticesKey, notices)
}

func pendingNotices(c *gin.Context) []cart.Notice {
	if v, ok := c.Get(noticesKey); ok {
		return v.([]cart.Notice)
	}
	return nil
}

func respond(c *gin.Context, code int, status, message string, data interface{}) {
	c.JSON(code, StandardResponse{
		Status:  status,
		Message: message,
		Data:    data,
		Notices: pendingNotices(c),
	})
}

// Success sends a standardized success response
func Success(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, "success", message, data)
}

// Created sends a standardized created response (201)
func Created(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, "success", message, data)
}

// SuccessWithPagination sends a paginated success response
func SuccessWithPagination(c *gin.Context, message string, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
		"pagination": gin.H{
			"total":       p.Total,
			"page":        p.Page,
			"per_page":    p.Limit,
			"total_pages": p.LastPage,
		},
	})
}

// Error sends a standardized error response
func Error(c *gin.Context, statusCode int, message string, err interface{}) {
	var data interface{}
	if err != nil {
		data = gin.H{"error": err}
	}
	respond(c, statusCode, "error", message, data)
}

// RespondError maps err with FromError and writes it.
func RespondError(c *gin.Context, err error) {
	appErr := FromError(err)
	if appErr.Code >= http.StatusInternalServerError {
		LogError("Request failed: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	detail := gin.H{"error": appErr.Error()}
	if appErr.Reason != "" {
		detail["reason"] = appErr.Reason
	}
	respond(c, appErr.Code, "error", appErr.Message, detail)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string, err interface{}) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string, err interface{}) {
	Error(c, http.StatusInternalServerError, message, err)
}
