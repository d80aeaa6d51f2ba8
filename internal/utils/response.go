package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope the dashboard expects on every gateway reply.
// It deliberately mirrors the upstream marketplace envelope so the UI can
// parse both with the same code path.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Count      int         `json:"count,omitempty"`
	Total      int         `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Pagination holds pagination metadata for list responses.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithPagination writes a success list response with page metadata.
func SuccessWithPagination(c *gin.Context, code int, data interface{}, count, total, page, pages int) {
	// safety defaults
	if page <= 0 {
		page = 1
	}
	c.JSON(code, Response{
		Success:    true,
		Data:       data,
		Count:      count,
		Total:      total,
		Pagination: &Pagination{Page: page, Pages: pages},
	})
}

// Error writes an error response with the provided code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, Response{
		Success: false,
		Error:   errCode,
		Message: message,
	})
}
