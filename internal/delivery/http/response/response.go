package response

import (
	"github.com/gin-gonic/gin"
)

// requestIDKey matches middleware.RequestIDKey; the middleware package imports
// this one, so the key is repeated here.
const requestIDKey = "RequestID"

// Response is the JSON envelope of every API answer
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(requestIDKey),
	})
}

// Error sends an error response. detail is optional (field messages, etc.)
func Error(c *gin.Context, code int, message string, detail interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     detail,
		RequestID: c.GetString(requestIDKey),
	})
}
