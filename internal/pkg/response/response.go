package response

import "github.com/gin-gonic/gin"

// Message writes {"message": message}.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// WithPayload writes {"message": message, key: payload}.
func WithPayload(c *gin.Context, statusCode int, message, key string, payload any) {
	c.JSON(statusCode, gin.H{
		"message": message,
		key:       payload,
	})
}

// Error writes {"message": message, "error": err.Error()} and records err on
// the context so the request logger picks it up.
func Error(c *gin.Context, statusCode int, message string, err error) {
	_ = c.Error(err)
	c.JSON(statusCode, gin.H{
		"message": message,
		"error":   err.Error(),
	})
}
