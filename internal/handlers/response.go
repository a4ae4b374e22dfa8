package handlers

import (
	"github.com/gin-gonic/gin"
)

// RespondOK wraps a payload in the {"status": "success"} envelope. Extra
// fields are merged at the top level to match the existing client contract.
func RespondOK(c *gin.Context, code int, fields gin.H) {
	body := gin.H{"status": "success"}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}
