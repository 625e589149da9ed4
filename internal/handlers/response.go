package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All endpoints answer with the same envelope: {success, message, ...data}.

func respondOK(c *gin.Context, message string, data gin.H) {
	respond(c, http.StatusOK, message, data)
}

func respond(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
