package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
)

// respondError sends a stable user-facing message. Never put internal
// error detail or credential material in msg.
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// logAndRespondError logs the internal error server-side and sends only
// the opaque message to the client.
func logAndRespondError(c *gin.Context, status int, err error, msg string) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	respondError(c, status, msg)
}
