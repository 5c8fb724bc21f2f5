package handler

import "github.com/gin-gonic/gin"

// respondDetail sends the flat error shape of the public API:
// {"detail": "..."}.
func respondDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}
