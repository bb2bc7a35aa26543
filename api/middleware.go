package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ownerHeader carries the pre-authenticated owner identity. Authentication
// itself happens upstream; this service only requires the identity to be
// present and threads it through every call.
const ownerHeader = "X-Owner-ID"

const ownerContextKey = "owner_id"

// RequireOwner rejects requests without an owner identity and stores the
// identity in the request context for the handlers.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader(ownerHeader)
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ownerHeader + " header is required"})
			return
		}
		c.Set(ownerContextKey, owner)
		c.Next()
	}
}

// ownerID returns the authenticated owner identity set by RequireOwner.
func ownerID(c *gin.Context) string {
	return c.GetString(ownerContextKey)
}
