package middleware

import (
	"net/http"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/utils"

	"github.com/gin-gonic/gin"
)

const OwnerIDKey = "ownerID"

// RequireOwner resolves the authoring account from a Bearer JWT or from
// the X-User-ID header a gateway sets, and rejects requests with neither.
// Token issuance itself lives outside this service.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := utils.GetUserIDFromToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
				"code":  "INVALID_TOKEN",
			})
			c.Abort()
			return
		}
		if ownerID == "" {
			ownerID = c.GetHeader("X-User-ID")
		}
		if ownerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

// OwnerID returns the resolved owner id for the current request.
func OwnerID(c *gin.Context) string {
	return c.GetString(OwnerIDKey)
}
