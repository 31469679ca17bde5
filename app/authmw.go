package app

import (
	"net/http"

	"libkiosk/db"
	"libkiosk/token"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer access token and loads the caller. The
// user row is checked on every request so deactivated accounts lose access
// immediately, not at token expiry.
func AuthRequired(repo *db.Repo, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := token.FromAuthHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		claims, err := token.Parse(cfg.JWTSecret, raw)
		if err != nil || claims.Type != token.TypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid token"})
			return
		}

		u, err := repo.FindUserByID(c.Request.Context(), claims.UserID)
		if err != nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		c.Set("userID", u.ID)
		c.Set("userEmail", u.Email)
		c.Set("isAdmin", u.IsAdmin())
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if admin, _ := c.Get("isAdmin"); admin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
