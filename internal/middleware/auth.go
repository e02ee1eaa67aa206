package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Razzsha/quickcart-team/internal/models"
	"github.com/Razzsha/quickcart-team/internal/session"
)

// SessionGuard validates the bearer token against the per-kind session slot.
// The check runs fresh on every request: it covers the navigation-time gap
// between two expiry sweeps. A storage failure degrades to "not
// authenticated" rather than a server error.
func SessionGuard(store session.Store, kind session.Kind, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sessionID, _ := claims["sid"].(string)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if kind == session.KindAdmin {
			if role, _ := claims["role"].(string); role != models.RoleAdmin {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		sess, err := store.Load(ctx, kind)
		if err != nil {
			log.Println("[AUTH] [ERROR] session load failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		if sess == nil || sess.ID != sessionID || !sess.Valid(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("session", *sess)
		if userID, err := primitive.ObjectIDFromHex(sess.User.ID); err == nil {
			c.Set("userId", userID)
		}
		c.Next()
	}
}

// AdminGuard gates the admin back office.
func AdminGuard(store session.Store, secret string) gin.HandlerFunc {
	return SessionGuard(store, session.KindAdmin, secret)
}

// UserGuard gates customer-only areas.
func UserGuard(store session.Store, secret string) gin.HandlerFunc {
	return SessionGuard(store, session.KindUser, secret)
}
