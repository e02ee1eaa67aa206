package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Razzsha/quickcart-team/internal/models"
	"github.com/Razzsha/quickcart-team/internal/session"
)

// AdminLogin authenticates against admin accounts only and opens the admin
// session slot. The admin slot is independent of the user slot, so an admin
// and a customer can be signed in at the same time.
func AdminLogin(db *mongo.Database, store session.Store, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email, "role": models.RoleAdmin}).Decode(&user)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] admin login lookup failed:", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] admin login invalid credentials for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		payload, err := openSession(ctx, store, session.KindAdmin, user, jwtSecret, sessionTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin session create failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session could not be created"})
			return
		}

		log.Println("[AUTH] [INFO] admin login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Admin login successful",
			"user":    userResponse(user),
			"session": payload,
		})
	}
}
