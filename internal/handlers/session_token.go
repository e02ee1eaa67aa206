package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Razzsha/quickcart-team/internal/models"
	"github.com/Razzsha/quickcart-team/internal/session"
)

// openSession stamps a fresh session into the slot for kind, overwriting any
// previous occupant, and signs a token bound to it through the sid claim.
func openSession(ctx context.Context, store session.Store, kind session.Kind, user models.User, jwtSecret string, ttl time.Duration) (gin.H, error) {
	sess := session.New(session.Principal{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
	}, ttl)

	if err := store.Save(ctx, kind, sess); err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"sid":  sess.ID,
		"sub":  user.ID.Hex(),
		"role": user.Role,
		"exp":  sess.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		return nil, err
	}

	return gin.H{
		"token":     token,
		"loginAt":   sess.LoginAt,
		"expiresAt": sess.ExpiresAt,
	}, nil
}
