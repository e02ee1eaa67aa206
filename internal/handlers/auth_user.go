package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Razzsha/quickcart-team/internal/models"
	"github.com/Razzsha/quickcart-team/internal/notifier"
	"github.com/Razzsha/quickcart-team/internal/session"
)

type SignupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user models.User) gin.H {
	return gin.H{
		"id":          user.ID.Hex(),
		"name":        user.Name,
		"email":       user.Email,
		"phoneNumber": user.PhoneNumber,
		"isVerified":  user.IsVerified,
	}
}

// Signup creates an unverified account and sends the OTP over WhatsApp. A
// duplicate signup for a still-unverified account refreshes the name,
// credential, phone number and code instead of rejecting the request, so an
// unverified account is always recoverable by signing up again.
func Signup(db *mongo.Database, dispatch *notifier.Dispatcher, otpTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		name := strings.TrimSpace(req.Name)
		phone := strings.TrimSpace(req.PhoneNumber)
		if email == "" || name == "" || phone == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		code, err := generateOTP()
		if err != nil {
			log.Println("[AUTH] [ERROR] otp generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate OTP"})
			return
		}
		expiry := time.Now().Add(otpTTL)

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		var existing models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		if err == nil {
			if existing.IsVerified {
				log.Println("[AUTH] [ERROR] signup for verified email:", email)
				c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
				return
			}

			// Unverified duplicate: refresh everything, superseding the
			// previously issued code.
			_, err = db.Collection("users").UpdateByID(ctx, existing.ID, bson.M{
				"$set": bson.M{
					"name":         name,
					"passwordHash": string(hash),
					"phoneNumber":  phone,
					"otp":          code,
					"otpExpiry":    expiry,
					"updatedAt":    time.Now(),
				},
			})
			if err != nil {
				log.Println("[AUTH] [ERROR] signup refresh failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}

			dispatch.Enqueue(phone, notifier.OTPMessage(code))
			log.Println("[AUTH] [INFO] OTP re-issued for unverified account:", email)
			c.JSON(http.StatusOK, gin.H{
				"message": "OTP re-sent to your WhatsApp number",
				"userId":  existing.ID.Hex(),
			})
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] signup lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		now := time.Now()
		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			PhoneNumber:  phone,
			Role:         models.RoleCustomer,
			IsVerified:   false,
			OTP:          code,
			OTPExpiry:    &expiry,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		id, _ := res.InsertedID.(primitive.ObjectID)

		dispatch.Enqueue(phone, notifier.OTPMessage(code))
		log.Println("[AUTH] [INFO] signup created, OTP issued:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "OTP sent to your WhatsApp number",
			"userId":  id.Hex(),
		})
	}
}

// VerifyOTP promotes an unverified account on a matching, unexpired code and
// clears the OTP record. An expired code leaves the record intact; a fresh
// signup is required to obtain a new one.
func VerifyOTP(db *mongo.Database, dispatch *notifier.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Println("[AUTH] [ERROR] verify lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		switch checkOTP(user, strings.TrimSpace(req.OTP), time.Now()) {
		case otpAlreadyVerified:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account already verified"})
			return
		case otpMissing, otpMismatch:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
			return
		case otpExpired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired. Please request a new one."})
			return
		}

		_, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
			"$unset": bson.M{"otp": "", "otpExpiry": ""},
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] verify update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		user.IsVerified = true
		user.OTP = ""
		user.OTPExpiry = nil

		dispatch.Enqueue(user.PhoneNumber, notifier.AccountVerifiedMessage())
		log.Println("[AUTH] [INFO] account verified:", email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Account verified successfully",
			"user":    userResponse(user),
		})
	}
}

// Signin authenticates a verified account and opens the user session slot,
// overwriting whatever session was there before.
func Signin(db *mongo.Database, store session.Store, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
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
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] signin unknown email")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		if !user.IsVerified {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please verify your account first. Check your WhatsApp for OTP."})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] signin invalid credentials for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		payload, err := openSession(ctx, store, session.KindUser, user, jwtSecret, sessionTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] signin session create failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session could not be created"})
			return
		}

		log.Println("[AUTH] [INFO] signin succeeded:", email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Sign in successful",
			"user":    userResponse(user),
			"session": payload,
		})
	}
}

// Logout clears the slot for the given kind and reports the logout audit
// record. Clearing an already-empty slot is not an error.
func Logout(store session.Store, kind session.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		audit, err := store.Clear(ctx, kind)
		if err != nil {
			log.Println("[AUTH] [ERROR] logout clear failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}

		resp := gin.H{"message": "logged out"}
		if audit != nil {
			resp["lastLogout"] = gin.H{
				"logoutAt":        audit.LogoutAt,
				"durationSeconds": audit.DurationSeconds,
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SessionInfo reports whether the slot for the given kind currently holds a
// valid session. Storage trouble degrades to "not authenticated".
func SessionInfo(store session.Store, kind session.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		sess, err := store.Load(ctx, kind)
		if err != nil {
			log.Println("[SESSION] [ERROR] session load failed:", err)
			c.JSON(http.StatusOK, gin.H{"active": false})
			return
		}
		if sess == nil || !sess.Valid(time.Now()) {
			c.JSON(http.StatusOK, gin.H{"active": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"active": true,
			"session": gin.H{
				"user":      sess.User,
				"loginAt":   sess.LoginAt,
				"expiresAt": sess.ExpiresAt,
			},
		})
	}
}
