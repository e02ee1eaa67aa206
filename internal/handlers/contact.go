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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Razzsha/quickcart-team/internal/models"
)

type ContactRequest struct {
	Type        string `json:"type" binding:"required,oneof=sales support"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

// SubmitContact records a sales or support request from the storefront.
func SubmitContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		contact := models.Contact{
			Type:        req.Type,
			Name:        strings.TrimSpace(req.Name),
			Email:       strings.ToLower(strings.TrimSpace(req.Email)),
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Message:     strings.TrimSpace(req.Message),
			Status:      "new",
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("contacts").InsertOne(ctx, contact)
		if err != nil {
			log.Println("[CONTACT] [ERROR] contact insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		contact.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Println("[CONTACT] [INFO] contact request recorded:", contact.Type, contact.Email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "We received your message and will get back to you soon",
			"contact": contact,
		})
	}
}

// ListContacts returns contact requests for the back office, newest first.
func ListContacts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("contacts").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Println("[CONTACT] [ERROR] contact query failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		contacts := []models.Contact{}
		if err := cursor.All(ctx, &contacts); err != nil {
			log.Println("[CONTACT] [ERROR] contact decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"contacts": contacts})
	}
}
