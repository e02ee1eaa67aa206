package handlers

import (
	"context"
	"fmt"
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

func validatePricing(price, offerPrice float64) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if offerPrice <= 0 {
		return fmt.Errorf("offer price must be greater than zero")
	}
	if offerPrice > price {
		return fmt.Errorf("offer price cannot exceed price")
	}
	return nil
}

// GetProducts lists products for the storefront, optionally filtered by
// category and paginated through ?page and ?limit.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
			return
		}

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			if !models.ValidCategory(category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
				return
			}
			filter["category"] = category
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] product count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] product query failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := []models.Product{}
		if err := cursor.All(ctx, &products); err != nil {
			log.Println("[PRODUCT] [ERROR] product decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"page":     page,
			"limit":    limit,
			"total":    total,
		})
	}
}

// GetProduct returns a single product by id.
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Println("[PRODUCT] [ERROR] product lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// CreateProduct adds a catalog item from a multipart form with image files.
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		if !input.NameSet || input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
			return
		}
		if !input.CategorySet || !models.ValidCategory(input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		if !input.PriceSet || !input.OfferPriceSet {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price and offer price are required"})
			return
		}
		if err := validatePricing(input.Price, input.OfferPrice); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !input.ImageSet {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one product image is required"})
			return
		}

		var userID string
		if id, ok := c.Get("userId"); ok {
			if oid, ok := id.(primitive.ObjectID); ok {
				userID = oid.Hex()
			}
		}

		now := time.Now()
		product := models.Product{
			UserID:      userID,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			OfferPrice:  input.OfferPrice,
			Image:       input.ImagePaths,
			Category:    input.Category,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] product insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		product.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Println("[PRODUCT] [INFO] product created:", product.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "Product added successfully",
			"product": product,
		})
	}
}

// UpdateProduct patches a catalog item. Only fields present in the form are
// changed; fresh images replace the old set and the old files are removed
// from disk.
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Println("[PRODUCT] [ERROR] product lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if input.NameSet {
			if input.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product name cannot be empty"})
				return
			}
			update["name"] = input.Name
		}
		if input.DescriptionSet {
			update["description"] = input.Description
		}
		if input.CategorySet {
			if !models.ValidCategory(input.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
				return
			}
			update["category"] = input.Category
		}

		price := existing.Price
		offerPrice := existing.OfferPrice
		if input.PriceSet {
			price = input.Price
			update["price"] = input.Price
		}
		if input.OfferPriceSet {
			offerPrice = input.OfferPrice
			update["offerPrice"] = input.OfferPrice
		}
		if input.PriceSet || input.OfferPriceSet {
			if err := validatePricing(price, offerPrice); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		if input.ImageSet {
			update["image"] = input.ImagePaths
		}

		_, err = db.Collection("products").UpdateByID(ctx, productID, bson.M{"$set": update})
		if err != nil {
			log.Println("[PRODUCT] [ERROR] product update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if input.ImageSet {
			for _, old := range existing.Image {
				if err := safeDeleteUpload(old); err != nil {
					log.Println("[PRODUCT] [WARN] stale image cleanup failed:", err)
				}
			}
		}

		log.Println("[PRODUCT] [INFO] product updated:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}

// DeleteProduct removes a catalog item and its stored images.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Println("[PRODUCT] [ERROR] product lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID}); err != nil {
			log.Println("[PRODUCT] [ERROR] product delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		for _, old := range existing.Image {
			if err := safeDeleteUpload(old); err != nil {
				log.Println("[PRODUCT] [WARN] image cleanup failed:", err)
			}
		}

		log.Println("[PRODUCT] [INFO] product deleted:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
