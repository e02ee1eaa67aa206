package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Razzsha/quickcart-team/internal/models"
	"github.com/Razzsha/quickcart-team/internal/notifier"
)

type CreateOrderRequest struct {
	UserID  string              `json:"userId" binding:"required"`
	Items   []models.OrderItem  `json:"items" binding:"required,min=1"`
	Amount  float64             `json:"amount" binding:"required,gt=0"`
	Address models.OrderAddress `json:"address" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// resolveNotifyNumber picks the WhatsApp target for an order notification.
// The delivery phone wins when it is usable; a placeholder delivery number
// falls back to the account number. When both are placeholders there is no
// target and the notification is skipped.
func resolveNotifyNumber(deliveryPhone, accountPhone string) string {
	if deliveryPhone != "" && !notifier.IsPlaceholder(deliveryPhone) {
		return deliveryPhone
	}
	if accountPhone != "" && !notifier.IsPlaceholder(accountPhone) {
		return accountPhone
	}
	return ""
}

// statusChangeNotification decides whether a persisted status update should
// notify the customer. Setting an order to the status it already has is a
// no-op on the wire.
func statusChangeNotification(order models.Order, newStatus, currency string) (string, bool) {
	if order.Status == newStatus {
		return "", false
	}
	return notifier.OrderStatusMessage(order.ID.Hex(), newStatus, order.Amount, currency), true
}

// CreateOrder records a cash-on-delivery order in Pending status and sends
// the order confirmation over WhatsApp. Notification failures never fail the
// order itself.
func CreateOrder(db *mongo.Database, dispatch *notifier.Dispatcher, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "CREATE ORDER")

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user. Please sign in again."})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := ensureDBConnection(ctx, db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, "CREATE ORDER", "database unavailable")
			return
		}

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Println("[ORDER] [ERROR] create order user lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		now := time.Now()
		order := models.Order{
			UserID:        userID,
			Items:         req.Items,
			Amount:        req.Amount,
			Address:       req.Address,
			Status:        models.StatusPending,
			PaymentMethod: "COD",
			PaymentStatus: "Pending",
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] order insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		order.ID, _ = res.InsertedID.(primitive.ObjectID)

		if to := resolveNotifyNumber(order.Address.PhoneNumber, user.PhoneNumber); to != "" {
			dispatch.Enqueue(to, notifier.OrderCreatedMessage(order.ID.Hex(), order.Amount, currency))
		} else {
			log.Println("[ORDER] [WARN] no usable phone number for order notification:", order.ID.Hex())
		}

		log.Println("[ORDER] [INFO] order placed:", order.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"order":   order,
		})
	}
}

// GetUserOrders lists a customer's orders, newest first.
func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user. Please sign in again."})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
		if err != nil {
			log.Println("[ORDER] [ERROR] user orders query failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := []models.Order{}
		if err := cursor.All(ctx, &orders); err != nil {
			log.Println("[ORDER] [ERROR] user orders decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GetAllOrders lists every order for the back office, newest first.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Println("[ORDER] [ERROR] all orders query failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := []models.Order{}
		if err := cursor.All(ctx, &orders); err != nil {
			log.Println("[ORDER] [ERROR] all orders decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// UpdateOrderStatus moves an order to a new status and notifies the customer
// when the status actually changed. The status write commits before the
// notification is queued, so a downed WhatsApp channel never blocks the back
// office.
func UpdateOrderStatus(db *mongo.Database, dispatch *notifier.Dispatcher, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "UPDATE ORDER STATUS")

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !models.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Println("[ORDER] [ERROR] order lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if !models.CanTransition(order.Status, req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
			return
		}

		_, err = db.Collection("orders").UpdateByID(ctx, orderID, bson.M{
			"$set": bson.M{"status": req.Status, "updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[ORDER] [ERROR] order status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if msg, notify := statusChangeNotification(order, req.Status, currency); notify {
			var user models.User
			if err := db.Collection("users").FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err != nil {
				log.Println("[ORDER] [WARN] status notify user lookup failed:", err)
			}
			if to := resolveNotifyNumber(order.Address.PhoneNumber, user.PhoneNumber); to != "" {
				dispatch.Enqueue(to, msg)
			} else {
				log.Println("[ORDER] [WARN] no usable phone number for status notification:", orderID.Hex())
			}
		}

		order.Status = req.Status
		log.Println("[ORDER] [INFO] order status updated:", orderID.Hex(), "->", req.Status)
		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated",
			"order":   order,
		})
	}
}
