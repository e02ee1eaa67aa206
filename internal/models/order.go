package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// statusTransitions is the full operator-driven transition policy. Every
// pair is allowed: the back office may move an order between any two states,
// including reopening a Completed or Cancelled order. Keeping the table
// explicit makes that looseness auditable instead of implicit.
var statusTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusPending:    true,
		StatusProcessing: true,
		StatusCompleted:  true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusPending:    true,
		StatusProcessing: true,
		StatusCompleted:  true,
		StatusCancelled:  true,
	},
	StatusCompleted: {
		StatusPending:    true,
		StatusProcessing: true,
		StatusCompleted:  true,
		StatusCancelled:  true,
	},
	StatusCancelled: {
		StatusPending:    true,
		StatusProcessing: true,
		StatusCompleted:  true,
		StatusCancelled:  true,
	},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an operator may move an order from one
// status to another.
func CanTransition(from, to string) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// OrderProduct is the product snapshot captured at checkout time.
type OrderProduct struct {
	ProductID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	OfferPrice  float64            `bson:"offerPrice" json:"offerPrice"`
	Image       []string           `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
}

// OrderItem pairs a product snapshot with a quantity.
type OrderItem struct {
	Product  OrderProduct `bson:"product" json:"product"`
	Quantity int          `bson:"quantity" json:"quantity"`
}

// OrderAddress is the delivery address captured at checkout time.
type OrderAddress struct {
	FullName    string `bson:"fullName" json:"fullName"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	Pincode     string `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Area        string `bson:"area" json:"area"`
	City        string `bson:"city" json:"city"`
	State       string `bson:"state" json:"state"`
}

// Order defines the persisted order document.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Amount        float64            `bson:"amount" json:"amount"`
	Address       OrderAddress       `bson:"address" json:"address"`
	Status        string             `bson:"status" json:"status"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
