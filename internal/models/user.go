package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a storefront account. OTP and OTPExpiry are only present
// while the account is unverified; both are unset on successful verification.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	Role         string             `bson:"role" json:"role"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	OTP          string             `bson:"otp,omitempty" json:"-"`
	OTPExpiry    *time.Time         `bson:"otpExpiry,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
