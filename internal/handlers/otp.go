package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Razzsha/quickcart-team/internal/models"
)

// generateOTP returns a cryptographically random 6-digit code, uniformly
// distributed over 000000-999999.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type otpStatus int

const (
	otpOK otpStatus = iota
	otpAlreadyVerified
	otpMissing
	otpMismatch
	otpExpired
)

// checkOTP decides the outcome of a verification attempt. Mismatch is
// reported before expiry, matching the order the storefront surfaces the
// errors in. An expired record is left intact so the caller can tell the
// user a fresh code is required.
func checkOTP(user models.User, submitted string, now time.Time) otpStatus {
	if user.IsVerified {
		return otpAlreadyVerified
	}
	if user.OTP == "" || user.OTPExpiry == nil {
		return otpMissing
	}
	if user.OTP != submitted {
		return otpMismatch
	}
	if !now.Before(*user.OTPExpiry) {
		return otpExpired
	}
	return otpOK
}
