package handlers

import (
	"testing"
	"time"

	"github.com/Razzsha/quickcart-team/internal/models"
)

func TestGenerateOTPShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		if err != nil {
			t.Fatalf("generateOTP: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected varying codes across generations")
	}
}

func TestCheckOTP(t *testing.T) {
	now := time.Now()
	future := now.Add(5 * time.Minute)
	past := now.Add(-time.Minute)

	cases := []struct {
		name      string
		user      models.User
		submitted string
		want      otpStatus
	}{
		{
			name:      "matching unexpired code verifies",
			user:      models.User{OTP: "123456", OTPExpiry: &future},
			submitted: "123456",
			want:      otpOK,
		},
		{
			name:      "already verified account",
			user:      models.User{IsVerified: true},
			submitted: "123456",
			want:      otpAlreadyVerified,
		},
		{
			name:      "no outstanding code",
			user:      models.User{},
			submitted: "123456",
			want:      otpMissing,
		},
		{
			name:      "wrong code",
			user:      models.User{OTP: "123456", OTPExpiry: &future},
			submitted: "654321",
			want:      otpMismatch,
		},
		{
			name:      "wrong code reported even when record expired",
			user:      models.User{OTP: "123456", OTPExpiry: &past},
			submitted: "654321",
			want:      otpMismatch,
		},
		{
			name:      "matching code past expiry",
			user:      models.User{OTP: "123456", OTPExpiry: &past},
			submitted: "123456",
			want:      otpExpired,
		},
		{
			name:      "expiry boundary counts as expired",
			user:      models.User{OTP: "123456", OTPExpiry: &now},
			submitted: "123456",
			want:      otpExpired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := checkOTP(tc.user, tc.submitted, now); got != tc.want {
				t.Fatalf("checkOTP = %v, want %v", got, tc.want)
			}
		})
	}
}
