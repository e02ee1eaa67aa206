package notifier

import (
	"strings"
	"testing"

	"github.com/Razzsha/quickcart-team/internal/models"
)

func TestOrderStatusMessageSelection(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{models.StatusPending, "updated to Pending"},
		{models.StatusProcessing, "now Processing"},
		{models.StatusCompleted, "Completed!"},
		{models.StatusCancelled, "been Cancelled"},
		{"Refunded", "updated to Refunded"}, // generic fallback
	}

	for _, tt := range tests {
		msg := OrderStatusMessage("64f000000000000000000001", tt.status, 49.99, "$")
		if !strings.Contains(msg, tt.want) {
			t.Fatalf("status %s: expected %q in message, got %q", tt.status, tt.want, msg)
		}
		if !strings.Contains(msg, "$49.99") {
			t.Fatalf("status %s: expected formatted amount in message, got %q", tt.status, msg)
		}
		if !strings.Contains(msg, "64f000000000000000000001") {
			t.Fatalf("status %s: expected order id in message, got %q", tt.status, msg)
		}
	}
}

func TestOTPMessage(t *testing.T) {
	if got := OTPMessage("042371"); got != "Your QuickCart OTP is 042371" {
		t.Fatalf("unexpected OTP message: %q", got)
	}
}

func TestOrderCreatedMessage(t *testing.T) {
	msg := OrderCreatedMessage("64f000000000000000000001", 120, "$")
	if !strings.Contains(msg, "Pending") || !strings.Contains(msg, "$120.00") {
		t.Fatalf("unexpected order created message: %q", msg)
	}
}
