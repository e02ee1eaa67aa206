package notifier

import (
	"fmt"

	"github.com/Razzsha/quickcart-team/internal/models"
)

// OTPMessage is the signup verification text.
func OTPMessage(code string) string {
	return fmt.Sprintf("Your QuickCart OTP is %s", code)
}

// AccountVerifiedMessage confirms a completed signup.
func AccountVerifiedMessage() string {
	return "Your QuickCart account created successfully"
}

// OrderCreatedMessage announces a freshly placed order.
func OrderCreatedMessage(orderID string, amount float64, currency string) string {
	return fmt.Sprintf("Your QuickCart order is Pending\n\nOrder Amount: %s%.2f\nOrder ID: %s",
		currency, amount, orderID)
}

// OrderStatusMessage selects the status-change text by destination status.
// Unknown statuses fall back to a generic update line so a future status
// value still produces a message.
func OrderStatusMessage(orderID, status string, amount float64, currency string) string {
	header := fmt.Sprintf("Order ID: %s\nAmount: %s%.2f", orderID, currency, amount)

	switch status {
	case models.StatusPending:
		return fmt.Sprintf("Your QuickCart order status has been updated to Pending\n\n%s\n\nWe are processing your order.", header)
	case models.StatusProcessing:
		return fmt.Sprintf("Your QuickCart order is now Processing\n\n%s\n\nYour order is being prepared for shipment.", header)
	case models.StatusCompleted:
		return fmt.Sprintf("Your QuickCart order is Completed!\n\n%s\n\nThank you for shopping with us!", header)
	case models.StatusCancelled:
		return fmt.Sprintf("Your QuickCart order has been Cancelled\n\n%s\n\nIf you have any questions, please contact us.", header)
	default:
		return fmt.Sprintf("Your QuickCart order status has been updated to %s\n\n%s", status, header)
	}
}
