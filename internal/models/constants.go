package models

// Booking lifecycle statuses as the backend reports them (already lower-cased).
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// BookingStatuses is the fixed set of valid transition targets.
var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Payment methods accepted by the platform.
const (
	PaymentFIB     = "fib"
	PaymentFastPay = "fastpay"
	PaymentCash    = "cash"
)

var PaymentMethods = []string{PaymentFIB, PaymentFastPay, PaymentCash}

// Account roles. The console only reacts to role strings; enforcement is server-side.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Notification types.
const (
	NotificationBookingStatus = "booking_status"
	NotificationBroadcast     = "broadcast"
)

const (
	// Page sizes are fixed per screen.
	PostsPageSize    = 9
	BookingsPageSize = 10
	OrdersPageSize   = 10
	FeedbackPageSize = 8

	// DefaultRedisTTL время жизни сессии оператора в Redis
	DefaultRedisTTL = 24 * 60 * 60 // 24 часа в секундах

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах
)

// IsValidStatus reports whether s is one of the fixed booking statuses.
func IsValidStatus(s string) bool {
	for _, st := range BookingStatuses {
		if st == s {
			return true
		}
	}
	return false
}
