package models

import "time"

// BookingUser is the customer snapshot embedded in a booking.
type BookingUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Booking is a customer's reservation against a Post, carrying its own
// lifecycle status. Latitude/longitude and image proof are optional and
// present only when the customer supplied them.
type Booking struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"userId"`
	User          *BookingUser `json:"user,omitempty"`
	EventDate     time.Time    `json:"eventDate"`
	TotalPrice    float64      `json:"totalPrice"`
	PaymentMethod string       `json:"paymentMethod"` // fib, fastpay, cash
	PhoneNumber   string       `json:"phoneNumber"`
	Address       string       `json:"address"`
	Status        string       `json:"status"` // pending, confirmed, completed, cancelled
	Latitude      *float64     `json:"latitude,omitempty"`
	Longitude     *float64     `json:"longitude,omitempty"`
	ImageProof    string       `json:"imageProof,omitempty"`
	Post          *Post        `json:"post,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// InHistory reports whether the booking belongs to the order-history
// partition (completed or cancelled).
func (b Booking) InHistory() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}
