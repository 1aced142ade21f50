package models

import "time"

// Notification is a user-facing message created by the backend or by this console.
type Notification struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"userId,omitempty"`
	User      *BookingUser `json:"user,omitempty"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Type      string       `json:"type,omitempty"`
	BookingID int64        `json:"bookingId,omitempty"`
	Read      bool         `json:"read"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NotificationDraft is the creation payload for POST /notification/create.
type NotificationDraft struct {
	UserID    int64  `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type,omitempty"`
	BookingID int64  `json:"bookingId,omitempty"`
}
