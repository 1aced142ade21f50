package models

import "time"

// Feedback is a customer rating (1-5) with an optional comment,
// linked to the customer and the reviewed post.
type Feedback struct {
	ID        int64        `json:"id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	User      *BookingUser `json:"user,omitempty"`
	Post      *Post        `json:"post,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
