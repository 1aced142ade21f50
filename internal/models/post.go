package models

import "time"

// Post is an admin-authored bookable service listing (event package).
type Post struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"imageUrl"`
	BasePrice       float64   `json:"basePrice"`
	IsSpecial       bool      `json:"isSpecial"`
	SpecialFeatures string    `json:"specialFeatures,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PostDraft carries the writable fields for create/update requests.
type PostDraft struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	BasePrice       float64 `json:"basePrice"`
	IsSpecial       bool    `json:"isSpecial"`
	SpecialFeatures string  `json:"specialFeatures,omitempty"`
}
