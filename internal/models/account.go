package models

import "time"

// Account is a platform user as returned by the auth endpoints.
type Account struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the account's role string grants console access.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
