package models

import "time"

// User is a site account as seen by this backend. Accounts are created by the
// external login flow; here they are only read to resolve permissions.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the display name of the user.
	Username string `json:"username"`

	// Avatar is an optional avatar URL.
	Avatar string `json:"avatar"`

	// Permission reports whether the user is a site administrator.
	Permission bool `json:"permission"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
