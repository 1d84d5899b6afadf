package models

import "time"

// Friend is an entry of the site's link directory. Users may apply for a
// link; an admin accepts it.
type Friend struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"desc"`
	Avatar      string    `json:"avatar"`
	URL         string    `json:"url"`
	OwnerUserID int64     `json:"uid"`
	Accepted    bool      `json:"accepted"`
	SortOrder   int       `json:"sort_order"`
	Health      string    `json:"health"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FriendRequest is the body of create and update calls. Nil fields are left
// unchanged on update.
type FriendRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=64"`
	Description *string `json:"desc" validate:"omitempty,max=256"`
	Avatar      *string `json:"avatar" validate:"omitempty,http_url"`
	URL         *string `json:"url" validate:"omitempty,http_url"`
	Accepted    *bool   `json:"accepted"`
	SortOrder   *int    `json:"sort_order"`
}

// FriendFilter narrows a friend listing.
type FriendFilter struct {
	// AcceptedOnly hides pending applications.
	AcceptedOnly bool
	// IncludeOwner additionally returns pending applications of this user
	// when AcceptedOnly is set. Zero means none.
	IncludeOwner int64
}
