// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the authenticated caller of a request. A nil *Identity means
// the caller is anonymous.
type Identity struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
}

// IdentityFromUser builds the Identity carried through a request for u.
func IdentityFromUser(u User) *Identity {
	return &Identity{UserID: u.UserID, IsAdmin: u.Permission}
}

// Admin reports whether id is a non-nil admin identity.
func (id *Identity) Admin() bool {
	return id != nil && id.IsAdmin
}
