package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token together with its signed form and the user ID
// taken from the "sub" claim.
type Token struct {
	// Token is the underlying parsed or freshly built JWT.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"token"`

	// UserID is the parsed "sub" claim.
	UserID int64 `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
