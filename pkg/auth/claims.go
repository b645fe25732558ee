package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenPayload captures the data available when minting a session token.
type SessionTokenPayload struct {
	UserID uint
	Admin  bool
	JTI    string
}

// SessionClaims represents the typed JWT carried in the session cookie.
type SessionClaims struct {
	UserID uint `json:"user_id"`
	Admin  bool `json:"admin"`
	jwt.RegisteredClaims
}
