package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims is the token shape minted by the external identity
// provider. Subject carries the user id that roles are keyed by.
type AccessTokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
