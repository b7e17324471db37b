package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed tokens, bad
// signatures, and expired claims all collapse into one outcome so callers
// can't probe which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims binds a token to an account id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// IssueToken signs an HS256 token embedding the account id. Tokens carry no
// expiry; the client invalidates a session by discarding the token.
func IssueToken(userID string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
	})
	return token.SignedString(secret)
}

// UserIDFromToken verifies the signature and returns the embedded account id.
func UserIDFromToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
