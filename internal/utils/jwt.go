package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// InitJWT sets the signing secret for gateway session tokens. Must be
// called once at startup before any token is issued or validated.
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

// SessionClaims are the claims carried by a gateway session JWT. The
// marketplace token itself never leaves the session store.
type SessionClaims struct {
	VendorID  string `json:"vendorId"`
	SessionID string `json:"sessionId"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a signed session token for the given vendor session.
func GenerateJWT(vendorID, sessionID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		VendorID:  vendorID,
		SessionID: sessionID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT parses and validates a gateway session token.
func ValidateJWT(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
