package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// SlotTokenTTL bounds how long a browser keeps the same session slot.
const SlotTokenTTL = 365 * 24 * time.Hour

// ErrInvalidSlotToken is returned for tokens that fail signature or claim checks.
var ErrInvalidSlotToken = errors.New("invalid slot token")

// GenerateSlotToken signs a token whose subject is the browser slot ID.
func GenerateSlotToken(secret []byte, slotID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": slotID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// SlotIDFromToken extracts the slot ID (subject) from a valid token string.
func SlotIDFromToken(secret []byte, tokenString string) (string, error) {
	token, err := ValidateToken(secret, tokenString)
	if err != nil || !token.Valid {
		return "", ErrInvalidSlotToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSlotToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidSlotToken
	}
	return sub, nil
}
