// Package auth issues and checks control tokens: the shared-secret JWTs that
// allow an operator to change the global settings.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleControl = "control"
	issuer      = "orrery-server"
)

// MinSecretLength is the shortest signing secret accepted
const MinSecretLength = 32

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func checkSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("control secret is required but not set")
	}
	if len(secret) < MinSecretLength {
		return fmt.Errorf("control secret must be at least %d characters long", MinSecretLength)
	}
	return nil
}

// GenerateControlToken signs a control token for subject valid for ttl
func GenerateControlToken(secret, subject string, ttl time.Duration) (string, error) {
	if err := checkSecret(secret); err != nil {
		return "", fmt.Errorf("cannot generate control token: %w", err)
	}

	now := time.Now()
	claims := Claims{
		Role: RoleControl,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateControlToken checks signature, expiry and issuer. The role is left
// to the caller.
func ValidateControlToken(secret, tokenString string) (*Claims, error) {
	if err := checkSecret(secret); err != nil {
		return nil, fmt.Errorf("cannot validate control token: %w", err)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
