package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("verification token is invalid")
	ErrExpiredToken = errors.New("verification token has expired")
)

const verifyPurpose = "email-confirm"

type verifyClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// VerifyTokens issues the signed, time-limited tokens embedded in
// confirmation links. Tokens are stateless: nothing is stored server-side
// and consuming one does not invalidate it. At-most-once verification is
// enforced by the account's verified flag, not here.
type VerifyTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewVerifyTokens(secret string, ttl time.Duration) *VerifyTokens {
	return &VerifyTokens{secret: []byte(secret), ttl: ttl}
}

// Issue binds the email address to an issuance timestamp under the server
// secret and returns the result as a compact URL-safe string.
func (v *VerifyTokens) Issue(email string) (string, error) {
	now := time.Now().UTC()
	claims := verifyClaims{
		Email:   email,
		Purpose: verifyPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Consume checks integrity and expiry and returns the embedded email.
// It fails with ErrExpiredToken past the expiry window and ErrInvalidToken
// for anything else (bad signature, wrong purpose, garbage input).
func (v *VerifyTokens) Consume(token string) (string, error) {
	var claims verifyClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", ErrExpiredToken
	}

	if err != nil {
		return "", ErrInvalidToken
	}

	if claims.Purpose != verifyPurpose || claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}
