package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicapp/accessgate/internal/access/domain"
)

type hmacSigner struct {
	secret []byte
	issuer string
}

// NewHMACSigner creates a TokenSigner producing HS256 tokens accepted by NewHMACDecoder.
func NewHMACSigner(secret []byte, issuer string) (TokenSigner, error) {
	if len(secret) == 0 {
		return nil, errors.New("hmac secret cannot be empty")
	}
	return &hmacSigner{secret: secret, issuer: issuer}, nil
}

func (s *hmacSigner) Sign(subject string, role domain.Role, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iss":  s.issuer,
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
