package brayns

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type tokenSigner struct {
	secret  []byte
	subject string
	ttl     time.Duration
}

func (s *tokenSigner) token() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   s.subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
