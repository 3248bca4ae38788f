package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AuthService interface {
	CreateAccessToken(email string) (string, error)
	// ParseToken validates signature and expiry and returns the subject email.
	ParseToken(tokenStr string) (string, error)
}

type authService struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

func NewAuthService(secret, algorithm string, lifetimeMinutes int) (AuthService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not HMAC", algorithm)
	}
	return &authService{
		secret:   []byte(secret),
		method:   method,
		lifetime: time.Duration(lifetimeMinutes) * time.Minute,
	}, nil
}

func (s *authService) CreateAccessToken(email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.lifetime)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *authService) ParseToken(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// accept HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return "", jwt.ErrTokenExpired
	}
	if claims.Subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}
