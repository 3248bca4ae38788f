package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRoundTrip(t *testing.T) {
	svc, err := NewAuthService("test-secret", "HS256", 30)
	require.NoError(t, err)

	token, err := svc.CreateAccessToken("head@apt.com")
	require.NoError(t, err)

	subject, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "head@apt.com", subject)
}

func TestAuthServiceRejectsExpired(t *testing.T) {
	svc := &authService{
		secret:   []byte("test-secret"),
		method:   jwt.SigningMethodHS256,
		lifetime: -time.Minute,
	}

	token, err := svc.CreateAccessToken("head@apt.com")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}

func TestAuthServiceRejectsWrongKey(t *testing.T) {
	signer, err := NewAuthService("secret-one", "HS256", 30)
	require.NoError(t, err)
	verifier, err := NewAuthService("secret-two", "HS256", 30)
	require.NoError(t, err)

	token, err := signer.CreateAccessToken("head@apt.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestAuthServiceRejectsGarbage(t *testing.T) {
	svc, err := NewAuthService("test-secret", "HS256", 30)
	require.NoError(t, err)

	_, err = svc.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestNewAuthServiceAlgorithms(t *testing.T) {
	tests := []struct {
		algorithm string
		valid     bool
	}{
		{"HS256", true},
		{"HS384", true},
		{"HS512", true},
		{"RS256", false},
		{"none", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		_, err := NewAuthService("test-secret", tt.algorithm, 30)
		if tt.valid {
			assert.NoError(t, err, "algorithm=%q", tt.algorithm)
		} else {
			assert.Error(t, err, "algorithm=%q", tt.algorithm)
		}
	}
}
