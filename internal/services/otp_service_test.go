package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOTPService(now *time.Time) *otpService {
	return &otpService{
		store:  NewMemoryOTPStore(),
		secret: []byte("test-secret-key"),
		now:    func() time.Time { return *now },
	}
}

func TestOTPVerifySingleUse(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestOTPService(&now)

	code := svc.Generate("head@apt.com")
	require.Len(t, code, 6)

	assert.True(t, svc.Verify("head@apt.com", code))
	// consumed on success, second attempt must fail
	assert.False(t, svc.Verify("head@apt.com", code))
}

func TestOTPVerifyMismatch(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestOTPService(&now)

	code := svc.Generate("head@apt.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	assert.False(t, svc.Verify("head@apt.com", wrong))
	// a mismatch does not consume the code
	assert.True(t, svc.Verify("head@apt.com", code))
}

func TestOTPVerifyExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestOTPService(&now)

	code := svc.Generate("head@apt.com")

	now = now.Add(301 * time.Second)
	assert.False(t, svc.Verify("head@apt.com", code))

	// expiry evicts the entry, so rolling time back cannot revive it
	now = now.Add(-301 * time.Second)
	assert.False(t, svc.Verify("head@apt.com", code))
}

func TestOTPVerifyUnknownIdentifier(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestOTPService(&now)

	assert.False(t, svc.Verify("nobody@apt.com", "123456"))
}

func TestOTPDeterministicPerTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := newTestOTPService(&now)
	b := newTestOTPService(&now)

	assert.Equal(t, a.Generate("x@apt.com"), b.Generate("x@apt.com"))

	later := now.Add(time.Minute)
	c := newTestOTPService(&later)
	assert.NotEqual(t, a.Generate("x@apt.com"), c.Generate("x@apt.com"))
}

func TestMemoryOTPStore(t *testing.T) {
	store := NewMemoryOTPStore()

	_, ok := store.Get("a")
	assert.False(t, ok)

	entry := OTPEntry{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}
	store.Put("a", entry)

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	store.Delete("a")
	_, ok = store.Get("a")
	assert.False(t, ok)
}
