package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"time"
)

const otpLifetime = 300 * time.Second

type OTPService interface {
	// Generate derives a 6-digit code from the current time, caches it for
	// the identifier and returns it.
	Generate(identifier string) string
	// Verify checks a submitted code. A code verifies at most once: it is
	// evicted on success and on post-expiry lookup.
	Verify(identifier, code string) bool
}

type otpService struct {
	store  OTPStore
	secret []byte
	now    func() time.Time
}

func NewOTPService(store OTPStore, secret string) OTPService {
	key := []byte(secret)
	if len(key) > 16 {
		key = key[:16]
	}
	return &otpService{store: store, secret: key, now: time.Now}
}

// hotp implements RFC 4226 dynamic truncation over an 8-byte counter.
func hotp(key []byte, counter uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)
	mac := hmac.New(sha1.New, key)
	mac.Write(buf[:])
	sum := mac.Sum(nil)
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
	return fmt.Sprintf("%06d", code%1000000)
}

func (s *otpService) Generate(identifier string) string {
	code := hotp(s.secret, uint64(s.now().Unix()))
	s.store.Put(identifier, OTPEntry{
		Code:      code,
		ExpiresAt: s.now().Add(otpLifetime),
	})
	return code
}

func (s *otpService) Verify(identifier, code string) bool {
	entry, ok := s.store.Get(identifier)
	if !ok {
		return false
	}
	if s.now().After(entry.ExpiresAt) {
		s.store.Delete(identifier)
		return false
	}
	if entry.Code != code {
		return false
	}
	s.store.Delete(identifier)
	return true
}
