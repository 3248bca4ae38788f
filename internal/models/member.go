package models

import (
	"time"

	"github.com/google/uuid"
)

// CommitteeMember is an authorized committee user. Login identifier is email
// (OTP delivery); the active set is bounded to [1,5].
type CommitteeMember struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CommitteeMemberCreate struct {
	Email       string  `json:"email" binding:"required,email"`
	PhoneNumber *string `json:"phone_number"`
}

type OtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type OtpVerification struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=6"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
