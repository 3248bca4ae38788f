package models

import (
	"time"

	"github.com/google/uuid"
)

// FlatOwner is the master record for one flat. The Telegram chat id is filled
// in by the owner's self-registration and is what makes notification delivery
// possible; rows themselves come from a bulk import, not this service.
type FlatOwner struct {
	ID             uuid.UUID `json:"id"`
	FlatNo         string    `json:"flat_no"`
	Name           *string   `json:"name"`
	TelegramChatID *string   `json:"telegram_chat_id"`
	PhoneNumber    *string   `json:"phone_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// FlatOwnerRegister links a Telegram chat id to an existing flat.
type FlatOwnerRegister struct {
	FlatNo         string `json:"flat_no" binding:"required"`
	TelegramChatID string `json:"telegram_chat_id" binding:"required"`
}
