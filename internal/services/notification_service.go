package services

import (
	"fmt"
	"log"
	"time"

	"aptbillmanager/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NotificationService fans bill messages out to Telegram. Delivery is
// fire-and-forget: failures are logged and the loop moves on.
type NotificationService struct {
	telegram  *TelegramService
	sendDelay time.Duration
}

func NewNotificationService(telegram *TelegramService, sendDelay time.Duration) *NotificationService {
	return &NotificationService{telegram: telegram, sendDelay: sendDelay}
}

// FormatBillMessage renders one bill as MarkdownV2, escaping everything
// dynamic so flat numbers like "G-1" survive Telegram's parser.
func FormatBillMessage(record models.BillRecord) string {
	esc := func(s string) string {
		return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
	}
	name := esc(record.Name)
	flatNo := esc(record.FlatNo)
	units := esc(record.UnitsConsumed.StringFixed(2))
	amount := esc("₹" + record.AmountDue.StringFixed(2))

	return fmt.Sprintf(
		"*Apartment Bill Notification*\n\n"+
			"Hello, %s\\.\n"+
			"Your bill for *Flat No: %s* is ready for this period\\.\n\n"+
			"💧 Units Consumed: *%s* units\n"+
			"💰 Amount Due: *%s*\n\n"+
			"Thank you\\! Please contact the committee for payment details\\.",
		name, flatNo, units, amount,
	)
}

// SendAll delivers every record that carries a chat id, pausing between sends
// to stay under the Bot API rate limit. One recipient's failure never aborts
// the batch.
func (s *NotificationService) SendAll(records []models.BillRecord) {
	log.Printf("[notify] starting batch of %d notifications", len(records))
	for i, record := range records {
		if record.TelegramChatID == "" {
			continue
		}
		if i > 0 && s.sendDelay > 0 {
			time.Sleep(s.sendDelay)
		}
		msg := FormatBillMessage(record)
		if err := s.telegram.SendMessage(record.TelegramChatID, msg, tgbotapi.ModeMarkdownV2); err != nil {
			log.Printf("[notify] flat=%s chat_id=%s send failed: %v", record.FlatNo, record.TelegramChatID, err)
		}
	}
	log.Printf("[notify] batch finished")
}

// Dispatch schedules the batch on a detached goroutine and returns
// immediately. There is no result channel and no cancellation: the batch
// outlives the HTTP request that triggered it.
func (s *NotificationService) Dispatch(records []models.BillRecord) {
	go s.SendAll(records)
}
