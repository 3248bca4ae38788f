package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"aptbillmanager/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBillMessageEscapesMarkdown(t *testing.T) {
	record := models.BillRecord{
		FlatNo:        "G-1",
		Name:          "A. Kumar",
		UnitsConsumed: decimal.RequireFromString("12.5"),
		AmountDue:     decimal.RequireFromString("62.50"),
	}
	msg := FormatBillMessage(record)

	assert.Contains(t, msg, `G\-1`)
	assert.Contains(t, msg, `A\. Kumar`)
	assert.Contains(t, msg, `12\.50`)
	assert.Contains(t, msg, `₹62\.50`)
	assert.NotContains(t, msg, "G-1")
}

type capturedSend struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func TestSendAllContinuesPastFailures(t *testing.T) {
	var mu sync.Mutex
	var sends []capturedSend

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body capturedSend
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		sends = append(sends, body)
		mu.Unlock()

		if body.ChatID == "broken" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
			return
		}
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	tg := NewTelegramServiceWithBaseURL("test-token", srv.URL)
	notifier := NewNotificationService(tg, 0)

	units := decimal.RequireFromString("10")
	amount := decimal.RequireFromString("50.00")
	notifier.SendAll([]models.BillRecord{
		{FlatNo: "A1", Name: "One", UnitsConsumed: units, AmountDue: amount, TelegramChatID: "111"},
		{FlatNo: "A2", Name: "Two", UnitsConsumed: units, AmountDue: amount, TelegramChatID: "broken"},
		{FlatNo: "A3", Name: "Three", UnitsConsumed: units, AmountDue: amount}, // no chat id
		{FlatNo: "A4", Name: "Four", UnitsConsumed: units, AmountDue: amount, TelegramChatID: "444"},
	})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sends, 3)
	assert.Equal(t, "111", sends[0].ChatID)
	assert.Equal(t, "broken", sends[1].ChatID)
	assert.Equal(t, "444", sends[2].ChatID)
	for _, s := range sends {
		assert.Equal(t, "MarkdownV2", s.ParseMode)
		assert.Contains(t, s.Text, "Apartment Bill Notification")
	}
}

func TestTelegramServiceSkipsWithoutToken(t *testing.T) {
	tg := NewTelegramService("")
	assert.NoError(t, tg.SendMessage("123", "hello", ""))
}

func TestTelegramServiceReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"blocked by user"}`))
	}))
	defer srv.Close()

	tg := NewTelegramServiceWithBaseURL("test-token", srv.URL)
	err := tg.SendMessage("123", "hello", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked by user")
}
