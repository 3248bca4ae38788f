package models

import "github.com/shopspring/decimal"

// BillRecord is one flat's computed bill for the uploaded period. Records are
// transient: they exist only in the upload response and the notification
// fan-out, never in the database.
type BillRecord struct {
	FlatNo         string          `json:"flat_no"`
	Name           string          `json:"name"`
	UnitsConsumed  decimal.Decimal `json:"units_consumed"`
	AmountDue      decimal.Decimal `json:"amount_due"`
	TelegramChatID string          `json:"telegram_chat_id,omitempty"`
}

// BillProcessResponse summarizes one upload.
type BillProcessResponse struct {
	TotalRecordsProcessed int          `json:"total_records_processed"`
	NotificationsReady    int          `json:"notifications_ready"`
	SkippedRecords        int          `json:"skipped_records"`
	Preview               []BillRecord `json:"preview"`
}
