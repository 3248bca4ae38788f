package repositories

import (
	"context"
	"database/sql"

	"aptbillmanager/internal/models"
)

type FlatRepository interface {
	GetByFlatNo(ctx context.Context, flatNo string) (*models.FlatOwner, error)
	UpdateTelegramChatID(ctx context.Context, flatNo, chatID string) (*models.FlatOwner, error)
}

type flatRepository struct{ db *sql.DB }

func NewFlatRepository(db *sql.DB) FlatRepository {
	return &flatRepository{db: db}
}

const flatColumns = `id, flat_no, name, telegram_chat_id, phone_number, created_at`

func scanFlat(row *sql.Row) (*models.FlatOwner, error) {
	var f models.FlatOwner
	if err := row.Scan(&f.ID, &f.FlatNo, &f.Name, &f.TelegramChatID, &f.PhoneNumber, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *flatRepository) GetByFlatNo(ctx context.Context, flatNo string) (*models.FlatOwner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+flatColumns+` FROM flat_owners WHERE flat_no=$1
	`, flatNo)
	return scanFlat(row)
}

func (r *flatRepository) UpdateTelegramChatID(ctx context.Context, flatNo, chatID string) (*models.FlatOwner, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE flat_owners SET telegram_chat_id=$2 WHERE flat_no=$1
		RETURNING `+flatColumns+`
	`, flatNo, chatID)
	return scanFlat(row)
}
