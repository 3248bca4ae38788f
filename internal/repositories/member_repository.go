package repositories

import (
	"context"
	"database/sql"
	"errors"

	"aptbillmanager/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicate reports a unique-constraint violation (email or phone).
var ErrDuplicate = errors.New("record already exists")

type MemberRepository interface {
	Create(ctx context.Context, email string, phone *string) (*models.CommitteeMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CommitteeMember, error)
	GetByEmail(ctx context.Context, email string) (*models.CommitteeMember, error)
	List(ctx context.Context) ([]*models.CommitteeMember, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountActive(ctx context.Context) (int, error)
}

type memberRepository struct{ db *sql.DB }

func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, email, phone_number, is_active, created_at`

func scanMember(row *sql.Row) (*models.CommitteeMember, error) {
	var m models.CommitteeMember
	if err := row.Scan(&m.ID, &m.Email, &m.PhoneNumber, &m.IsActive, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) Create(ctx context.Context, email string, phone *string) (*models.CommitteeMember, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO committee_members (id, email, phone_number)
		VALUES ($1, $2, $3)
		RETURNING `+memberColumns+`
	`, uuid.New(), email, phone)

	m, err := scanMember(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CommitteeMember, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+memberColumns+` FROM committee_members WHERE id=$1
	`, id)
	return scanMember(row)
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.CommitteeMember, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+memberColumns+` FROM committee_members WHERE email=$1
	`, email)
	return scanMember(row)
}

func (r *memberRepository) List(ctx context.Context) ([]*models.CommitteeMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM committee_members ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.CommitteeMember
	for rows.Next() {
		var m models.CommitteeMember
		if err := rows.Scan(&m.ID, &m.Email, &m.PhoneNumber, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM committee_members WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *memberRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM committee_members WHERE is_active=true
	`).Scan(&n)
	return n, err
}
