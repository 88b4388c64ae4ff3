package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

type EmailLogRepository struct {
	DB *sql.DB
}

var _ entity.EmailLogRepositoryInterface = (*EmailLogRepository)(nil)

func NewEmailLogRepository(db *sql.DB) *EmailLogRepository {
	return &EmailLogRepository{DB: db}
}

func (r *EmailLogRepository) Insert(ctx context.Context, e *entity.EmailLog) error {
	query := `
		INSERT INTO email_logs (email, name, address, category, subject, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Email,
		nullString(e.Name),
		nullString(e.Address),
		nullString(string(e.Category)),
		e.Subject,
		string(e.Status),
		nullString(e.ErrorMessage),
		e.SentAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

func (r *EmailLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.EmailLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, email, name, address, category, subject, status, error_message, sent_at
		FROM email_logs
		ORDER BY sent_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	out := []*entity.EmailLog{}
	for rows.Next() {
		e, err := scanEmailLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EmailLogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count email logs: %w", err)
	}
	return n, nil
}

// EachNewestFirst walks the full log without materializing it. fn errors stop the walk.
func (r *EmailLogRepository) EachNewestFirst(ctx context.Context, fn func(*entity.EmailLog) error) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, email, name, address, category, subject, status, error_message, sent_at
		FROM email_logs
		ORDER BY sent_at DESC, id DESC
	`)
	if err != nil {
		return fmt.Errorf("stream email logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEmailLog(rows)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanEmailLog(s rowScanner) (*entity.EmailLog, error) {
	var (
		e                                entity.EmailLog
		name, address, cat, status, errM sql.NullString
	)
	if err := s.Scan(&e.ID, &e.Email, &name, &address, &cat, &e.Subject, &status, &errM, &e.SentAt); err != nil {
		return nil, fmt.Errorf("scan email log: %w", err)
	}
	e.Name = name.String
	e.Address = address.String
	e.Category = entity.Category(cat.String)
	e.Status = entity.EmailStatus(status.String)
	e.ErrorMessage = errM.String
	return &e, nil
}
