package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

const leadColumns = `id, email, name, first_name, last_name, phone, address, category, status, notes,
		last_contacted_date, created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`
	return r.queryLeads(ctx, query)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	if !validLeadID(id) {
		return nil, entity.ErrLeadNotFound
	}
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead %s: %w", id, err)
	}
	return lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, email, name, first_name, last_name, phone, address, category, status, notes,
			last_contacted_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		nullString(l.Email),
		nullString(l.Name),
		nullString(l.FirstName),
		nullString(l.LastName),
		nullString(l.Phone),
		nullString(l.Address),
		nullString(string(l.Category)),
		l.Status,
		nullString(l.Notes),
		l.LastContactedDate,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	if !validLeadID(l.ID) {
		return entity.ErrLeadNotFound
	}
	query := `
		UPDATE leads
		SET email = $2, name = $3, first_name = $4, last_name = $5, phone = $6, address = $7,
			category = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		l.ID,
		nullString(l.Email),
		nullString(l.Name),
		nullString(l.FirstName),
		nullString(l.LastName),
		nullString(l.Phone),
		nullString(l.Address),
		nullString(string(l.Category)),
		l.Status,
		nullString(l.Notes),
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead %s: %w", l.ID, err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	if !validLeadID(id) {
		return entity.ErrLeadNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead %s: %w", id, err)
	}
	return expectOneRow(res)
}

// FindStale returns leads never contacted or last contacted before cutoff.
func (r *LeadRepository) FindStale(ctx context.Context, cutoff time.Time) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE last_contacted_date IS NULL OR last_contacted_date < $1
		ORDER BY created_at ASC`
	return r.queryLeads(ctx, query, cutoff)
}

func (r *LeadRepository) ListEmails(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT email FROM leads WHERE email IS NOT NULL AND email <> ''`)
	if err != nil {
		return nil, fmt.Errorf("list lead emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan lead email: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *LeadRepository) MarkContacted(ctx context.Context, id string, at time.Time) error {
	if !validLeadID(id) {
		return entity.ErrLeadNotFound
	}
	query := `UPDATE leads SET last_contacted_date = $2, status = $3, updated_at = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, at, entity.StatusContacted)
	if err != nil {
		return fmt.Errorf("mark lead %s contacted: %w", id, err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// validLeadID reports whether id can name a row; leads.id is a UUID column and
// anything else would fail in Postgres with 22P02 instead of matching nothing.
func validLeadID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s rowScanner) (*entity.Lead, error) {
	var (
		l                                                    entity.Lead
		email, name, first, last, phone, address, cat, notes sql.NullString
		lastContacted                                        sql.NullTime
	)
	err := s.Scan(&l.ID, &email, &name, &first, &last, &phone, &address, &cat, &l.Status, &notes,
		&lastContacted, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Email = email.String
	l.Name = name.String
	l.FirstName = first.String
	l.LastName = last.String
	l.Phone = phone.String
	l.Address = address.String
	l.Category = entity.Category(cat.String)
	l.Notes = notes.String
	if lastContacted.Valid {
		t := lastContacted.Time
		l.LastContactedDate = &t
	}
	return &l, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
