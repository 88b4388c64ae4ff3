package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const StatusContacted = "contacted"

type Lead struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name,omitempty"`
	FirstName         string     `json:"first_name,omitempty"`
	LastName          string     `json:"last_name,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Address           string     `json:"address,omitempty"`
	Category          Category   `json:"category,omitempty"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	LastContactedDate *time.Time `json:"last_contacted_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewLead fills identity and timestamps for a lead about to be inserted.
func NewLead(l Lead) *Lead {
	now := time.Now().UTC()
	l.ID = uuid.New().String()
	l.Email = strings.TrimSpace(l.Email)
	if l.Status == "" {
		l.Status = "new"
	}
	l.CreatedAt = now
	l.UpdatedAt = now
	return &l
}

// DisplayName is what the email log stores as the recipient name.
func (l *Lead) DisplayName() string {
	if l.FirstName != "" && l.LastName != "" {
		return l.FirstName + " " + l.LastName
	}
	if l.Name != "" {
		return l.Name
	}
	return l.Email
}

// EmailKey is the normalized soft-join key between leads and email logs.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LeadPatch carries a partial update; nil fields are left untouched.
type LeadPatch struct {
	Email     *string   `json:"email"`
	Name      *string   `json:"name"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	Category  *Category `json:"category"`
	Status    *string   `json:"status"`
	Notes     *string   `json:"notes"`
}

func (l *Lead) Apply(p LeadPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&l.Email, p.Email)
	set(&l.Name, p.Name)
	set(&l.FirstName, p.FirstName)
	set(&l.LastName, p.LastName)
	set(&l.Phone, p.Phone)
	set(&l.Address, p.Address)
	set(&l.Status, p.Status)
	set(&l.Notes, p.Notes)
	if p.Category != nil {
		l.Category = *p.Category
	}
	l.UpdatedAt = time.Now().UTC()
}

type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	FindStale(ctx context.Context, cutoff time.Time) ([]*Lead, error)
	ListEmails(ctx context.Context) ([]string, error)
	MarkContacted(ctx context.Context, id string, at time.Time) error
}
