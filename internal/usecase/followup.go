package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

// StaleWindow is how long a lead may go without contact before the sweep picks it up.
const StaleWindow = 7 * 24 * time.Hour

// FollowUpSelector is read-only.
type FollowUpSelector struct {
	Leads entity.LeadRepositoryInterface
	Logs  entity.EmailLogRepositoryInterface
	Now   func() time.Time
}

func NewFollowUpSelector(leads entity.LeadRepositoryInterface, logs entity.EmailLogRepositoryInterface) *FollowUpSelector {
	return &FollowUpSelector{
		Leads: leads,
		Logs:  logs,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// StaleLeads returns leads never contacted or not contacted within StaleWindow.
func (s *FollowUpSelector) StaleLeads(ctx context.Context) ([]*entity.Lead, error) {
	return s.Leads.FindStale(ctx, s.Now().Add(-StaleWindow))
}

// UnconvertedContacts reduces the whole log, newest first, to one entry per
// email address that has no lead row. Each entry is the latest one for that
// address and carries the total number of log entries for it.
func (s *FollowUpSelector) UnconvertedContacts(ctx context.Context) ([]UnconvertedContact, error) {
	emails, err := s.Leads.ListEmails(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		known[entity.EmailKey(e)] = struct{}{}
	}

	var out []UnconvertedContact
	index := make(map[string]int)

	err = s.Logs.EachNewestFirst(ctx, func(e *entity.EmailLog) error {
		key := entity.EmailKey(e.Email)
		if key == "" {
			return nil
		}
		if _, ok := known[key]; ok {
			return nil
		}
		if i, seen := index[key]; seen {
			out[i].EmailCount++
			return nil
		}
		index[key] = len(out)
		out = append(out, UnconvertedContact{EmailLog: *e, EmailCount: 1})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan email log: %w", err)
	}

	if out == nil {
		out = []UnconvertedContact{}
	}
	return out, nil
}
