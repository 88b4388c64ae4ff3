package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lead-outreach/internal/entity"
	"github.com/xavierca1/lead-outreach/internal/infra/mail"
	"github.com/xavierca1/lead-outreach/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	leads, _ := args.Get(0).([]*entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	lead, _ := args.Get(0).(*entity.Lead)
	return lead, args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepository) FindStale(ctx context.Context, cutoff time.Time) ([]*entity.Lead, error) {
	args := m.Called(ctx, cutoff)
	leads, _ := args.Get(0).([]*entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepository) ListEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	emails, _ := args.Get(0).([]string)
	return emails, args.Error(1)
}

func (m *MockLeadRepository) MarkContacted(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// memoryEmailLog is an in-memory append-only log; rows are assigned
// increasing ids and streamed newest first.
type memoryEmailLog struct {
	mu        sync.Mutex
	entries   []*entity.EmailLog
	insertErr error
}

func (r *memoryEmailLog) Insert(_ context.Context, entry *entity.EmailLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	cp := *entry
	cp.ID = int64(len(r.entries) + 1)
	entry.ID = cp.ID
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memoryEmailLog) ListRecent(_ context.Context, limit int) ([]*entity.EmailLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.EmailLog, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *memoryEmailLog) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

func (r *memoryEmailLog) EachNewestFirst(_ context.Context, fn func(*entity.EmailLog) error) error {
	r.mu.Lock()
	sorted := make([]*entity.EmailLog, len(r.entries))
	copy(sorted, r.entries)
	r.mu.Unlock()

	// stable insertion sort by sent_at desc, id desc
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && newer(sorted[j], sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	for _, e := range sorted {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func newer(a, b *entity.EmailLog) bool {
	if a.SentAt.Equal(b.SentAt) {
		return a.ID > b.ID
	}
	return a.SentAt.After(b.SentAt)
}

func (r *memoryEmailLog) all() []*entity.EmailLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.EmailLog, len(r.entries))
	copy(out, r.entries)
	return out
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, env mail.Envelope) (*mail.DeliveryReceipt, error) {
	args := m.Called(ctx, env)
	receipt, _ := args.Get(0).(*mail.DeliveryReceipt)
	return receipt, args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.OutreachEvent
	err    error
}

func (p *recordingPublisher) PublishOutreach(_ context.Context, e queue.OutreachEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}
