package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

var emailLogColumnNames = []string{"id", "email", "name", "address", "category", "subject", "status", "error_message", "sent_at"}

func TestEmailLogRepositoryInsert(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	entry := &entity.EmailLog{
		Email:        "a@x.com",
		Name:         "Ana",
		Subject:      "Hello",
		Status:       entity.EmailFailed,
		ErrorMessage: "550 mailbox unavailable",
		SentAt:       at,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO email_logs")).
		WithArgs("a@x.com", "Ana", nil, nil, "Hello", "failed", "550 mailbox unavailable", at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, NewEmailLogRepository(db).Insert(context.Background(), entry))
	assert.Equal(t, int64(42), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailLogRepositoryListRecentDefaultsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sent_at DESC")).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(emailLogColumnNames).
			AddRow(2, "b@x.com", nil, nil, nil, "Hi", "sent", nil, at).
			AddRow(1, "a@x.com", "Ana", "1 Main St", "probate", "Hi", "follow-up", nil, at.Add(-time.Hour)))

	logs, err := NewEmailLogRepository(db).ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Empty(t, logs[0].Name)
	assert.Equal(t, entity.EmailFollowUp, logs[1].Status)
	assert.Equal(t, entity.CategoryProbate, logs[1].Category)
}

func TestEmailLogRepositoryCount(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM email_logs")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := NewEmailLogRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestEmailLogRepositoryEachNewestFirst(t *testing.T) {
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(emailLogColumnNames).
			AddRow(3, "c@x.com", nil, nil, nil, "Hi", "sent", nil, at).
			AddRow(2, "b@x.com", nil, nil, nil, "Hi", "sent", nil, at.Add(-time.Hour)).
			AddRow(1, "a@x.com", nil, nil, nil, "Hi", "sent", nil, at.Add(-2*time.Hour))
	}

	t.Run("visits every row in order", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sent_at DESC, id DESC")).WillReturnRows(rows())

		var seen []string
		err := NewEmailLogRepository(db).EachNewestFirst(context.Background(), func(e *entity.EmailLog) error {
			seen = append(seen, e.Email)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"c@x.com", "b@x.com", "a@x.com"}, seen)
	})

	t.Run("callback error stops the walk", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sent_at DESC, id DESC")).WillReturnRows(rows())

		stop := errors.New("stop")
		calls := 0
		err := NewEmailLogRepository(db).EachNewestFirst(context.Background(), func(*entity.EmailLog) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})
}
