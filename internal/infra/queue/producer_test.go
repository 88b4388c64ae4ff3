package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func TestPublishOutreach(t *testing.T) {
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	event := OutreachEvent{LeadID: "l1", Email: "a@x.com", Subject: "Hello", Status: "sent", SentAt: at}

	t.Run("publishes persistent json to the outreach exchange", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, false, false, mock.AnythingOfType("amqp091.Publishing")).
			Return(nil).Once()

		require.NoError(t, (&RabbitMQProducer{Ch: ch}).PublishOutreach(context.Background(), event))

		msg := ch.Calls[0].Arguments.Get(5).(amqp.Publishing)
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.Equal(t, "outreach.sent", msg.Type)

		var got OutreachEvent
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, event, got)
		ch.AssertExpectations(t)
	})

	t.Run("broker error is wrapped", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("channel closed")).Once()

		err := (&RabbitMQProducer{Ch: ch}).PublishOutreach(context.Background(), event)
		assert.ErrorContains(t, err, "channel closed")
	})
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishOutreach(context.Background(), OutreachEvent{}))
}
