package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/events"
)

func TestPublishPostCreated(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, events.TopicPostCreated, msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "author_3", string(key))

		raw, err := msg.Value.Encode()
		require.NoError(t, err)
		var event events.PostCreated
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, uint(11), event.PostID)
		assert.Equal(t, events.EventTypePostCreated, event.EventType)
		assert.NotEmpty(t, event.EventID)
		return nil
	})

	publisher := NewPublisherWithProducer(producer, nil)
	err := publisher.PublishPostCreated(context.Background(), events.PostCreated{PostID: 11, AuthorID: 3, Title: "hello"})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublishPostCreatedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer, nil)
	err := publisher.PublishPostCreated(context.Background(), events.PostCreated{PostID: 1, AuthorID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func message(t *testing.T, eventType string, event events.PostCreated) *sarama.ConsumerMessage {
	t.Helper()
	raw, err := json.Marshal(event)
	require.NoError(t, err)

	msg := &sarama.ConsumerMessage{Topic: events.TopicPostCreated, Value: raw}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(eventType)}}
	}
	return msg
}

func TestConsumerDispatchesRegisteredHandler(t *testing.T) {
	c := newConsumer(nil, "notifier", []string{events.TopicPostCreated})

	var got events.PostCreated
	c.RegisterHandler(events.EventTypePostCreated, func(ctx context.Context, event events.PostCreated) error {
		got = event
		return nil
	})

	err := c.handleMessage(context.Background(), message(t, events.EventTypePostCreated, events.PostCreated{PostID: 5, AuthorID: 2}))
	require.NoError(t, err)
	assert.Equal(t, uint(5), got.PostID)
	assert.Equal(t, uint(2), got.AuthorID)
}

func TestConsumerRejectsUnroutableMessages(t *testing.T) {
	c := newConsumer(nil, "notifier", nil)
	c.RegisterHandler(events.EventTypePostCreated, func(context.Context, events.PostCreated) error {
		return errors.New("boom")
	})

	assert.Error(t, c.handleMessage(context.Background(), message(t, "", events.PostCreated{})))
	assert.Error(t, c.handleMessage(context.Background(), message(t, "post.deleted", events.PostCreated{})))
	assert.Error(t, c.handleMessage(context.Background(), message(t, events.EventTypePostCreated, events.PostCreated{PostID: 1})))

	bad := &sarama.ConsumerMessage{
		Value:   []byte("{not json"),
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(events.EventTypePostCreated)}},
	}
	assert.Error(t, c.handleMessage(context.Background(), bad))
}
