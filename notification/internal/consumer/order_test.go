package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/foodhub/order/pkg/event"
)

type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (f *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nacked = append(f.nacked, tag)
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

type fakeNotifier struct {
	mu       sync.Mutex
	err      error
	notified []event.OrderCreated
}

func (f *fakeNotifier) NotifyOrderCreated(_ context.Context, e event.OrderCreated) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notified = append(f.notified, e)
	return nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, body []byte) amqp.Delivery {
	t.Helper()
	return amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  tag,
		RoutingKey:   event.RoutingKeyOrderCreated,
		Body:         body,
	}
}

func orderCreated(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(event.OrderCreated{
		OrderID:      uuid.New(),
		UserID:       "user-1",
		RestaurantID: "1",
		ItemCount:    2,
		Total:        decimal.RequireFromString("31.28"),
		Status:       "pending",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return body
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name            string
		body            func(t *testing.T) []byte
		notifyErr       error
		expectedErr     bool
		expectedAcked   int
		expectedNacked  int
		expectedNotices int
	}{
		{name: "given valid event should notify and ack", body: orderCreated, expectedAcked: 1, expectedNotices: 1},
		{name: "given malformed event should reject", body: func(*testing.T) []byte { return []byte("{") }, expectedErr: true, expectedNacked: 1},
		{name: "given failing notifier should reject", body: orderCreated, notifyErr: errors.New("smtp down"), expectedErr: true, expectedNacked: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			notifier := &fakeNotifier{err: tt.notifyErr}
			oc := NewOrderConsumer(notifier)

			err := oc.Handle(context.Background(), delivery(t, ack, 7, tt.body(t)))
			if tt.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, ack.acked, tt.expectedAcked)
			assert.Len(t, ack.nacked, tt.expectedNacked)
			for _, requeue := range ack.requeue {
				assert.False(t, requeue)
			}
			assert.Len(t, notifier.notified, tt.expectedNotices)
		})
	}
}

func TestConsume(t *testing.T) {
	ack := &fakeAcknowledger{}
	notifier := &fakeNotifier{}
	oc := NewOrderConsumer(notifier)

	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- delivery(t, ack, 1, orderCreated(t))
	deliveries <- delivery(t, ack, 2, []byte("not json"))
	deliveries <- delivery(t, ack, 3, orderCreated(t))
	close(deliveries)

	done := make(chan struct{})
	go func() {
		defer close(done)
		oc.Consume(context.Background(), deliveries)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after the channel closed")
	}
	assert.Equal(t, []uint64{1, 3}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
	assert.Len(t, notifier.notified, 2)
}

func TestConsumeStopsOnCancel(t *testing.T) {
	c, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewOrderConsumer(LogNotifier{}).Consume(c, make(chan amqp.Delivery))
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
}
