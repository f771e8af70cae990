package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/foodhub/order/pkg/event"
)

type fakePublisher struct {
	mu       sync.Mutex
	keys     []string
	bodies   [][]byte
	failures int
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	p.keys = append(p.keys, routingKey)
	p.bodies = append(p.bodies, body)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bodies)
}

func newEvent() event.OrderCreated {
	return event.OrderCreated{
		OrderID:      uuid.New(),
		UserID:       "user-1",
		RestaurantID: "1",
		ItemCount:    2,
		Total:        decimal.RequireFromString("31.28"),
		Status:       "pending",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestOrderEventWorker(t *testing.T) {
	tests := []struct {
		name     string
		events   int
		failures int
		expected int
	}{
		{name: "given events should publish all", events: 3, expected: 3},
		{name: "given failing publish should drop failed event", events: 3, failures: 1, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, cancel := context.WithCancel(context.Background())
			defer cancel()

			publisher := &fakePublisher{failures: tt.failures}
			queue := make(chan event.OrderCreated, tt.events)
			wrk := NewOrderEventWorker(publisher, queue, 10*time.Millisecond)

			wg := &sync.WaitGroup{}
			wg.Add(1)
			go wrk.StartWorker(c, wg)

			for range tt.events {
				queue <- newEvent()
			}

			assert.Eventually(t, func() bool { return publisher.count() == tt.expected }, time.Second, 5*time.Millisecond)
			cancel()
			wg.Wait()

			publisher.mu.Lock()
			defer publisher.mu.Unlock()
			for i, key := range publisher.keys {
				assert.Equal(t, event.RoutingKeyOrderCreated, key)
				evt := event.OrderCreated{}
				require.NoError(t, json.Unmarshal(publisher.bodies[i], &evt))
				assert.Equal(t, "user-1", evt.UserID)
			}
		})
	}
}
