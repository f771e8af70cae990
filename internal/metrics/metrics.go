package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "foodhub"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	ordersCreated       prometheus.Counter
	chatMessages        *prometheus.CounterVec
	recommenderFailures *prometheus.CounterVec
	cartMutations       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Number of orders created.",
		}),
		chatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Number of chat messages appended, by role.",
		}, []string{"role"}),
		recommenderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommender_failures_total",
			Help:      "Number of recommender calls replaced by a fallback, by operation.",
		}, []string{"operation"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Number of cart mutations, by operation.",
		}, []string{"operation"}),
	}
	reg.MustRegister(m.ordersCreated, m.chatMessages, m.recommenderFailures, m.cartMutations)
	return m
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Metrics) ChatMessage(role string) {
	if m == nil {
		return
	}
	m.chatMessages.WithLabelValues(role).Inc()
}

func (m *Metrics) RecommenderFailure(operation string) {
	if m == nil {
		return
	}
	m.recommenderFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) CartMutation(operation string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(operation).Inc()
}
