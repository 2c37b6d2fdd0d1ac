package signals

import (
	"sync"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
)

// TopicNewLocation is the fixed topic broadcast after a location record
// has been committed, so the list screen refreshes its projection.
const TopicNewLocation = "newLocation"

// Handler is invoked synchronously for each delivery on a topic. Signals
// carry no payload; a handler re-reads whatever state it cares about.
type Handler func()

// Subscription is a scoped registration on the bus, released by Cancel.
// Cancel is idempotent.
type Subscription interface {
	Cancel()
}

// Bus is a process-wide publish/subscribe channel for payload-less
// signals. Delivery is synchronous and fire-and-forget: only listeners
// registered at post time are invoked, nothing is queued or replayed.
type Bus interface {
	Subscribe(topic string, fn Handler) Subscription
	Publish(topic string)
}

// SignalBus implements Bus with a per-topic listener registry.
type SignalBus struct {
	topics cmap.ConcurrentMap[string, cmap.ConcurrentMap[string, Handler]]
	logger zerolog.Logger
}

// NewSignalBus creates an empty bus.
func NewSignalBus(logger zerolog.Logger) *SignalBus {
	return &SignalBus{
		topics: cmap.New[cmap.ConcurrentMap[string, Handler]](),
		logger: logger,
	}
}

// Subscribe registers fn on topic and returns its subscription.
func (b *SignalBus) Subscribe(topic string, fn Handler) Subscription {
	listeners, ok := b.topics.Get(topic)
	if !ok {
		listeners = cmap.New[Handler]()
		if !b.topics.SetIfAbsent(topic, listeners) {
			listeners, _ = b.topics.Get(topic)
		}
	}

	id := uuid.New().String()
	listeners.Set(id, fn)
	b.logger.Debug().Str("topic", topic).Str("subscription", id).Msg("Listener registered")

	return &subscription{bus: b, topic: topic, id: id}
}

// Publish delivers the signal to every listener currently registered on
// topic. Handlers run on the caller's goroutine, in registry order.
func (b *SignalBus) Publish(topic string) {
	listeners, ok := b.topics.Get(topic)
	if !ok {
		return
	}

	delivered := 0
	for _, fn := range listeners.Items() {
		fn()
		delivered++
	}
	b.logger.Debug().Str("topic", topic).Int("listeners", delivered).Msg("Signal published")
}

type subscription struct {
	bus   *SignalBus
	topic string
	id    string
	once  sync.Once
}

// Cancel removes the listener from the topic registry.
func (s *subscription) Cancel() {
	s.once.Do(func() {
		if listeners, ok := s.bus.topics.Get(s.topic); ok {
			listeners.Remove(s.id)
		}
	})
}
