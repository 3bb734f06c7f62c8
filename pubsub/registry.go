// Package pubsub routes published messages to pattern subscriptions.
//
// Subscriptions belong to a named channel and carry a glob pattern. A message
// published on a channel with a topic is delivered to every subscription of
// that channel whose pattern matches the topic.
package pubsub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/twinfer/keyglob"
)

var (
	// ErrNotFound is returned for unknown subscription IDs.
	ErrNotFound = errors.New("subscription not found")
	// ErrInvalidBuffer is returned when a delivery buffer exceeds MaxBuffer.
	ErrInvalidBuffer = errors.New("invalid buffer size")
)

const (
	// DefaultBuffer is the delivery buffer used when Subscribe gets buf <= 0.
	DefaultBuffer = 64
	// MaxBuffer is the largest delivery buffer Subscribe accepts.
	MaxBuffer = 4096
)

// DefaultLimits bounds the matching of one pattern against a published topic.
var DefaultLimits = keyglob.Limits{MaxSteps: 1_000_000, MaxDepth: 512}

// Message is a delivered publication.
type Message struct {
	Channel string
	Topic   string
	Pattern string // the subscription pattern that matched
	Payload []byte
}

// Subscription receives the messages matching its pattern on C. C is closed
// by Unsubscribe.
type Subscription struct {
	ID      uuid.UUID
	Channel string
	Pattern string
	C       <-chan Message

	c       chan Message
	dropped atomic.Int64
}

// Dropped reports how many messages were discarded because C was full.
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

type channel struct {
	patterns []string // first-subscription order
	subs     map[string][]*Subscription
}

// Registry holds the channels and their pattern subscriptions. It is safe
// for concurrent use.
type Registry struct {
	log    *slog.Logger
	limits keyglob.Limits

	mu       sync.RWMutex
	channels map[string]*channel
	byID     map[uuid.UUID]*Subscription
}

// Option configures a Registry.
type Option func(*Registry)

// WithLimits sets the budget for matching a pattern against a topic. Zero
// fields keep the DefaultLimits value: publish matching is never unbounded.
func WithLimits(lim keyglob.Limits) Option {
	return func(r *Registry) {
		if lim.MaxSteps > 0 {
			r.limits.MaxSteps = lim.MaxSteps
		}
		if lim.MaxDepth > 0 {
			r.limits.MaxDepth = lim.MaxDepth
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger, opts ...Option) *Registry {
	if log == nil {
		log = slog.Default()
	}
	r := &Registry{
		log:      log.With("component", "pubsub"),
		limits:   DefaultLimits,
		channels: make(map[string]*channel),
		byID:     make(map[uuid.UUID]*Subscription),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe adds a pattern subscription to channel, creating the channel on
// first use. buf is the delivery buffer size, at most MaxBuffer.
func (r *Registry) Subscribe(channelName, pattern string, buf int) (*Subscription, error) {
	if err := ValidateName(channelName); err != nil {
		return nil, err
	}
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}
	switch {
	case buf > MaxBuffer:
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidBuffer, buf, MaxBuffer)
	case buf <= 0:
		buf = DefaultBuffer
	}

	c := make(chan Message, buf)
	sub := &Subscription{
		ID:      uuid.New(),
		Channel: channelName,
		Pattern: pattern,
		C:       c,
		c:       c,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[channelName]
	if !ok {
		ch = &channel{subs: make(map[string][]*Subscription)}
		r.channels[channelName] = ch
	}
	if _, ok := ch.subs[pattern]; !ok {
		ch.patterns = append(ch.patterns, pattern)
	}
	ch.subs[pattern] = append(ch.subs[pattern], sub)
	r.byID[sub.ID] = sub

	r.log.Debug("subscribed", "channel", channelName, "pattern", pattern, "id", sub.ID)
	return sub, nil
}

// Unsubscribe removes the subscription and closes its channel. A pattern
// with no subscriptions left is dropped, and so is a channel with no
// patterns left.
func (r *Registry) Unsubscribe(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)

	ch := r.channels[sub.Channel]
	subs := slices.DeleteFunc(ch.subs[sub.Pattern], func(s *Subscription) bool { return s == sub })
	if len(subs) == 0 {
		delete(ch.subs, sub.Pattern)
		ch.patterns = slices.DeleteFunc(ch.patterns, func(p string) bool { return p == sub.Pattern })
	} else {
		ch.subs[sub.Pattern] = subs
	}
	if len(ch.patterns) == 0 {
		delete(r.channels, sub.Channel)
	}
	close(sub.c)

	r.log.Debug("unsubscribed", "channel", sub.Channel, "pattern", sub.Pattern, "id", id)
	return nil
}

// Publish delivers payload to every subscription on channelName whose
// pattern matches topic, and returns the number of deliveries. Delivery never
// blocks: a subscription with a full buffer misses the message. A pattern
// that exceeds the registry limits against topic is skipped.
func (r *Registry) Publish(channelName, topic string, payload []byte) (int, error) {
	if err := ValidateName(channelName); err != nil {
		return 0, err
	}
	if err := ValidateTopic(topic); err != nil {
		return 0, err
	}

	matched := r.match(channelName, topic)
	if len(matched) == 0 {
		return 0, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Subscriptions may have changed since matching; deliver to the current ones.
	ch, ok := r.channels[channelName]
	if !ok {
		return 0, nil
	}

	delivered := 0
	for _, pattern := range matched {
		for _, sub := range ch.subs[pattern] {
			msg := Message{Channel: channelName, Topic: topic, Pattern: pattern, Payload: payload}
			select {
			case sub.c <- msg:
				delivered++
			default:
				if sub.dropped.Add(1) == 1 {
					r.log.Warn("subscription buffer full, dropping messages", "channel", channelName, "pattern", pattern, "id", sub.ID)
				}
			}
		}
	}
	return delivered, nil
}

// match returns the patterns of channelName that match topic. Matching runs
// without the registry lock.
func (r *Registry) match(channelName, topic string) []string {
	r.mu.RLock()
	var patterns []string
	if ch, ok := r.channels[channelName]; ok {
		patterns = slices.Clone(ch.patterns)
	}
	r.mu.RUnlock()

	var matched []string
	for _, pattern := range patterns {
		ok, err := keyglob.MatchBounded(context.Background(), []byte(topic), []byte(pattern), false, r.limits)
		if err != nil {
			r.log.Warn("pattern skipped", "channel", channelName, "pattern", pattern, "topic", topic, "error", err)
			continue
		}
		if ok {
			matched = append(matched, pattern)
		}
	}
	return matched
}

// Lookup returns the subscription with the given ID.
func (r *Registry) Lookup(id uuid.UUID) (*Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.byID[id]
	return sub, ok
}

// Channels returns the names of channels with at least one subscription.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Patterns returns the subscribed patterns of a channel in first-subscription order.
func (r *Registry) Patterns(channelName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ch, ok := r.channels[channelName]; ok {
		return slices.Clone(ch.patterns)
	}
	return nil
}

// Close unsubscribes everything.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byID {
		close(sub.c)
	}
	clear(r.byID)
	clear(r.channels)
}
