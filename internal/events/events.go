package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published by the campus service
const (
	EventInterestMarked     = "campus.interest_marked"
	EventInterestWithdrawn  = "campus.interest_withdrawn"
	EventOpportunityCreated = "campus.opportunity_created"
	EventOpportunityDeleted = "campus.opportunity_deleted"
	EventAccountCleanedUp   = "campus.account_cleaned_up"
)

// Event is the envelope for every message on the domain event topic
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent creates an event envelope with identity and timing filled in
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "campus-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// MockEventPublisher captures events in memory for tests
type MockEventPublisher struct {
	mu     sync.Mutex
	events []*Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	if m.logger != nil {
		m.logger.Debug("mock event published", "type", event.Type, "id", event.ID)
	}
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of all captured events
func (m *MockEventPublisher) GetPublishedEvents() []*Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Event, len(m.events))
	copy(out, m.events)
	return out
}

// ClearEvents resets the captured event list
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
