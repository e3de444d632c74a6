package events

import (
	"fmt"
	"time"
)

// SourceService is the event source reported to the event bus
const SourceService = "starwars.api"

// Lifecycle actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// EntityChanged is raised after a film or planet was created, updated or
// removed. NaturalKey is empty for removals.
type EntityChanged struct {
	BaseEvent
	Resource   string `json:"resource"`
	NaturalKey string `json:"natural_key,omitempty"`
}

// NewEntityChanged creates an EntityChanged event of type "<resource>.<action>"
func NewEntityChanged(resource, action, id, naturalKey string, timestamp time.Time) EntityChanged {
	return EntityChanged{
		BaseEvent: BaseEvent{
			AggregateID: id,
			EventType:   fmt.Sprintf("%s.%s", resource, action),
			Timestamp:   timestamp,
			Version:     1,
		},
		Resource:   resource,
		NaturalKey: naturalKey,
	}
}
