package service

import (
	"context"
	"time"
)

// ContentEvent announces a change to blog content.
type ContentEvent struct {
	RequestID  string    `json:"request_id,omitempty"`
	Type       string    `json:"type"`
	ResourceID int64     `json:"resource_id"`
	PostID     int64     `json:"post_id"`
	ActorID    int64     `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher sends content events to a message queue.
type EventPublisher interface {
	PublishContentEvent(ctx context.Context, event *ContentEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
