package service

import (
	"context"
)

// ActivityEvent mirrors an appended activity log entry for downstream
// consumers (audit pipelines, analytics).
type ActivityEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	LogID     string `json:"log_id"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishActivityEvent publishes an activity event for async processing
	PublishActivityEvent(ctx context.Context, event *ActivityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
