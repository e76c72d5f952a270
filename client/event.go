package client

import (
	"time"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before an API request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after an API request completes successfully.
	// For streams it fires once the stream ends or is closed.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when an API request fails.
	EventRequestError EventType = "request_error"

	// EventStreamChunk fires for every chunk handed to a stream consumer.
	EventStreamChunk EventType = "stream_chunk"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Operation identifies the API operation ("generate", "generate_stream", "generate_image", "call", "stream").
	Operation string

	// RequestID correlates all events of one call.
	RequestID string

	// URL is the request target.
	URL string

	// StatusCode is the HTTP status, once known.
	StatusCode int

	// Chunks is the number of chunks delivered so far (streams only).
	Chunks int

	// Duration is the elapsed time for completed requests.
	Duration time.Duration

	// Error contains the error for EventRequestError.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
