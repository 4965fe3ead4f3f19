package webhook

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event is one delivery from the payment platform. The same ID may arrive
// multiple times across separate deliveries; everything downstream of the
// verifier keys off ID for deduplication.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"-"`
	Data       json.RawMessage `json:"-"`

	// DeliveryAttempt is a best-effort counter of how many times this event
	// id has been seen by this system. Used for logging only.
	DeliveryAttempt int64 `json:"-"`
}

type eventEnvelope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a verified payload. Malformed bodies are terminal:
// redelivering the same bytes cannot make them parse.
func ParseEvent(body []byte) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Event{}, Validation(fmt.Errorf("decode event: %w", err))
	}
	if env.ID == "" {
		return Event{}, Validation(fmt.Errorf("event is missing an id"))
	}
	if env.Type == "" {
		return Event{}, Validation(fmt.Errorf("event %s is missing a type", env.ID))
	}

	return Event{
		ID:         env.ID,
		Type:       env.Type,
		OccurredAt: time.Unix(env.Created, 0).UTC(),
		Data:       env.Data.Object,
	}, nil
}
