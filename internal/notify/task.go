package notify

import (
	"encoding/json"
	"time"
)

const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Task is the envelope published to the notification topic. Payload is kept
// as raw JSON produced by the enqueuing handler; the worker forwards it to
// the delivery channel without interpreting it beyond routing fields.
type Task struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Priority   string          `json:"priority"`
	MerchantID string          `json:"merchant_id"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Payload    json.RawMessage `json:"payload"`
}
