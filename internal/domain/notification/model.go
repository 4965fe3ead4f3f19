package notification

import (
	"encoding/json"
	"time"
)

// Notification is the durable record of a delivered notification task,
// written by the notifier worker after it hands the message off.
type Notification struct {
	ID          string          `json:"id"`
	TaskType    string          `json:"task_type"`
	Priority    string          `json:"priority"`
	MerchantID  string          `json:"merchant_id"`
	Payload     json.RawMessage `json:"payload"`
	EnqueuedAt  time.Time       `json:"enqueued_at"`
	DeliveredAt time.Time       `json:"delivered_at"`
}
