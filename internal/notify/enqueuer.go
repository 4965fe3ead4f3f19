package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Enqueuer hands a notification task to the asynchronous delivery pipeline.
// Enqueueing is fire-and-forget with at-least-once semantics; nothing in the
// webhook path ever waits for delivery confirmation.
type Enqueuer interface {
	Enqueue(ctx context.Context, task Task) error
}

// messageWriter is the slice of the Kafka producer the enqueuer needs.
type messageWriter interface {
	SendMessage(ctx context.Context, key, value []byte) error
}

// KafkaEnqueuer publishes tasks to the notification topic.
type KafkaEnqueuer struct {
	writer messageWriter
}

func NewKafkaEnqueuer(writer messageWriter) *KafkaEnqueuer {
	return &KafkaEnqueuer{writer: writer}
}

func (e *KafkaEnqueuer) Enqueue(ctx context.Context, task Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Priority == "" {
		task.Priority = PriorityNormal
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}

	value, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal notification task: %w", err)
	}

	// Key by merchant so one merchant's notifications stay ordered.
	key := []byte(task.MerchantID)
	if len(key) == 0 {
		key = []byte(task.ID)
	}

	if err := e.writer.SendMessage(ctx, key, value); err != nil {
		return fmt.Errorf("publish notification task: %w", err)
	}

	return nil
}
