package postgres

import (
	"context"
	"fmt"

	"commercehub/internal/domain/notification"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// RecordDelivered persists a delivered notification. The worker may see the
// same task twice (at-least-once topic), so inserts conflict-skip on task id.
func (r *NotificationRepository) RecordDelivered(ctx context.Context, n *notification.Notification) (bool, error) {
	const sql = `
		INSERT INTO notifications (id, task_type, priority, merchant_id, payload, enqueued_at, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	cmdTag, err := pickExecutor(ctx, r.pool).Exec(ctx, sql,
		n.ID, n.TaskType, n.Priority, n.MerchantID, n.Payload, n.EnqueuedAt)
	if err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
