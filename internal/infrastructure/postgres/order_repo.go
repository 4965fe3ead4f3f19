package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// UpdateStatusByChargeID transitions the order owning the given platform
// charge id. Setting the same status twice is a plain no-op at the row
// level, which is the second line of defense behind event deduplication.
func (r *OrderRepository) UpdateStatusByChargeID(ctx context.Context, chargeID string, status string) error {
	const sql = `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE charge_id = $1
	`

	cmdTag, err := pickExecutor(ctx, r.pool).Exec(ctx, sql, chargeID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("order for charge %s: %w", chargeID, ErrNotFound)
	}

	return nil
}
