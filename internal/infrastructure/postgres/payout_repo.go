package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PayoutRepository struct {
	pool *pgxpool.Pool
}

func NewPayoutRepository(pool *pgxpool.Pool) *PayoutRepository {
	return &PayoutRepository{pool: pool}
}

func (r *PayoutRepository) UpdatePayoutStatus(ctx context.Context, externalID, status, failureMessage string) error {
	const sql = `
		UPDATE payouts
		SET status = $2, failure_message = NULLIF($3, ''), updated_at = NOW()
		WHERE external_id = $1
	`

	cmdTag, err := pickExecutor(ctx, r.pool).Exec(ctx, sql, externalID, status, failureMessage)
	if err != nil {
		return fmt.Errorf("update payout status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payout %s: %w", externalID, ErrNotFound)
	}

	return nil
}

func (r *PayoutRepository) UpdateTransferStatus(ctx context.Context, externalID, status string) error {
	const sql = `
		UPDATE transfers
		SET status = $2, updated_at = NOW()
		WHERE external_id = $1
	`

	cmdTag, err := pickExecutor(ctx, r.pool).Exec(ctx, sql, externalID, status)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transfer %s: %w", externalID, ErrNotFound)
	}

	return nil
}
