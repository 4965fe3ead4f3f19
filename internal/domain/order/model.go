package order

import (
	"time"
)

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"
)

// Order is a merchant sale. ChargeID is the payment platform's transaction
// identifier and is stable across webhook redeliveries, so status
// transitions keyed by it are naturally idempotent.
type Order struct {
	ID          string    `json:"id"`
	MerchantID  string    `json:"merchant_id"`
	ChargeID    string    `json:"charge_id"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
