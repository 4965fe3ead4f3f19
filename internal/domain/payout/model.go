package payout

import "time"

const (
	StatusPending   = "PENDING"
	StatusInTransit = "IN_TRANSIT"
	StatusPaid      = "PAID"
	StatusFailed    = "FAILED"
)

// Payout is a platform-initiated transfer of accumulated funds to a
// merchant's bank account, keyed by the platform's payout identifier.
type Payout struct {
	ExternalID     string    `json:"external_id"`
	MerchantID     string    `json:"merchant_id"`
	Status         string    `json:"status"`
	AmountCents    int64     `json:"amount_cents"`
	FailureMessage string    `json:"failure_message,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Transfer is a movement of funds between platform accounts (for example a
// marketplace split), keyed by the platform's transfer identifier.
type Transfer struct {
	ExternalID  string    `json:"external_id"`
	MerchantID  string    `json:"merchant_id"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	UpdatedAt   time.Time `json:"updated_at"`
}
