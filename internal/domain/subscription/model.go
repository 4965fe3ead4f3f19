package subscription

import "time"

const (
	StatusActive   = "ACTIVE"
	StatusPastDue  = "PAST_DUE"
	StatusCanceled = "CANCELED"
)

// Subscription links a merchant account to a recurring billing plan on the
// payment platform. Upserts are keyed by the platform's subscription id.
type Subscription struct {
	ExternalID       string    `json:"external_id"`
	MerchantID       string    `json:"merchant_id"`
	PlanID           string    `json:"plan_id"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	UpdatedAt        time.Time `json:"updated_at"`
}
