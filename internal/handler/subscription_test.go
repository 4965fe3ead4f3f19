package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"commercehub/internal/domain/subscription"
	"commercehub/internal/webhook"

	"github.com/stretchr/testify/require"
)

func TestSubscriptionUpdatedUpserts(t *testing.T) {
	subs := newFakeSubs()
	h := NewSubscriptionUpdated(subs, testLogger())

	ev := webhook.Event{
		ID:   "evt_1",
		Type: "customer.subscription.updated",
		Data: json.RawMessage(`{
			"id": "sub_1",
			"merchant_id": "m_1",
			"plan_id": "plan_pro",
			"status": "ACTIVE",
			"current_period_end": 1702600000
		}`),
	}
	require.NoError(t, h.Handle(context.Background(), ev))

	stored := subs.subs["sub_1"]
	require.NotNil(t, stored)
	require.Equal(t, "m_1", stored.MerchantID)
	require.Equal(t, "plan_pro", stored.PlanID)
	require.Equal(t, subscription.StatusActive, stored.Status)
	require.Equal(t, time.Unix(1702600000, 0).UTC(), stored.CurrentPeriodEnd)

	// Redelivery applies the same values again; state is unchanged.
	require.NoError(t, h.Handle(context.Background(), ev))
	require.Equal(t, *stored, *subs.subs["sub_1"])
}

func TestSubscriptionDeletedClearsLinkAndNotifies(t *testing.T) {
	subs := newFakeSubs()
	subs.subs["sub_1"] = &subscription.Subscription{ExternalID: "sub_1", MerchantID: "m_1"}
	enq := &fakeEnqueuer{}
	h := NewSubscriptionDeleted(subs, enq, testLogger())

	ev := webhook.Event{
		ID:   "evt_2",
		Type: "customer.subscription.deleted",
		Data: json.RawMessage(`{"id":"sub_1","merchant_id":"m_1"}`),
	}
	require.NoError(t, h.Handle(context.Background(), ev))

	require.NotContains(t, subs.subs, "sub_1")
	require.Equal(t, []string{"sub_1"}, subs.removed)
	require.Len(t, enq.byType("subscription_cancelled"), 1)
}
