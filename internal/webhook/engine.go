package webhook

import (
	"context"
	"log/slog"
	"time"
)

// Engine runs the full per-delivery pipeline: verify, dedup, lock, dispatch,
// mark, release. It is the only writer of the processed marker and the only
// holder of the per-event lock.
type Engine struct {
	verifier *Verifier
	guard    *Guard
	registry *Registry
	log      *slog.Logger
}

func NewEngine(verifier *Verifier, guard *Guard, registry *Registry, log *slog.Logger) *Engine {
	return &Engine{
		verifier: verifier,
		guard:    guard,
		registry: registry,
		log:      log.With("component", "webhook_engine"),
	}
}

// Process handles a single delivery of raw body bytes plus signature header
// and returns the outcome the HTTP boundary translates into a status code.
func (e *Engine) Process(ctx context.Context, body []byte, sigHeader string) Outcome {
	if err := e.verifier.Verify(body, sigHeader); err != nil {
		e.log.Warn("rejected delivery with invalid signature", "error", err)
		eventsTotal.WithLabelValues("unverified", StatusFailedTerminal.String()).Inc()
		return failureOutcome(Event{}, err)
	}

	ev, err := ParseEvent(body)
	if err != nil {
		e.log.Warn("rejected malformed payload", "error", err)
		eventsTotal.WithLabelValues("malformed", StatusFailedTerminal.String()).Inc()
		return failureOutcome(ev, err)
	}

	ev.DeliveryAttempt = e.guard.CountAttempt(ctx, ev.ID)
	log := e.log.With("event_id", ev.ID, "event_type", ev.Type, "delivery_attempt", ev.DeliveryAttempt)

	outcome := e.process(ctx, ev, log)
	eventsTotal.WithLabelValues(ev.Type, outcome.Status.String()).Inc()

	switch outcome.Status {
	case StatusProcessed:
		log.Info("event processed")
	case StatusDuplicate:
		log.Info("duplicate delivery acknowledged")
	case StatusContended:
		log.Info("event locked by another attempt, asking for redelivery")
	case StatusFailedRetryable:
		log.Error("event processing failed, asking for redelivery", "error", outcome.Err)
	case StatusFailedTerminal:
		// Acknowledged to stop redelivery; needs operator attention.
		log.Error("event processing failed terminally", "error", outcome.Err)
	}

	return outcome
}

func (e *Engine) process(ctx context.Context, ev Event, log *slog.Logger) Outcome {
	// Fast path, advisory only: the authoritative duplicate decision is
	// re-made below while holding the lock.
	done, err := e.guard.IsProcessed(ctx, ev.ID)
	if err != nil {
		return failureOutcome(ev, err)
	}
	if done {
		return Outcome{EventID: ev.ID, EventType: ev.Type, Status: StatusDuplicate}
	}

	token, err := e.guard.AcquireLock(ctx, ev.ID)
	if err != nil {
		return failureOutcome(ev, err)
	}
	defer e.guard.ReleaseLock(ctx, ev.ID, token)

	// Another instance may have finished between the fast-path check and
	// lock acquisition.
	done, err = e.guard.IsProcessed(ctx, ev.ID)
	if err != nil {
		return failureOutcome(ev, err)
	}
	if done {
		return Outcome{EventID: ev.ID, EventType: ev.Type, Status: StatusDuplicate}
	}

	started := time.Now()
	handled, err := e.registry.Dispatch(ctx, ev)
	handlerDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		return failureOutcome(ev, err)
	}
	if !handled {
		log.Info("no handler registered for event type, acknowledging")
		unknownEvents.Inc()
	}

	if err := e.guard.MarkProcessed(ctx, ev.ID); err != nil {
		// Side effects are applied but unrecorded; redelivery will re-run
		// the handler and lean on value-idempotent domain writes.
		return failureOutcome(ev, err)
	}

	return Outcome{EventID: ev.ID, EventType: ev.Type, Status: StatusProcessed}
}
