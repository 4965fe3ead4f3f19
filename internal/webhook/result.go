package webhook

// Status is the terminal state of one processing attempt.
type Status int

const (
	// StatusProcessed means new side effects were applied and the marker written.
	StatusProcessed Status = iota
	// StatusDuplicate means a prior attempt already completed this event.
	StatusDuplicate
	// StatusContended means another attempt holds the lock; retry later.
	StatusContended
	// StatusFailedRetryable asks the platform to redeliver.
	StatusFailedRetryable
	// StatusFailedTerminal acknowledges the event to stop futile redelivery;
	// the failure is surfaced to operators instead.
	StatusFailedTerminal
)

func (s Status) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusDuplicate:
		return "duplicate"
	case StatusContended:
		return "contended"
	case StatusFailedRetryable:
		return "failed_retryable"
	default:
		return "failed_terminal"
	}
}

// Outcome is the caller-facing result of one delivery.
type Outcome struct {
	EventID   string
	EventType string
	Status    Status
	Err       error
}

// Retryable reports whether the platform should redeliver this event.
func (o Outcome) Retryable() bool {
	return o.Status == StatusContended || o.Status == StatusFailedRetryable
}

// failureOutcome classifies an error into the matching terminal status.
func failureOutcome(ev Event, err error) Outcome {
	kind := KindOf(err)

	status := StatusFailedTerminal
	switch {
	case kind == KindLockContention:
		status = StatusContended
	case kind.Retryable():
		status = StatusFailedRetryable
	}

	return Outcome{
		EventID:   ev.ID,
		EventType: ev.Type,
		Status:    status,
		Err:       err,
	}
}
