package application

import "github.com/google/uuid"

type BulkOutcome string

const (
	BulkAllSucceeded  BulkOutcome = "all_succeeded"
	BulkPartial       BulkOutcome = "partial"
	BulkNoneSucceeded BulkOutcome = "none_succeeded"
)

type BulkFailure struct {
	ID     uuid.UUID
	Reason string
}

// BulkResult reports a best-effort batch. Successful items are never rolled
// back when others fail.
type BulkResult struct {
	Target    Status
	Succeeded []uuid.UUID
	Failed    []BulkFailure
}

func (r BulkResult) Outcome() BulkOutcome {
	switch {
	case len(r.Failed) == 0:
		return BulkAllSucceeded
	case len(r.Succeeded) == 0:
		return BulkNoneSucceeded
	default:
		return BulkPartial
	}
}
