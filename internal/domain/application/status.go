package application

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusSubmitted    Status = "submitted"
	StatusShortlisted  Status = "shortlisted"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
)

var (
	ErrUnknownStatus     = errors.New("unknown application status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var transitions = map[Status][]Status{
	StatusSubmitted:    {StatusShortlisted, StatusRejected, StatusInterviewing},
	StatusShortlisted:  {StatusInterviewing, StatusRejected},
	StatusInterviewing: {StatusOffered, StatusRejected, StatusInterviewing},
	StatusOffered:      nil,
	StatusRejected:     nil,
}

// Known reports whether s is one of the workflow statuses. Rows may carry
// other values written by older tooling; those are shown as-is and never
// transitioned.
func (s Status) Known() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s.Known() && len(transitions[s]) == 0
}

// BulkTarget reports whether s may be applied to many applications at once.
func (s Status) BulkTarget() bool {
	return s == StatusShortlisted || s == StatusRejected
}

// CheckTransition validates moving an application from one status to
// another. Moving to the current status is always allowed.
func CheckTransition(from, to Status) error {
	if !to.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if from == to {
		return nil
	}
	if !from.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// AllowedNext lists the statuses reachable from s.
func AllowedNext(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
