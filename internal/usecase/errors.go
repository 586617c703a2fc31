package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")

	ErrJobNotFound         = errors.New("job not found")
	ErrJobClosed           = errors.New("job is not accepting applications")
	ErrApplicationNotFound = errors.New("application not found")
	ErrProfileItemNotFound = errors.New("profile item not found")

	ErrDuplicateApplication = errors.New("you have already applied to this job")
	ErrInvalidTransition    = errors.New("invalid status transition")
	// ErrConflict is returned when a row changed between read and write.
	ErrConflict           = errors.New("application was modified by another request")
	ErrSkillAlreadyExists = errors.New("skill already exists")

	ErrDraftTooLarge = errors.New("draft exceeds size limit")
)
