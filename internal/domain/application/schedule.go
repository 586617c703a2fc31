package application

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultInterviewMinutes = 30
	MaxInterviewMinutes     = 480
)

var ErrInvalidSchedule = errors.New("invalid interview schedule")

var interviewModes = map[string]struct{}{
	"video":  {},
	"phone":  {},
	"onsite": {},
}

// ScheduleRequest is the raw scheduling payload before validation.
type ScheduleRequest struct {
	ScheduledAt     string
	InterviewerID   string
	MeetingLink     string
	Mode            string
	DurationMinutes *int
	Notes           string
	SendAssessment  bool
}

// BuildInterview validates req and returns the fields to persist. The
// assessment token is left for the caller to fill in.
func BuildInterview(req ScheduleRequest) (Interview, error) {
	raw := strings.TrimSpace(req.ScheduledAt)
	if raw == "" {
		return Interview{}, fmt.Errorf("%w: scheduled_at is required", ErrInvalidSchedule)
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Interview{}, fmt.Errorf("%w: scheduled_at must be RFC 3339", ErrInvalidSchedule)
	}
	at = at.UTC()

	minutes := DefaultInterviewMinutes
	if req.DurationMinutes != nil {
		minutes = *req.DurationMinutes
	}
	if minutes <= 0 || minutes > MaxInterviewMinutes {
		return Interview{}, fmt.Errorf("%w: interview_duration_minutes must be between 1 and %d", ErrInvalidSchedule, MaxInterviewMinutes)
	}

	iv := Interview{
		ScheduledAt:     &at,
		DurationMinutes: &minutes,
		InterviewerID:   optional(req.InterviewerID),
		MeetingLink:     optional(req.MeetingLink),
		Notes:           optional(req.Notes),
	}

	if mode := strings.ToLower(strings.TrimSpace(req.Mode)); mode != "" {
		if _, ok := interviewModes[mode]; !ok {
			return Interview{}, fmt.Errorf("%w: unsupported interview_mode %q", ErrInvalidSchedule, req.Mode)
		}
		iv.Mode = &mode
	}

	return iv, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
