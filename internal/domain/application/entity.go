package application

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	Skills         []string
	ResumeURL      string
	CoverLetter    *string
	MatchScore     *int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Interview Interview
}

// Interview holds the fields written together with the move to
// StatusInterviewing. All fields are nil until an interview is scheduled.
type Interview struct {
	ScheduledAt     *time.Time
	InterviewerID   *string
	MeetingLink     *string
	Mode            *string
	DurationMinutes *int
	Notes           *string
	AssessmentToken *string
}

func (a Application) RankScore() *int          { return a.MatchScore }
func (a Application) RankCreatedAt() time.Time { return a.CreatedAt }
func (a Application) RankID() uuid.UUID        { return a.ID }
