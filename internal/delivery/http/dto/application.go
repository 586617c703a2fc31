package dto

import (
	"time"

	"talent-hub/internal/domain/application"

	"github.com/google/uuid"
)

type SubmitApplicationRequest struct {
	CandidateName  string   `json:"candidate_name" validate:"max=200"`
	CandidatePhone string   `json:"candidate_phone" validate:"max=50"`
	Skills         []string `json:"skills" validate:"max=200,dive,max=100"`
	ResumeURL      string   `json:"resume_url" validate:"omitempty,url,max=2000"`
	CoverLetter    string   `json:"cover_letter" validate:"max=20000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ScheduleInterviewRequest struct {
	ScheduledAt     string `json:"scheduled_at" validate:"required"`
	InterviewerID   string `json:"interviewer_id" validate:"max=200"`
	MeetingLink     string `json:"meeting_link" validate:"omitempty,url,max=2000"`
	InterviewMode   string `json:"interview_mode"`
	DurationMinutes *int   `json:"interview_duration_minutes"`
	Notes           string `json:"interviewer_notes" validate:"max=5000"`
	SendAssessment  bool   `json:"send_assessment"`
}

type BulkStatusRequest struct {
	ApplicationIDs []uuid.UUID `json:"application_ids" validate:"required,min=1,max=500"`
	Status         string      `json:"status" validate:"required"`
}

type InterviewResponse struct {
	ScheduledAt     *time.Time `json:"scheduled_at"`
	InterviewerID   *string    `json:"interviewer_id,omitempty"`
	MeetingLink     *string    `json:"meeting_link"`
	Mode            *string    `json:"interview_mode"`
	DurationMinutes *int       `json:"interview_duration_minutes"`
	Notes           *string    `json:"interviewer_notes,omitempty"`
	AssessmentToken *string    `json:"assessment_token,omitempty"`
}

type ApplicationResponse struct {
	ID               uuid.UUID          `json:"id"`
	JobID            uuid.UUID          `json:"job_id"`
	CandidateName    string             `json:"candidate_name"`
	CandidateEmail   string             `json:"candidate_email"`
	CandidatePhone   string             `json:"candidate_phone"`
	Skills           []string           `json:"skills"`
	ResumeURL        string             `json:"resume_url"`
	CoverLetter      *string            `json:"cover_letter"`
	ResumeMatchScore *int               `json:"resume_match_score"`
	Status           string             `json:"status"`
	AllowedNext      []string           `json:"allowed_next_statuses,omitempty"`
	Interview        *InterviewResponse `json:"interview,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type BulkFailureResponse struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

type BulkStatusResponse struct {
	Status         string                `json:"status"`
	Outcome        string                `json:"outcome"`
	SucceededCount int                   `json:"succeeded_count"`
	FailedCount    int                   `json:"failed_count"`
	Succeeded      []uuid.UUID           `json:"succeeded"`
	Failed         []BulkFailureResponse `json:"failed"`
}

// FromApplication renders an application. Reviewer-only fields are left out
// unless forReviewer is set.
func FromApplication(a application.Application, forReviewer bool) ApplicationResponse {
	out := ApplicationResponse{
		ID:               a.ID,
		JobID:            a.JobID,
		CandidateName:    a.CandidateName,
		CandidateEmail:   a.CandidateEmail,
		CandidatePhone:   a.CandidatePhone,
		Skills:           a.Skills,
		ResumeURL:        a.ResumeURL,
		CoverLetter:      a.CoverLetter,
		ResumeMatchScore: a.MatchScore,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if iv := a.Interview; iv.ScheduledAt != nil {
		out.Interview = &InterviewResponse{
			ScheduledAt:     iv.ScheduledAt,
			MeetingLink:     iv.MeetingLink,
			Mode:            iv.Mode,
			DurationMinutes: iv.DurationMinutes,
			AssessmentToken: iv.AssessmentToken,
		}
		if forReviewer {
			out.Interview.InterviewerID = iv.InterviewerID
			out.Interview.Notes = iv.Notes
		}
	}
	if forReviewer {
		next := application.AllowedNext(a.Status)
		out.AllowedNext = make([]string, 0, len(next))
		for _, s := range next {
			out.AllowedNext = append(out.AllowedNext, string(s))
		}
	}
	return out
}

func FromApplications(items []application.Application, forReviewer bool) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromApplication(a, forReviewer))
	}
	return out
}

func FromBulkResult(r application.BulkResult) BulkStatusResponse {
	out := BulkStatusResponse{
		Status:         string(r.Target),
		Outcome:        string(r.Outcome()),
		SucceededCount: len(r.Succeeded),
		FailedCount:    len(r.Failed),
		Succeeded:      r.Succeeded,
		Failed:         make([]BulkFailureResponse, 0, len(r.Failed)),
	}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, BulkFailureResponse{ID: f.ID, Reason: f.Reason})
	}
	return out
}
