package dto

import (
	"talent-hub/internal/domain/resume"
	"talent-hub/internal/usecase"
)

type ResumeParseResponse struct {
	Parsed resume.Parsed  `json:"parsed"`
	Match  *MatchResponse `json:"match,omitempty"`
}

func FromResumeParse(r usecase.ResumeParseResult) ResumeParseResponse {
	out := ResumeParseResponse{Parsed: r.Parsed}
	if r.Match != nil {
		m := FromMatch(*r.Match)
		out.Match = &m
	}
	return out
}
