package job

import (
	"errors"
	"reflect"
	"testing"
)

func intp(v int) *int       { return &v }
func int64p(v int64) *int64 { return &v }

func TestNormalize(t *testing.T) {
	j := Job{Title: "  Backend Engineer ", RequiredSkills: []string{" Go", "", "  ", "SQL "}}
	j.Normalize()
	if j.Title != "Backend Engineer" {
		t.Fatalf("title = %q", j.Title)
	}
	if !reflect.DeepEqual(j.RequiredSkills, []string{"Go", "SQL"}) {
		t.Fatalf("skills = %q", j.RequiredSkills)
	}
	if j.Status != StatusActive {
		t.Fatalf("default status = %q", j.Status)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{"ok", Job{Title: "Go dev", Status: StatusActive}, false},
		{"ok ranges", Job{Title: "Go dev", Status: StatusDraft, ExperienceMin: intp(2), ExperienceMax: intp(2), SalaryMin: int64p(1), SalaryMax: int64p(5)}, false},
		{"open ranges", Job{Title: "Go dev", Status: StatusClosed, ExperienceMin: intp(3), SalaryMax: int64p(10)}, false},
		{"no title", Job{Status: StatusActive}, true},
		{"bad status", Job{Title: "Go dev", Status: "archived"}, true},
		{"experience inverted", Job{Title: "Go dev", Status: StatusActive, ExperienceMin: intp(5), ExperienceMax: intp(2)}, true},
		{"negative experience", Job{Title: "Go dev", Status: StatusActive, ExperienceMin: intp(-1)}, true},
		{"salary inverted", Job{Title: "Go dev", Status: StatusActive, SalaryMin: int64p(9), SalaryMax: int64p(1)}, true},
		{"negative salary", Job{Title: "Go dev", Status: StatusActive, SalaryMax: int64p(-5)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.job.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidJob) {
				t.Fatalf("err = %v, want ErrInvalidJob", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus(" Closed "); !ok || s != StatusClosed {
		t.Fatalf("ParseStatus = %q, %v", s, ok)
	}
	if _, ok := ParseStatus("archived"); ok {
		t.Fatal("archived accepted")
	}
	if !(Job{Status: StatusActive}).AcceptsApplications() || (Job{Status: StatusDraft}).AcceptsApplications() {
		t.Fatal("only active jobs accept applications")
	}
}
