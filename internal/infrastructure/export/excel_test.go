package export

import (
	"bytes"
	"testing"
	"time"

	"talent-hub/internal/domain/application"
	"talent-hub/internal/domain/job"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func TestWriteCandidates(t *testing.T) {
	score := 80
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	apps := []application.Application{
		{
			ID: uuid.New(), CandidateName: "Ana", CandidateEmail: "ana@example.com",
			Skills: []string{"Go", "SQL"}, MatchScore: &score, Status: application.StatusInterviewing,
			CreatedAt: at, Interview: application.Interview{ScheduledAt: &at},
		},
		{ID: uuid.New(), CandidateName: "Budi", CandidateEmail: "budi@example.com", Status: application.StatusSubmitted, CreatedAt: at},
	}
	j := job.Job{ID: uuid.New(), Title: "Backend Engineer", Status: job.StatusActive, RequiredSkills: []string{"Go"}}

	var buf bytes.Buffer
	if err := NewExcel().WriteCandidates(&buf, j, apps); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	title, _ := f.GetCellValue(SummarySheet, "B3")
	if title != "Backend Engineer" {
		t.Fatalf("expected job title in summary, got %q", title)
	}
	total, _ := f.GetCellValue(SummarySheet, "B8")
	if total != "2" {
		t.Fatalf("expected 2 applications, got %q", total)
	}

	rows, err := f.GetRows(CandidatesSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Ana" || rows[1][4] != "80" || rows[1][6] != "Go, SQL" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[2][4] != "" {
		t.Fatalf("expected blank score for unscored candidate, got %q", rows[2][4])
	}
}
