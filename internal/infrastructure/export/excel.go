package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"talent-hub/internal/domain/application"
	"talent-hub/internal/domain/job"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Ranked Candidates"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var statusOrder = []application.Status{
	application.StatusSubmitted,
	application.StatusShortlisted,
	application.StatusInterviewing,
	application.StatusOffered,
	application.StatusRejected,
}

// Excel writes candidate reports as .xlsx workbooks.
type Excel struct {
	now func() time.Time
}

func NewExcel() *Excel {
	return &Excel{now: time.Now}
}

// WriteCandidates writes a workbook for j. apps must already be ranked.
func (e *Excel) WriteCandidates(w io.Writer, j job.Job, apps []application.Application) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(CandidatesSheet); err != nil {
		return err
	}
	if err := e.writeSummary(f, j, apps); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeCandidates(f, apps); err != nil {
		return fmt.Errorf("candidates sheet: %w", err)
	}
	return f.Write(w)
}

func (e *Excel) writeSummary(f *excelize.File, j job.Job, apps []application.Application) error {
	sh := SummarySheet
	if err := f.SetColWidth(sh, "A", "A", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(sh, "B", "B", 50); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	counts := make(map[application.Status]int, len(statusOrder))
	scored, total := 0, 0
	for _, a := range apps {
		counts[a.Status]++
		if a.MatchScore != nil {
			scored++
			total += *a.MatchScore
		}
	}

	rows := [][2]any{
		{"Job", j.Title},
		{"Location", j.Location},
		{"Status", string(j.Status)},
		{"Required skills", strings.Join(j.RequiredSkills, ", ")},
		{"Generated", e.now().UTC().Format(time.RFC3339)},
		{"Total applications", len(apps)},
	}
	for _, st := range statusOrder {
		rows = append(rows, [2]any{"Status: " + string(st), counts[st]})
	}
	if scored > 0 {
		rows = append(rows, [2]any{"Average match score", fmt.Sprintf("%.1f", float64(total)/float64(scored))})
	}

	if err := f.SetCellValue(sh, "A1", "Candidate Report"); err != nil {
		return err
	}
	if err := f.MergeCell(sh, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "B1", header); err != nil {
		return err
	}
	for i, r := range rows {
		row := i + 3
		a, b := fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(sh, a, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, a, a, label); err != nil {
			return err
		}
		if err := f.SetCellValue(sh, b, r[1]); err != nil {
			return err
		}
	}
	return nil
}

var candidateHeaders = []string{
	"Rank", "Candidate", "Email", "Phone", "Match Score", "Status", "Skills", "Applied At", "Interview At",
}

func writeCandidates(f *excelize.File, apps []application.Application) error {
	sh := CandidatesSheet
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for col, h := range candidateHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sh, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, cell, cell, header); err != nil {
			return err
		}
	}

	for i, a := range apps {
		var score any = ""
		if a.MatchScore != nil {
			score = *a.MatchScore
		}
		var interview any = ""
		if a.Interview.ScheduledAt != nil {
			interview = a.Interview.ScheduledAt.UTC().Format(time.RFC3339)
		}
		values := []any{
			i + 1,
			a.CandidateName,
			a.CandidateEmail,
			a.CandidatePhone,
			score,
			string(a.Status),
			strings.Join(a.Skills, ", "),
			a.CreatedAt.UTC().Format(time.RFC3339),
			interview,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sh, "B", "C", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sh, "G", "G", 40); err != nil {
		return err
	}
	return f.SetPanes(sh, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
