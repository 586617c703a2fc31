package handler

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/infrastructure/export"
	"talent-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ExportHandler struct {
	uc  usecase.ExportUsecase
	now func() time.Time
}

func NewExportHandler(uc usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{uc: uc, now: time.Now}
}

func (h *ExportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs/:id/applications/export", middleware.RequireRoles(identity.RoleHR, identity.RoleAdmin), h.ExportCandidates)
}

// ExportCandidates sends the job's ranked candidates as an .xlsx download.
// The workbook is built in memory so a failure can still be reported in the
// JSON envelope.
func (h *ExportHandler) ExportCandidates(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	j, err := h.uc.ExportCandidates(c.Context(), who, jobID, &buf)
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFilename(j.Title, h.now())))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func exportFilename(title string, at time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(title))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "job"
	}
	return fmt.Sprintf("candidates-%s-%s.xlsx", slug, at.UTC().Format("20060102"))
}
