package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/application"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/matching"
	"talent-hub/internal/domain/resume"
	"talent-hub/internal/pkg/jwt"
	"talent-hub/internal/pkg/validation"
	"talent-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var testTokens = jwt.NewHMACService("test-secret", time.Hour)

func token(t *testing.T, role identity.Role) string {
	t.Helper()
	tok, err := testTokens.GenerateAccessToken(identity.Identity{UserID: uuid.New(), Email: string(role) + "@example.com", Role: role})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

type registrar interface {
	RegisterRoutes(r fiber.Router)
}

func newTestApp(handlers ...registrar) *fiber.App {
	l := logrus.New()
	l.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(l).Middleware())
	api := app.Group("/api/v1", middleware.NewAuthMiddleware(testTokens).Middleware())
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return app
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, app *fiber.App, method, path, tok string, body any) (*http.Response, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, env
}

func TestMapUsecaseError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: title is required", usecase.ErrInvalidInput), http.StatusBadRequest},
		{usecase.ErrForbidden, http.StatusForbidden},
		{usecase.ErrJobNotFound, http.StatusNotFound},
		{usecase.ErrApplicationNotFound, http.StatusNotFound},
		{usecase.ErrJobClosed, http.StatusUnprocessableEntity},
		{usecase.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{usecase.ErrDuplicateApplication, http.StatusConflict},
		{usecase.ErrConflict, http.StatusConflict},
		{usecase.ErrSkillAlreadyExists, http.StatusConflict},
		{usecase.ErrDraftTooLarge, http.StatusRequestEntityTooLarge},
		{resume.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{resume.ErrInvalidFileType, http.StatusUnsupportedMediaType},
		{resume.ErrPasswordProtected, http.StatusUnprocessableEntity},
		{resume.ErrUnparseable, http.StatusUnprocessableEntity},
		{resume.ErrUnavailable, http.StatusServiceUnavailable},
		{usecase.ErrInternal, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var appErr *middleware.AppError
		if !errors.As(mapUsecaseError(tc.err), &appErr) {
			t.Fatalf("%v: not an AppError", tc.err)
		}
		if appErr.StatusCode != tc.want {
			t.Errorf("%v: status %d, want %d", tc.err, appErr.StatusCode, tc.want)
		}
	}
}

type fakeApplications struct {
	submitted  usecase.SubmitApplicationInput
	app        application.Application
	list       []application.Application
	listParams usecase.ApplicationListParams
	bulk       application.BulkResult
	bulkIDs    []uuid.UUID
	schedule   application.ScheduleRequest
	err        error
}

func (f *fakeApplications) Submit(_ context.Context, _ identity.Identity, in usecase.SubmitApplicationInput) (application.Application, error) {
	f.submitted = in
	return f.app, f.err
}

func (f *fakeApplications) Get(context.Context, identity.Identity, uuid.UUID) (application.Application, error) {
	return f.app, f.err
}

func (f *fakeApplications) ListForJob(_ context.Context, _ identity.Identity, _ uuid.UUID, p usecase.ApplicationListParams) ([]application.Application, error) {
	f.listParams = p
	return f.list, f.err
}

func (f *fakeApplications) ListMine(context.Context, identity.Identity) ([]application.Application, error) {
	return f.list, f.err
}

func (f *fakeApplications) SetStatus(context.Context, identity.Identity, uuid.UUID, string) (application.Application, error) {
	return f.app, f.err
}

func (f *fakeApplications) ScheduleInterview(_ context.Context, _ identity.Identity, _ uuid.UUID, req application.ScheduleRequest) (application.Application, error) {
	f.schedule = req
	return f.app, f.err
}

func (f *fakeApplications) BulkSetStatus(_ context.Context, _ identity.Identity, ids []uuid.UUID, _ string) (application.BulkResult, error) {
	f.bulkIDs = ids
	return f.bulk, f.err
}

func TestSubmitApplication(t *testing.T) {
	score := 67
	jobID := uuid.New()
	fake := &fakeApplications{app: application.Application{
		ID: uuid.New(), JobID: jobID, CandidateName: "Ana", CandidateEmail: "job_seeker@example.com",
		Skills: []string{"Python"}, MatchScore: &score, Status: application.StatusSubmitted,
	}}
	app := newTestApp(NewApplicationHandler(fake, validation.New()))

	body := map[string]any{"candidate_name": "Ana", "skills": []string{"Python", "Docker"}}
	resp, env := do(t, app, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/applications", token(t, identity.RoleJobSeeker), body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.StatusCode, env.Message)
	}
	if fake.submitted.JobID != jobID || len(fake.submitted.Skills) != 2 {
		t.Fatalf("usecase input = %+v", fake.submitted)
	}
	var got struct {
		Score  *int   `json:"resume_match_score"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if got.Score == nil || *got.Score != 67 || got.Status != "submitted" {
		t.Fatalf("data = %s", env.Data)
	}

	resp, _ = do(t, app, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/applications", token(t, identity.RoleHR), body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("hr submit status = %d, want 403", resp.StatusCode)
	}

	fake.err = usecase.ErrDuplicateApplication
	resp, env = do(t, app, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/applications", token(t, identity.RoleJobSeeker), body)
	if resp.StatusCode != http.StatusConflict || env.Message != "You have already applied to this job" {
		t.Fatalf("duplicate = %d %q", resp.StatusCode, env.Message)
	}
}

func TestSubmitRejectsBadResumeURL(t *testing.T) {
	fake := &fakeApplications{}
	app := newTestApp(NewApplicationHandler(fake, validation.New()))

	resp, env := do(t, app, http.MethodPost, "/api/v1/jobs/"+uuid.NewString()+"/applications", token(t, identity.RoleJobSeeker),
		map[string]any{"candidate_name": "Ana", "resume_url": "not a url"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(env.Data), "resume_url") {
		t.Fatalf("field details missing: %s", env.Data)
	}
}

func TestBulkStatusPartial(t *testing.T) {
	ok1, ok2, bad := uuid.New(), uuid.New(), uuid.New()
	fake := &fakeApplications{bulk: application.BulkResult{
		Target:    application.StatusRejected,
		Succeeded: []uuid.UUID{ok1, ok2},
		Failed:    []application.BulkFailure{{ID: bad, Reason: "invalid status transition: offered -> rejected"}},
	}}
	app := newTestApp(NewApplicationHandler(fake, validation.New()))

	resp, env := do(t, app, http.MethodPost, "/api/v1/applications/bulk-status", token(t, identity.RoleHR),
		map[string]any{"application_ids": []uuid.UUID{ok1, ok2, bad}, "status": "rejected"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if env.Message != "partial" {
		t.Fatalf("message = %q", env.Message)
	}
	var got struct {
		Outcome        string `json:"outcome"`
		SucceededCount int    `json:"succeeded_count"`
		Failed         []struct {
			ID     uuid.UUID `json:"id"`
			Reason string    `json:"reason"`
		} `json:"failed"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if got.Outcome != "partial" || got.SucceededCount != 2 || len(got.Failed) != 1 || got.Failed[0].ID != bad {
		t.Fatalf("data = %s", env.Data)
	}
	if len(fake.bulkIDs) != 3 {
		t.Fatalf("ids passed = %v", fake.bulkIDs)
	}
}

func TestBulkStatusRequiresIDs(t *testing.T) {
	app := newTestApp(NewApplicationHandler(&fakeApplications{}, validation.New()))

	resp, _ := do(t, app, http.MethodPost, "/api/v1/applications/bulk-status", token(t, identity.RoleHR),
		map[string]any{"application_ids": []uuid.UUID{}, "status": "rejected"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestListForJobParsesMinScore(t *testing.T) {
	fake := &fakeApplications{}
	app := newTestApp(NewApplicationHandler(fake, validation.New()))
	path := "/api/v1/jobs/" + uuid.NewString() + "/applications"

	resp, _ := do(t, app, http.MethodGet, path+"?min_score=abc", token(t, identity.RoleHR), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad min_score status = %d", resp.StatusCode)
	}

	resp, env := do(t, app, http.MethodGet, path+"?status=shortlisted&min_score=50", token(t, identity.RoleAdmin), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if fake.listParams.Status != "shortlisted" || fake.listParams.MinScore == nil || *fake.listParams.MinScore != 50 {
		t.Fatalf("params = %+v", fake.listParams)
	}
	if string(env.Data) != "[]" {
		t.Fatalf("empty list rendered as %s", env.Data)
	}
}

func TestReviewerFieldsHiddenFromSeeker(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	notes := "strong on SQL"
	interviewer := "hr-7"
	fake := &fakeApplications{app: application.Application{
		ID: uuid.New(), Status: application.StatusInterviewing,
		Interview: application.Interview{ScheduledAt: &at, Notes: &notes, InterviewerID: &interviewer},
	}}
	app := newTestApp(NewApplicationHandler(fake, validation.New()))
	path := "/api/v1/applications/" + fake.app.ID.String()

	_, env := do(t, app, http.MethodGet, path, token(t, identity.RoleJobSeeker), nil)
	if strings.Contains(string(env.Data), notes) || strings.Contains(string(env.Data), "allowed_next_statuses") {
		t.Fatalf("seeker sees reviewer fields: %s", env.Data)
	}

	_, env = do(t, app, http.MethodGet, path, token(t, identity.RoleHR), nil)
	if !strings.Contains(string(env.Data), notes) || !strings.Contains(string(env.Data), `"offered"`) {
		t.Fatalf("reviewer view incomplete: %s", env.Data)
	}
}

func TestScheduleInterviewPassesPayload(t *testing.T) {
	fake := &fakeApplications{app: application.Application{ID: uuid.New(), Status: application.StatusInterviewing}}
	app := newTestApp(NewApplicationHandler(fake, validation.New()))

	minutes := 45
	resp, _ := do(t, app, http.MethodPost, "/api/v1/applications/"+fake.app.ID.String()+"/interview", token(t, identity.RoleHR),
		map[string]any{
			"scheduled_at":               "2026-03-01T10:00:00Z",
			"interview_mode":             "video",
			"interview_duration_minutes": minutes,
			"send_assessment":            true,
		})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := fake.schedule
	if got.ScheduledAt != "2026-03-01T10:00:00Z" || got.Mode != "video" || got.DurationMinutes == nil || *got.DurationMinutes != 45 || !got.SendAssessment {
		t.Fatalf("schedule request = %+v", got)
	}

	resp, _ = do(t, app, http.MethodPatch, "/api/v1/applications/not-a-uuid/status", token(t, identity.RoleHR),
		map[string]any{"status": "shortlisted"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", resp.StatusCode)
	}
}

type fakeJobs struct {
	jobs    []job.Job
	params  usecase.JobListParams
	created usecase.JobInput
	err     error
}

func (f *fakeJobs) Create(_ context.Context, _ identity.Identity, in usecase.JobInput) (job.Job, error) {
	f.created = in
	if f.err != nil {
		return job.Job{}, f.err
	}
	return job.Job{ID: uuid.New(), Title: in.Title, RequiredSkills: in.RequiredSkills, Status: job.StatusActive}, nil
}

func (f *fakeJobs) Update(_ context.Context, _ identity.Identity, id uuid.UUID, in usecase.JobInput) (job.Job, error) {
	return job.Job{ID: id, Title: in.Title}, f.err
}

func (f *fakeJobs) Get(_ context.Context, _ identity.Identity, id uuid.UUID) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	return job.Job{ID: id}, nil
}

func (f *fakeJobs) List(_ context.Context, _ identity.Identity, p usecase.JobListParams) ([]job.Job, error) {
	f.params = p
	return f.jobs, f.err
}

func (f *fakeJobs) MatchPreview(_ context.Context, _ identity.Identity, _ uuid.UUID, skills []string) (matching.Result, error) {
	return matching.Score([]string{"Python", "SQL", "Docker"}, skills), f.err
}

func TestJobRoutes(t *testing.T) {
	fake := &fakeJobs{jobs: []job.Job{{ID: uuid.New(), Title: "Backend Engineer", Status: job.StatusActive}}}
	app := newTestApp(NewJobHandler(fake, validation.New()))

	resp, _ := do(t, app, http.MethodPost, "/api/v1/jobs", token(t, identity.RoleJobSeeker), map[string]any{"title": "x"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("seeker create status = %d", resp.StatusCode)
	}

	resp, _ = do(t, app, http.MethodPost, "/api/v1/jobs", token(t, identity.RoleHR), map[string]any{"title": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing title status = %d", resp.StatusCode)
	}

	resp, _ = do(t, app, http.MethodPost, "/api/v1/jobs", token(t, identity.RoleHR),
		map[string]any{"title": "Data Engineer", "required_skills": []string{"SQL"}, "status": "draft"})
	if resp.StatusCode != http.StatusCreated || fake.created.Status != "draft" {
		t.Fatalf("create = %d, input %+v", resp.StatusCode, fake.created)
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/jobs?limit=ten", token(t, identity.RoleJobSeeker), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d", resp.StatusCode)
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/jobs?title=backend&limit=5&offset=10", token(t, identity.RoleJobSeeker), nil)
	if resp.StatusCode != http.StatusOK || fake.params.Title != "backend" || fake.params.Limit != 5 || fake.params.Offset != 10 {
		t.Fatalf("list = %d, params %+v", resp.StatusCode, fake.params)
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/jobs", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", resp.StatusCode)
	}
}

func TestMatchPreview(t *testing.T) {
	app := newTestApp(NewJobHandler(&fakeJobs{}, validation.New()))

	resp, env := do(t, app, http.MethodPost, "/api/v1/jobs/"+uuid.NewString()+"/match-preview", token(t, identity.RoleJobSeeker),
		map[string]any{"skills": []string{"python", "docker", "Kubernetes"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Score   int      `json:"score"`
		Matched []string `json:"matched"`
		Missing []string `json:"missing"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if got.Score != 67 || len(got.Matched) != 2 || len(got.Missing) != 1 || got.Missing[0] != "SQL" {
		t.Fatalf("data = %s", env.Data)
	}
}

type fakeExports struct {
	err error
}

func (f *fakeExports) ExportCandidates(_ context.Context, _ identity.Identity, jobID uuid.UUID, w io.Writer) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	_, _ = w.Write([]byte("PK-workbook"))
	return job.Job{ID: jobID, Title: "Senior Go Engineer"}, nil
}

func TestExportCandidates(t *testing.T) {
	h := NewExportHandler(&fakeExports{})
	h.now = func() time.Time { return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) }
	app := newTestApp(h)
	path := "/api/v1/jobs/" + uuid.NewString() + "/applications/export"

	resp, _ := do(t, app, http.MethodGet, path, token(t, identity.RoleHR), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/vnd.openxmlformats") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "candidates-senior-go-engineer-20260504.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "PK-workbook" {
		t.Fatalf("body = %q", body)
	}

	resp, _ = do(t, app, http.MethodGet, path, token(t, identity.RoleJobSeeker), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("seeker export status = %d", resp.StatusCode)
	}

	app = newTestApp(NewExportHandler(&fakeExports{err: usecase.ErrJobNotFound}))
	resp, env := do(t, app, http.MethodGet, path, token(t, identity.RoleHR), nil)
	if resp.StatusCode != http.StatusNotFound || env.Message != "Job not found" {
		t.Fatalf("missing job = %d %q", resp.StatusCode, env.Message)
	}
}

type fakeResumes struct {
	doc   resume.Document
	jobID *uuid.UUID
	err   error
}

func (f *fakeResumes) Parse(_ context.Context, _ identity.Identity, doc resume.Document, jobID *uuid.UUID) (usecase.ResumeParseResult, error) {
	f.doc, f.jobID = doc, jobID
	if f.err != nil {
		return usecase.ResumeParseResult{}, f.err
	}
	m := matching.Score([]string{"Go"}, []string{"go"})
	return usecase.ResumeParseResult{Parsed: resume.Parsed{Name: "Ana", Skills: []string{"go"}}, Match: &m}, nil
}

func multipartRequest(t *testing.T, path, tok string, file []byte, jobID string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "cv.pdf")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(file)
	}
	if jobID != "" {
		_ = mw.WriteField("job_id", jobID)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestParseResume(t *testing.T) {
	fake := &fakeResumes{}
	app := newTestApp(NewResumeHandler(fake))
	jobID := uuid.New()

	resp, env := send(t, app, multipartRequest(t, "/api/v1/resumes/parse", token(t, identity.RoleJobSeeker), []byte("%PDF-1.4"), jobID.String()))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d %q", resp.StatusCode, env.Message)
	}
	if fake.doc.Filename != "cv.pdf" || string(fake.doc.Data) != "%PDF-1.4" || fake.jobID == nil || *fake.jobID != jobID {
		t.Fatalf("usecase got %+v job %v", fake.doc, fake.jobID)
	}
	if !strings.Contains(string(env.Data), `"score":100`) {
		t.Fatalf("data = %s", env.Data)
	}

	resp, _ = send(t, app, multipartRequest(t, "/api/v1/resumes/parse", token(t, identity.RoleJobSeeker), nil, ""))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing file status = %d", resp.StatusCode)
	}

	fake.err = resume.ErrPasswordProtected
	resp, env = send(t, app, multipartRequest(t, "/api/v1/resumes/parse", token(t, identity.RoleJobSeeker), []byte("%PDF-1.4"), ""))
	if resp.StatusCode != http.StatusUnprocessableEntity || env.Message != "Resume is password protected" {
		t.Fatalf("protected = %d %q", resp.StatusCode, env.Message)
	}

	fake.err = resume.ErrUnavailable
	resp, _ = send(t, app, multipartRequest(t, "/api/v1/resumes/parse", token(t, identity.RoleJobSeeker), []byte("%PDF-1.4"), ""))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unavailable status = %d", resp.StatusCode)
	}
}

type fakeDrafts struct {
	saved map[uuid.UUID]json.RawMessage
}

func (f *fakeDrafts) Get(_ context.Context, _ identity.Identity, jobID uuid.UUID) (json.RawMessage, bool, error) {
	d, ok := f.saved[jobID]
	return d, ok, nil
}

func (f *fakeDrafts) Save(_ context.Context, _ identity.Identity, jobID uuid.UUID, data json.RawMessage) error {
	if len(data) > usecase.MaxDraftBytes {
		return usecase.ErrDraftTooLarge
	}
	f.saved[jobID] = data
	return nil
}

func (f *fakeDrafts) Delete(_ context.Context, _ identity.Identity, jobID uuid.UUID) error {
	delete(f.saved, jobID)
	return nil
}

func TestDraftRoundTrip(t *testing.T) {
	fake := &fakeDrafts{saved: map[uuid.UUID]json.RawMessage{}}
	app := newTestApp(NewDraftHandler(fake))
	path := "/api/v1/me/drafts/" + uuid.NewString()
	seeker := token(t, identity.RoleJobSeeker)

	resp, _ := do(t, app, http.MethodGet, path, seeker, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing draft status = %d", resp.StatusCode)
	}

	resp, _ = do(t, app, http.MethodPut, path, seeker, map[string]any{"candidate_name": "Ana"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d", resp.StatusCode)
	}

	resp, env := do(t, app, http.MethodGet, path, seeker, nil)
	if resp.StatusCode != http.StatusOK || string(env.Data) != `{"candidate_name":"Ana"}` {
		t.Fatalf("get = %d %s", resp.StatusCode, env.Data)
	}

	resp, _ = do(t, app, http.MethodPut, path, seeker, map[string]string{"cover_letter": strings.Repeat("x", usecase.MaxDraftBytes)})
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized status = %d", resp.StatusCode)
	}

	resp, _ = do(t, app, http.MethodGet, path, token(t, identity.RoleHR), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("hr draft status = %d", resp.StatusCode)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	cases := []struct {
		name   string
		db     Pinger
		cache  Pinger
		status int
		want   string
	}{
		{"all up", stubPinger{}, stubPinger{}, http.StatusOK, `{"database":"up","cache":"up"}`},
		{"cache down", stubPinger{}, stubPinger{err: errors.New("refused")}, http.StatusOK, `{"database":"up","cache":"down"}`},
		{"no cache", stubPinger{}, nil, http.StatusOK, `{"database":"up","cache":"disabled"}`},
		{"db down", stubPinger{err: errors.New("refused")}, stubPinger{}, http.StatusServiceUnavailable, `{"database":"down","cache":"up"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthHandler(tc.db, tc.cache, nil).RegisterRoutes(app)

			resp, env := do(t, app, http.MethodGet, "/health", "", nil)
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if string(env.Data) != tc.want {
				t.Fatalf("data = %s, want %s", env.Data, tc.want)
			}
		})
	}
}
