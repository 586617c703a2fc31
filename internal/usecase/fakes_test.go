package usecase

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"talent-hub/internal/domain/application"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/profile"
	"talent-hub/internal/domain/resume"
	"talent-hub/internal/repository"

	"github.com/google/uuid"
)

var (
	hrUser     = identity.Identity{UserID: uuid.New(), Email: "hr@example.com", Role: identity.RoleHR}
	seekerUser = identity.Identity{UserID: uuid.New(), Email: "Ana@Example.com", Role: identity.RoleJobSeeker}
)

type fakeJobRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]job.Job
	lists int
	err   error
}

func newFakeJobRepo(jobs ...job.Job) *fakeJobRepo {
	r := &fakeJobRepo{items: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		r.items[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return job.Job{}, r.err
	}
	j.CreatedAt = time.Now().UTC()
	j.UpdatedAt = j.CreatedAt
	r.items[j.ID] = j
	return j, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[j.ID]; !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	j.UpdatedAt = time.Now().UTC()
	r.items[j.ID] = j
	return j, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return job.Job{}, r.err
	}
	j, ok := r.items[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) List(_ context.Context, f repository.JobListFilter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	out := make([]job.Job, 0)
	for _, j := range r.items {
		if f.Status != "" && string(j.Status) != f.Status {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

type fakeAppRepo struct {
	mu     sync.Mutex
	items  map[uuid.UUID]application.Application
	writes int

	createErr error
	// staleIDs simulate a concurrent writer winning the race.
	staleIDs map[uuid.UUID]bool
}

func newFakeAppRepo(apps ...application.Application) *fakeAppRepo {
	r := &fakeAppRepo{items: map[uuid.UUID]application.Application{}, staleIDs: map[uuid.UUID]bool{}}
	for _, a := range apps {
		r.items[a.ID] = a
	}
	return r
}

func (r *fakeAppRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return application.Application{}, r.createErr
	}
	for _, existing := range r.items {
		if existing.JobID == a.JobID && existing.CandidateEmail == a.CandidateEmail {
			return application.Application{}, repository.ErrDuplicateApplication
		}
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.items[a.ID] = a
	r.writes++
	return a, nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (r *fakeAppRepo) ExistsForCandidate(_ context.Context, jobID uuid.UUID, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.JobID == jobID && a.CandidateEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppRepo) List(_ context.Context, f repository.ApplicationListFilter) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]application.Application, 0)
	for _, a := range r.items {
		if f.JobID != nil && a.JobID != *f.JobID {
			continue
		}
		if f.CandidateEmail != "" && a.CandidateEmail != f.CandidateEmail {
			continue
		}
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.MinScore != nil && (a.MatchScore == nil || *a.MatchScore < *f.MinScore) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.guard(id, from)
	if err != nil {
		return application.Application{}, err
	}
	a.Status = to
	a.UpdatedAt = time.Now().UTC()
	r.items[id] = a
	r.writes++
	return a, nil
}

func (r *fakeAppRepo) ScheduleInterview(_ context.Context, id uuid.UUID, from application.Status, iv application.Interview) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.guard(id, from)
	if err != nil {
		return application.Application{}, err
	}
	token := a.Interview.AssessmentToken
	a.Interview = iv
	if iv.AssessmentToken == nil {
		a.Interview.AssessmentToken = token
	}
	a.Status = application.StatusInterviewing
	a.UpdatedAt = time.Now().UTC()
	r.items[id] = a
	r.writes++
	return a, nil
}

func (r *fakeAppRepo) guard(id uuid.UUID, from application.Status) (application.Application, error) {
	a, ok := r.items[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	if r.staleIDs[id] || a.Status != from {
		return application.Application{}, repository.ErrStaleStatus
	}
	return a, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	byEmail  map[string]profile.Profile
	skillErr error
}

func newFakeProfileRepo(ps ...profile.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{byEmail: map[string]profile.Profile{}}
	for _, p := range ps {
		r.byEmail[p.Email] = p
	}
	return r
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byEmail[email]
	if !ok {
		return profile.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) EnsureByEmail(_ context.Context, email string) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byEmail[email]
	if !ok {
		p = profile.Profile{ID: uuid.New(), Email: email, Skills: []profile.Skill{}}
		r.byEmail[email] = p
	}
	return p, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[p.Email]; !ok {
		return repository.ErrProfileNotFound
	}
	r.byEmail[p.Email] = p
	return nil
}

func (r *fakeProfileRepo) withSeeker(seekerID uuid.UUID, fn func(p *profile.Profile) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, p := range r.byEmail {
		if p.ID == seekerID {
			if err := fn(&p); err != nil {
				return err
			}
			r.byEmail[email] = p
			return nil
		}
	}
	return repository.ErrProfileNotFound
}

func (r *fakeProfileRepo) AddSkill(_ context.Context, seekerID uuid.UUID, s profile.Skill) (profile.Skill, error) {
	if r.skillErr != nil {
		return profile.Skill{}, r.skillErr
	}
	err := r.withSeeker(seekerID, func(p *profile.Profile) error {
		for _, existing := range p.Skills {
			if strings.EqualFold(existing.Name, s.Name) {
				return repository.ErrSkillAlreadyExists
			}
		}
		p.Skills = append(p.Skills, s)
		return nil
	})
	return s, err
}

func (r *fakeProfileRepo) DeleteSkill(_ context.Context, seekerID, id uuid.UUID) error {
	return r.withSeeker(seekerID, func(p *profile.Profile) error {
		for i, s := range p.Skills {
			if s.ID == id {
				p.Skills = append(p.Skills[:i], p.Skills[i+1:]...)
				return nil
			}
		}
		return repository.ErrProfileItemNotFound
	})
}

func (r *fakeProfileRepo) AddExperience(_ context.Context, seekerID uuid.UUID, e profile.Experience) (profile.Experience, error) {
	err := r.withSeeker(seekerID, func(p *profile.Profile) error {
		p.Experience = append(p.Experience, e)
		return nil
	})
	return e, err
}

func (r *fakeProfileRepo) DeleteExperience(_ context.Context, seekerID, id uuid.UUID) error {
	return r.withSeeker(seekerID, func(p *profile.Profile) error {
		for i, e := range p.Experience {
			if e.ID == id {
				p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
				return nil
			}
		}
		return repository.ErrProfileItemNotFound
	})
}

func (r *fakeProfileRepo) AddEducation(_ context.Context, seekerID uuid.UUID, e profile.Education) (profile.Education, error) {
	err := r.withSeeker(seekerID, func(p *profile.Profile) error {
		p.Education = append(p.Education, e)
		return nil
	})
	return e, err
}

func (r *fakeProfileRepo) DeleteEducation(_ context.Context, seekerID, id uuid.UUID) error {
	return r.withSeeker(seekerID, func(p *profile.Profile) error {
		for i, e := range p.Education {
			if e.ID == id {
				p.Education = append(p.Education[:i], p.Education[i+1:]...)
				return nil
			}
		}
		return repository.ErrProfileItemNotFound
	})
}

// memStore is an in-memory Cache and DraftStore.
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memStore) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memStore) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	b, ok, _ := m.GetBytes(ctx, key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.SetBytes(ctx, key, b, ttl)
}

func (m *memStore) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type fakeExtractor struct {
	parsed resume.Parsed
	err    error
}

func (f fakeExtractor) Extract(context.Context, resume.Document) (resume.Parsed, error) {
	return f.parsed, f.err
}

type fakeSheet struct {
	rows []application.Application
}

func (f *fakeSheet) WriteCandidates(w io.Writer, j job.Job, apps []application.Application) error {
	f.rows = apps
	_, err := io.WriteString(w, j.Title)
	return err
}

func activeJob(skills ...string) job.Job {
	return job.Job{ID: uuid.New(), Title: "Backend Engineer", RequiredSkills: skills, Status: job.StatusActive}
}

func intPtr(v int) *int { return &v }
