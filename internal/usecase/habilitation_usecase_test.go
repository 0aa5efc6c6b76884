package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/pagination"
	"skillboard/internal/repository"
)

type mockHabilitationRepo struct {
	items map[oid.ID]repository.Habilitation

	created *repository.Habilitation
}

func (m *mockHabilitationRepo) GetByID(_ context.Context, id oid.ID) (repository.Habilitation, error) {
	h, ok := m.items[id]
	if !ok {
		return repository.Habilitation{}, repository.ErrHabilitationNotFound
	}
	return h, nil
}

func (m *mockHabilitationRepo) Search(context.Context, repository.HabilitationFilter, pagination.Params) ([]repository.Habilitation, int, error) {
	out := make([]repository.Habilitation, 0, len(m.items))
	for _, h := range m.items {
		out = append(out, h)
	}
	return out, len(out), nil
}

func (m *mockHabilitationRepo) Create(_ context.Context, h repository.Habilitation) error {
	m.created = &h
	return nil
}

func (m *mockHabilitationRepo) Update(_ context.Context, h repository.Habilitation) error {
	if _, ok := m.items[h.ID]; !ok {
		return repository.ErrHabilitationNotFound
	}
	m.items[h.ID] = h
	return nil
}

func (m *mockHabilitationRepo) Delete(_ context.Context, id oid.ID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrHabilitationNotFound
	}
	delete(m.items, id)
	return nil
}

func validHabilitationInput(userID, jobID oid.ID) HabilitationInput {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return HabilitationInput{
		UserID:    userID,
		JobID:     jobID,
		Type:      "CACES",
		Code:      "R489-3",
		Label:     "Forklift category 3",
		StartDate: start,
		EndDate:   start.AddDate(2, 0, 0),
	}
}

func newHabilitationFixture() (*HabilitationManager, *mockHabilitationRepo, oid.ID, oid.ID) {
	userID := oid.New()
	jobID := oid.New()
	repo := &mockHabilitationRepo{items: map[oid.ID]repository.Habilitation{}}
	users := &mockUserRepo{users: map[oid.ID]repository.User{userID: {ID: userID}}}
	jobs := &mockJobRepo{jobs: map[oid.ID]repository.Job{jobID: {ID: jobID}}}
	return NewHabilitationUsecase(repo, users, jobs), repo, userID, jobID
}

func TestHabilitationCreate(t *testing.T) {
	u, repo, userID, jobID := newHabilitationFixture()

	h, err := u.Create(context.Background(), validHabilitationInput(userID, jobID))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if h.ID.IsZero() {
		t.Fatal("expected a generated id")
	}
	if repo.created == nil || repo.created.Code != "R489-3" {
		t.Fatalf("expected habilitation persisted, got %+v", repo.created)
	}
}

func TestHabilitationCreate_EndBeforeStart(t *testing.T) {
	u, _, userID, jobID := newHabilitationFixture()

	in := validHabilitationInput(userID, jobID)
	in.EndDate = in.StartDate.AddDate(0, 0, -1)

	_, err := u.Create(context.Background(), in)
	if !errors.Is(err, ErrInvalidHabilitationDates) {
		t.Fatalf("expected ErrInvalidHabilitationDates, got %v", err)
	}
}

func TestHabilitationCreate_UnknownUser(t *testing.T) {
	u, _, _, jobID := newHabilitationFixture()

	_, err := u.Create(context.Background(), validHabilitationInput(oid.New(), jobID))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestHabilitationCreate_UnknownJob(t *testing.T) {
	u, _, userID, _ := newHabilitationFixture()

	_, err := u.Create(context.Background(), validHabilitationInput(userID, oid.New()))
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestHabilitationUpdate_NotFound(t *testing.T) {
	u, _, userID, jobID := newHabilitationFixture()

	_, err := u.Update(context.Background(), oid.New(), validHabilitationInput(userID, jobID))
	if !errors.Is(err, ErrHabilitationNotFound) {
		t.Fatalf("expected ErrHabilitationNotFound, got %v", err)
	}
}

func TestHabilitationDelete_NotFound(t *testing.T) {
	u, _, _, _ := newHabilitationFixture()

	if err := u.Delete(context.Background(), oid.New()); !errors.Is(err, ErrHabilitationNotFound) {
		t.Fatalf("expected ErrHabilitationNotFound, got %v", err)
	}
}
