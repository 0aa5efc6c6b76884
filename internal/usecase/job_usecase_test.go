package usecase

import (
	"context"
	"errors"
	"testing"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

func TestJobSearch_EmptyQueryFallsBackToList(t *testing.T) {
	jobID := oid.New()
	jobs := &mockJobRepo{
		jobs:        map[oid.ID]repository.Job{jobID: {ID: jobID, Name: "Welder"}},
		searchItems: []repository.Job{},
	}
	u := NewJobUsecase(jobs)

	out, err := u.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].ID != jobID {
		t.Fatalf("expected the full job list, got %v", out)
	}
}

func TestJobSearch(t *testing.T) {
	jobs := &mockJobRepo{searchItems: []repository.Job{{Name: "Welder"}}}
	u := NewJobUsecase(jobs)

	out, err := u.Search(context.Background(), "weld")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Welder" {
		t.Fatalf("unexpected search result: %v", out)
	}
}

func TestJobCreate_CodeTaken(t *testing.T) {
	jobs := &mockJobRepo{takenCodes: map[string]bool{"WLD": true}}
	u := NewJobUsecase(jobs)

	_, err := u.Create(context.Background(), CreateJobInput{
		Name:       "Welder",
		Code:       "WLD",
		JobProfile: "Production",
	})
	if !errors.Is(err, ErrJobCodeTaken) {
		t.Fatalf("expected ErrJobCodeTaken, got %v", err)
	}
}

func TestJobGetByID_NotFound(t *testing.T) {
	u := NewJobUsecase(&mockJobRepo{})

	if _, err := u.GetByID(context.Background(), oid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobListSkills_UnknownJob(t *testing.T) {
	u := NewJobUsecase(&mockJobRepo{})

	if _, err := u.ListSkills(context.Background(), oid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
