package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

func TestCampaignCreate_EndBeforeStart(t *testing.T) {
	u := NewCampaignUsecase(&mockCampaignRepo{})

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := u.Create(context.Background(), CampaignInput{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
	})
	if !errors.Is(err, ErrInvalidCampaignDates) {
		t.Fatalf("expected ErrInvalidCampaignDates, got %v", err)
	}
}

func TestCampaignCreate_MissingDates(t *testing.T) {
	u := NewCampaignUsecase(&mockCampaignRepo{})

	_, err := u.Create(context.Background(), CampaignInput{EndDate: time.Now()})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCampaignCreate(t *testing.T) {
	u := NewCampaignUsecase(&mockCampaignRepo{})

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)
	c, err := u.Create(context.Background(), CampaignInput{StartDate: start, EndDate: end})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.ID.IsZero() {
		t.Fatal("expected a generated campaign id")
	}
	if !c.StartDate.Equal(start) || !c.EndDate.Equal(end) {
		t.Fatalf("unexpected window: %v .. %v", c.StartDate, c.EndDate)
	}
}

func TestCampaignGetCurrent(t *testing.T) {
	current := repository.EvaluationCampaign{ID: oid.New()}
	u := NewCampaignUsecase(&mockCampaignRepo{current: &current})

	c, err := u.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.ID != current.ID {
		t.Fatalf("expected campaign %s, got %s", current.ID, c.ID)
	}
}

func TestCampaignGetCurrent_NoneOpen(t *testing.T) {
	u := NewCampaignUsecase(&mockCampaignRepo{})

	if _, err := u.GetCurrent(context.Background()); !errors.Is(err, ErrNoCurrentCampaign) {
		t.Fatalf("expected ErrNoCurrentCampaign, got %v", err)
	}
}

func TestCampaignUpdate_NotFound(t *testing.T) {
	u := NewCampaignUsecase(&mockCampaignRepo{})

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := u.Update(context.Background(), oid.New(), CampaignInput{
		StartDate: start,
		EndDate:   start.AddDate(0, 1, 0),
	})
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}
