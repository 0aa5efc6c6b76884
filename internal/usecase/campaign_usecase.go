package usecase

import (
	"context"
	"errors"
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

var (
	ErrCampaignNotFound     = errors.New("evaluation campaign not found")
	ErrNoCurrentCampaign    = errors.New("no campaign is currently open")
	ErrInvalidCampaignDates = errors.New("campaign end date precedes start date")
)

type CampaignInput struct {
	StartDate time.Time
	EndDate   time.Time
}

type CampaignUsecase interface {
	List(ctx context.Context) ([]repository.EvaluationCampaign, error)
	GetByID(ctx context.Context, id oid.ID) (repository.EvaluationCampaign, error)
	GetCurrent(ctx context.Context) (repository.EvaluationCampaign, error)
	Create(ctx context.Context, in CampaignInput) (repository.EvaluationCampaign, error)
	Update(ctx context.Context, id oid.ID, in CampaignInput) (repository.EvaluationCampaign, error)
	Delete(ctx context.Context, id oid.ID) error
}

type Campaign struct {
	campaigns repository.CampaignRepository
	now       func() time.Time
}

func NewCampaignUsecase(campaigns repository.CampaignRepository) *Campaign {
	return &Campaign{campaigns: campaigns, now: time.Now}
}

func (u *Campaign) List(ctx context.Context) ([]repository.EvaluationCampaign, error) {
	campaigns, err := u.campaigns.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return campaigns, nil
}

func (u *Campaign) GetByID(ctx context.Context, id oid.ID) (repository.EvaluationCampaign, error) {
	c, err := u.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return repository.EvaluationCampaign{}, ErrCampaignNotFound
		}
		return repository.EvaluationCampaign{}, ErrInternal
	}
	return c, nil
}

func (u *Campaign) GetCurrent(ctx context.Context) (repository.EvaluationCampaign, error) {
	c, err := u.campaigns.FindCurrent(ctx, u.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return repository.EvaluationCampaign{}, ErrNoCurrentCampaign
		}
		return repository.EvaluationCampaign{}, ErrInternal
	}
	return c, nil
}

func (u *Campaign) Create(ctx context.Context, in CampaignInput) (repository.EvaluationCampaign, error) {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return repository.EvaluationCampaign{}, ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return repository.EvaluationCampaign{}, ErrInvalidCampaignDates
	}

	now := u.now().UTC()
	c := repository.EvaluationCampaign{
		ID:        oid.New(),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.campaigns.Create(ctx, c); err != nil {
		return repository.EvaluationCampaign{}, ErrInternal
	}
	return c, nil
}

func (u *Campaign) Update(ctx context.Context, id oid.ID, in CampaignInput) (repository.EvaluationCampaign, error) {
	c, err := u.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return repository.EvaluationCampaign{}, ErrCampaignNotFound
		}
		return repository.EvaluationCampaign{}, ErrInternal
	}

	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return repository.EvaluationCampaign{}, ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return repository.EvaluationCampaign{}, ErrInvalidCampaignDates
	}

	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	c.UpdatedAt = u.now().UTC()

	if err := u.campaigns.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return repository.EvaluationCampaign{}, ErrCampaignNotFound
		}
		return repository.EvaluationCampaign{}, ErrInternal
	}
	return c, nil
}

func (u *Campaign) Delete(ctx context.Context, id oid.ID) error {
	if err := u.campaigns.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return ErrCampaignNotFound
		}
		return ErrInternal
	}
	return nil
}
