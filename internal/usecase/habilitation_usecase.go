package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/pagination"
	"skillboard/internal/repository"
)

var (
	ErrHabilitationNotFound     = errors.New("habilitation not found")
	ErrInvalidHabilitationDates = errors.New("habilitation end date precedes start date")
)

type HabilitationInput struct {
	UserID         oid.ID
	JobID          oid.ID
	Type           string
	Code           string
	Label          string
	StartDate      time.Time
	EndDate        time.Time
	PayrollSection string
	Establishment  string
	Profession     string
}

type SearchHabilitationsInput struct {
	Filter     repository.HabilitationFilter
	Pagination pagination.Params
}

type HabilitationUsecase interface {
	GetByID(ctx context.Context, id oid.ID) (repository.Habilitation, error)
	Search(ctx context.Context, in SearchHabilitationsInput) ([]repository.Habilitation, int, error)
	Create(ctx context.Context, in HabilitationInput) (repository.Habilitation, error)
	Update(ctx context.Context, id oid.ID, in HabilitationInput) (repository.Habilitation, error)
	Delete(ctx context.Context, id oid.ID) error
}

type HabilitationManager struct {
	habilitations repository.HabilitationRepository
	users         repository.UserRepository
	jobs          repository.JobRepository
	now           func() time.Time
}

func NewHabilitationUsecase(
	habilitations repository.HabilitationRepository,
	users repository.UserRepository,
	jobs repository.JobRepository,
) *HabilitationManager {
	return &HabilitationManager{habilitations: habilitations, users: users, jobs: jobs, now: time.Now}
}

func (u *HabilitationManager) GetByID(ctx context.Context, id oid.ID) (repository.Habilitation, error) {
	h, err := u.habilitations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHabilitationNotFound) {
			return repository.Habilitation{}, ErrHabilitationNotFound
		}
		return repository.Habilitation{}, ErrInternal
	}
	return h, nil
}

func (u *HabilitationManager) Search(ctx context.Context, in SearchHabilitationsInput) ([]repository.Habilitation, int, error) {
	items, total, err := u.habilitations.Search(ctx, in.Filter, in.Pagination)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *HabilitationManager) Create(ctx context.Context, in HabilitationInput) (repository.Habilitation, error) {
	if err := u.validate(ctx, in); err != nil {
		return repository.Habilitation{}, err
	}

	now := u.now().UTC()
	h := repository.Habilitation{
		ID:             oid.New(),
		UserID:         in.UserID,
		JobID:          in.JobID,
		Type:           in.Type,
		Code:           in.Code,
		Label:          in.Label,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		PayrollSection: in.PayrollSection,
		Establishment:  in.Establishment,
		Profession:     in.Profession,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.habilitations.Create(ctx, h); err != nil {
		return repository.Habilitation{}, ErrInternal
	}
	return h, nil
}

func (u *HabilitationManager) Update(ctx context.Context, id oid.ID, in HabilitationInput) (repository.Habilitation, error) {
	h, err := u.habilitations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHabilitationNotFound) {
			return repository.Habilitation{}, ErrHabilitationNotFound
		}
		return repository.Habilitation{}, ErrInternal
	}

	if err := u.validate(ctx, in); err != nil {
		return repository.Habilitation{}, err
	}

	h.UserID = in.UserID
	h.JobID = in.JobID
	h.Type = in.Type
	h.Code = in.Code
	h.Label = in.Label
	h.StartDate = in.StartDate
	h.EndDate = in.EndDate
	h.PayrollSection = in.PayrollSection
	h.Establishment = in.Establishment
	h.Profession = in.Profession
	h.UpdatedAt = u.now().UTC()

	if err := u.habilitations.Update(ctx, h); err != nil {
		if errors.Is(err, repository.ErrHabilitationNotFound) {
			return repository.Habilitation{}, ErrHabilitationNotFound
		}
		return repository.Habilitation{}, ErrInternal
	}
	return h, nil
}

func (u *HabilitationManager) Delete(ctx context.Context, id oid.ID) error {
	if err := u.habilitations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHabilitationNotFound) {
			return ErrHabilitationNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *HabilitationManager) validate(ctx context.Context, in HabilitationInput) error {
	if in.UserID.IsZero() || in.JobID.IsZero() {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Label) == "" {
		return ErrInvalidInput
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return ErrInvalidHabilitationDates
	}

	exists, err := u.users.ExistsByID(ctx, in.UserID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrUserNotFound
	}
	exists, err = u.jobs.ExistsByID(ctx, in.JobID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrJobNotFound
	}
	return nil
}
