package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

var ErrJobCodeTaken = errors.New("job code already taken")

type CreateJobInput struct {
	Name       string
	Code       string
	JobProfile string
	JobFamily  *string
}

type UpdateJobInput struct {
	Name       string
	Code       string
	JobProfile string
	JobFamily  *string
}

type JobUsecase interface {
	GetByID(ctx context.Context, id oid.ID) (repository.Job, error)
	List(ctx context.Context) ([]repository.Job, error)
	Search(ctx context.Context, query string) ([]repository.Job, error)
	Create(ctx context.Context, in CreateJobInput) (repository.Job, error)
	Update(ctx context.Context, id oid.ID, in UpdateJobInput) (repository.Job, error)
	Delete(ctx context.Context, id oid.ID) error
	ListSkills(ctx context.Context, jobID oid.ID) ([]repository.JobSkillRow, error)
}

type JobManager struct {
	jobs repository.JobRepository
	now  func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository) *JobManager {
	return &JobManager{jobs: jobs, now: time.Now}
}

func (u *JobManager) GetByID(ctx context.Context, id oid.ID) (repository.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}
	return j, nil
}

func (u *JobManager) List(ctx context.Context) ([]repository.Job, error) {
	jobs, err := u.jobs.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (u *JobManager) Search(ctx context.Context, query string) ([]repository.Job, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.List(ctx)
	}
	jobs, err := u.jobs.Search(ctx, query)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (u *JobManager) Create(ctx context.Context, in CreateJobInput) (repository.Job, error) {
	if in.Name == "" || in.Code == "" || in.JobProfile == "" {
		return repository.Job{}, ErrInvalidInput
	}

	taken, err := u.jobs.ExistsByCode(ctx, in.Code)
	if err != nil {
		return repository.Job{}, ErrInternal
	}
	if taken {
		return repository.Job{}, ErrJobCodeTaken
	}

	j := repository.Job{
		ID:         oid.New(),
		Name:       in.Name,
		Code:       in.Code,
		JobProfile: in.JobProfile,
		JobFamily:  in.JobFamily,
		CreatedAt:  u.now().UTC(),
	}
	if err := u.jobs.Create(ctx, j); err != nil {
		return repository.Job{}, ErrInternal
	}
	return j, nil
}

func (u *JobManager) Update(ctx context.Context, id oid.ID, in UpdateJobInput) (repository.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}

	if in.Name == "" || in.Code == "" || in.JobProfile == "" {
		return repository.Job{}, ErrInvalidInput
	}
	if in.Code != j.Code {
		taken, err := u.jobs.ExistsByCode(ctx, in.Code)
		if err != nil {
			return repository.Job{}, ErrInternal
		}
		if taken {
			return repository.Job{}, ErrJobCodeTaken
		}
	}

	j.Name = in.Name
	j.Code = in.Code
	j.JobProfile = in.JobProfile
	j.JobFamily = in.JobFamily

	if err := u.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}
	return j, nil
}

func (u *JobManager) Delete(ctx context.Context, id oid.ID) error {
	if err := u.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *JobManager) ListSkills(ctx context.Context, jobID oid.ID) ([]repository.JobSkillRow, error) {
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	skills, err := u.jobs.ListSkills(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return skills, nil
}
