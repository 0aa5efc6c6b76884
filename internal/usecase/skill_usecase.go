package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillboard/internal/domain/reporting"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

var (
	ErrSkillNotFound             = errors.New("skill not found")
	ErrMacroSkillNotFound        = errors.New("macro skill not found")
	ErrMacroSkillTypeNotFound    = errors.New("macro skill type not found")
	ErrMacroSkillTypeNameTaken   = errors.New("macro skill type name already taken")
	ErrSkillHasEvaluations       = errors.New("skill is referenced by evaluations")
	ErrInvalidExpectedSkillLevel = errors.New("invalid expected skill level")
)

type CreateMacroSkillTypeInput struct {
	Name string
}

type CreateMacroSkillInput struct {
	Name             string
	MacroSkillTypeID oid.ID
	JobID            oid.ID
}

type CreateSkillInput struct {
	Name          string
	MacroSkillID  oid.ID
	JobID         oid.ID
	ExpectedLevel int
}

type SkillUsecase interface {
	ListMacroSkillTypes(ctx context.Context) ([]repository.MacroSkillType, error)
	CreateMacroSkillType(ctx context.Context, in CreateMacroSkillTypeInput) (repository.MacroSkillType, error)
	ListMacroSkills(ctx context.Context) ([]repository.MacroSkill, error)
	CreateMacroSkill(ctx context.Context, in CreateMacroSkillInput) (repository.MacroSkill, error)
	ListSkills(ctx context.Context) ([]repository.Skill, error)
	GetSkill(ctx context.Context, id oid.ID) (repository.Skill, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (repository.Skill, error)
	DeleteSkill(ctx context.Context, id oid.ID) error
}

type SkillTaxonomy struct {
	skills repository.SkillRepository
	jobs   repository.JobRepository
	now    func() time.Time
}

func NewSkillUsecase(skills repository.SkillRepository, jobs repository.JobRepository) *SkillTaxonomy {
	return &SkillTaxonomy{skills: skills, jobs: jobs, now: time.Now}
}

func (u *SkillTaxonomy) ListMacroSkillTypes(ctx context.Context) ([]repository.MacroSkillType, error) {
	types, err := u.skills.ListMacroSkillTypes(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return types, nil
}

func (u *SkillTaxonomy) CreateMacroSkillType(ctx context.Context, in CreateMacroSkillTypeInput) (repository.MacroSkillType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.MacroSkillType{}, ErrInvalidInput
	}

	taken, err := u.skills.ExistsMacroSkillTypeByName(ctx, name)
	if err != nil {
		return repository.MacroSkillType{}, ErrInternal
	}
	if taken {
		return repository.MacroSkillType{}, ErrMacroSkillTypeNameTaken
	}

	t := repository.MacroSkillType{ID: oid.New(), Name: name, CreatedAt: u.now().UTC()}
	if err := u.skills.CreateMacroSkillType(ctx, t); err != nil {
		return repository.MacroSkillType{}, ErrInternal
	}
	return t, nil
}

func (u *SkillTaxonomy) ListMacroSkills(ctx context.Context) ([]repository.MacroSkill, error) {
	macros, err := u.skills.ListMacroSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return macros, nil
}

func (u *SkillTaxonomy) CreateMacroSkill(ctx context.Context, in CreateMacroSkillInput) (repository.MacroSkill, error) {
	if strings.TrimSpace(in.Name) == "" || in.MacroSkillTypeID.IsZero() || in.JobID.IsZero() {
		return repository.MacroSkill{}, ErrInvalidInput
	}

	if _, err := u.skills.GetMacroSkillType(ctx, in.MacroSkillTypeID); err != nil {
		if errors.Is(err, repository.ErrMacroSkillTypeNotFound) {
			return repository.MacroSkill{}, ErrMacroSkillTypeNotFound
		}
		return repository.MacroSkill{}, ErrInternal
	}
	exists, err := u.jobs.ExistsByID(ctx, in.JobID)
	if err != nil {
		return repository.MacroSkill{}, ErrInternal
	}
	if !exists {
		return repository.MacroSkill{}, ErrJobNotFound
	}

	m := repository.MacroSkill{
		ID:               oid.New(),
		Name:             strings.TrimSpace(in.Name),
		MacroSkillTypeID: in.MacroSkillTypeID,
		JobID:            in.JobID,
		CreatedAt:        u.now().UTC(),
	}
	if err := u.skills.CreateMacroSkill(ctx, m); err != nil {
		return repository.MacroSkill{}, ErrInternal
	}
	return m, nil
}

func (u *SkillTaxonomy) ListSkills(ctx context.Context) ([]repository.Skill, error) {
	skills, err := u.skills.ListSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return skills, nil
}

func (u *SkillTaxonomy) GetSkill(ctx context.Context, id oid.ID) (repository.Skill, error) {
	s, err := u.skills.GetSkill(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.Skill{}, ErrSkillNotFound
		}
		return repository.Skill{}, ErrInternal
	}
	return s, nil
}

func (u *SkillTaxonomy) CreateSkill(ctx context.Context, in CreateSkillInput) (repository.Skill, error) {
	if strings.TrimSpace(in.Name) == "" || in.MacroSkillID.IsZero() || in.JobID.IsZero() {
		return repository.Skill{}, ErrInvalidInput
	}
	if in.ExpectedLevel < reporting.MinLevel || in.ExpectedLevel > reporting.MaxLevel {
		return repository.Skill{}, ErrInvalidExpectedSkillLevel
	}

	if _, err := u.skills.GetMacroSkill(ctx, in.MacroSkillID); err != nil {
		if errors.Is(err, repository.ErrMacroSkillNotFound) {
			return repository.Skill{}, ErrMacroSkillNotFound
		}
		return repository.Skill{}, ErrInternal
	}
	exists, err := u.jobs.ExistsByID(ctx, in.JobID)
	if err != nil {
		return repository.Skill{}, ErrInternal
	}
	if !exists {
		return repository.Skill{}, ErrJobNotFound
	}

	s := repository.Skill{
		ID:            oid.New(),
		Name:          strings.TrimSpace(in.Name),
		MacroSkillID:  in.MacroSkillID,
		JobID:         in.JobID,
		ExpectedLevel: in.ExpectedLevel,
		CreatedAt:     u.now().UTC(),
	}
	if err := u.skills.CreateSkill(ctx, s); err != nil {
		return repository.Skill{}, ErrInternal
	}
	return s, nil
}

// DeleteSkill refuses to remove a skill that any evaluation already
// references, so observation history stays coherent.
func (u *SkillTaxonomy) DeleteSkill(ctx context.Context, id oid.ID) error {
	referenced, err := u.skills.HasEvaluationSkills(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if referenced {
		return ErrSkillHasEvaluations
	}

	if err := u.skills.DeleteSkill(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}
