package usecase

import (
	"context"
	"errors"
	"testing"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

func TestSkillTaxonomyCreateSkill_InvalidExpectedLevel(t *testing.T) {
	u := NewSkillUsecase(&mockSkillRepo{}, &mockJobRepo{})

	_, err := u.CreateSkill(context.Background(), CreateSkillInput{
		Name:          "TIG welding",
		MacroSkillID:  oid.New(),
		JobID:         oid.New(),
		ExpectedLevel: 7,
	})
	if !errors.Is(err, ErrInvalidExpectedSkillLevel) {
		t.Fatalf("expected ErrInvalidExpectedSkillLevel, got %v", err)
	}
}

func TestSkillTaxonomyCreateSkill_MacroSkillNotFound(t *testing.T) {
	jobID := oid.New()
	jobs := &mockJobRepo{jobs: map[oid.ID]repository.Job{jobID: {ID: jobID}}}
	u := NewSkillUsecase(&mockSkillRepo{}, jobs)

	_, err := u.CreateSkill(context.Background(), CreateSkillInput{
		Name:          "TIG welding",
		MacroSkillID:  oid.New(),
		JobID:         jobID,
		ExpectedLevel: 3,
	})
	if !errors.Is(err, ErrMacroSkillNotFound) {
		t.Fatalf("expected ErrMacroSkillNotFound, got %v", err)
	}
}

func TestSkillTaxonomyCreateMacroSkillType_NameTaken(t *testing.T) {
	skills := &mockSkillRepo{takenNames: map[string]bool{"Technical": true}}
	u := NewSkillUsecase(skills, &mockJobRepo{})

	_, err := u.CreateMacroSkillType(context.Background(), CreateMacroSkillTypeInput{Name: " Technical "})
	if !errors.Is(err, ErrMacroSkillTypeNameTaken) {
		t.Fatalf("expected ErrMacroSkillTypeNameTaken, got %v", err)
	}
}

func TestSkillTaxonomyDeleteSkill_RefusedWhenEvaluated(t *testing.T) {
	skillID := oid.New()
	skills := &mockSkillRepo{
		skills:     map[oid.ID]repository.Skill{skillID: {ID: skillID}},
		referenced: map[oid.ID]bool{skillID: true},
	}
	u := NewSkillUsecase(skills, &mockJobRepo{})

	if err := u.DeleteSkill(context.Background(), skillID); !errors.Is(err, ErrSkillHasEvaluations) {
		t.Fatalf("expected ErrSkillHasEvaluations, got %v", err)
	}
	if len(skills.deletedSkills) != 0 {
		t.Fatal("expected no deletion")
	}
}

func TestSkillTaxonomyDeleteSkill(t *testing.T) {
	skillID := oid.New()
	skills := &mockSkillRepo{skills: map[oid.ID]repository.Skill{skillID: {ID: skillID}}}
	u := NewSkillUsecase(skills, &mockJobRepo{})

	if err := u.DeleteSkill(context.Background(), skillID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(skills.deletedSkills) != 1 || skills.deletedSkills[0] != skillID {
		t.Fatalf("expected %s deleted", skillID)
	}
}

func TestSkillTaxonomyDeleteSkill_NotFound(t *testing.T) {
	u := NewSkillUsecase(&mockSkillRepo{}, &mockJobRepo{})

	if err := u.DeleteSkill(context.Background(), oid.New()); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
