package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

func validCreateUserInput() CreateUserInput {
	return CreateUserInput{
		Email:     "New.Hire@acme.test",
		Password:  "s3cret",
		FirstName: "Ada",
		LastName:  "Martin",
		Code:      "EMP-042",
	}
}

func TestUserCreate(t *testing.T) {
	users := &mockUserRepo{}
	u := NewUserUsecase(users, &mockJobRepo{})

	in := validCreateUserInput()
	in.Roles = []string{" manager ", "MANAGER", "rh"}

	got, err := u.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Email != "new.hire@acme.test" {
		t.Fatalf("expected normalized email, got %q", got.Email)
	}
	if len(got.Roles) != 2 || got.Roles[0] != "MANAGER" || got.Roles[1] != "RH" {
		t.Fatalf("expected deduplicated uppercase roles, got %v", got.Roles)
	}
	if users.created == nil {
		t.Fatal("expected user persisted")
	}
	if bcrypt.CompareHashAndPassword([]byte(users.created.PasswordHash), []byte("s3cret")) != nil {
		t.Fatal("expected password stored as a bcrypt hash")
	}
}

func TestUserCreate_DefaultRole(t *testing.T) {
	users := &mockUserRepo{}
	u := NewUserUsecase(users, &mockJobRepo{})

	got, err := u.Create(context.Background(), validCreateUserInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Roles) != 1 || got.Roles[0] != "USER" {
		t.Fatalf("expected default USER role, got %v", got.Roles)
	}
}

func TestUserCreate_EmailTaken(t *testing.T) {
	users := &mockUserRepo{takenEmails: map[string]bool{"new.hire@acme.test": true}}
	u := NewUserUsecase(users, &mockJobRepo{})

	_, err := u.Create(context.Background(), validCreateUserInput())
	if !errors.Is(err, ErrEmailAlreadyTaken) {
		t.Fatalf("expected ErrEmailAlreadyTaken, got %v", err)
	}
}

func TestUserCreate_CodeTaken(t *testing.T) {
	users := &mockUserRepo{takenCodes: map[string]bool{"EMP-042": true}}
	u := NewUserUsecase(users, &mockJobRepo{})

	_, err := u.Create(context.Background(), validCreateUserInput())
	if !errors.Is(err, ErrCodeAlreadyTaken) {
		t.Fatalf("expected ErrCodeAlreadyTaken, got %v", err)
	}
}

func TestUserCreate_UnknownJob(t *testing.T) {
	u := NewUserUsecase(&mockUserRepo{}, &mockJobRepo{})

	in := validCreateUserInput()
	jobID := oid.New()
	in.JobID = &jobID

	_, err := u.Create(context.Background(), in)
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestUserCreate_UnknownManager(t *testing.T) {
	u := NewUserUsecase(&mockUserRepo{}, &mockJobRepo{})

	in := validCreateUserInput()
	in.ManagerUserIDs = []oid.ID{oid.New()}

	_, err := u.Create(context.Background(), in)
	if !errors.Is(err, ErrManagerNotFound) {
		t.Fatalf("expected ErrManagerNotFound, got %v", err)
	}
}

func TestUserUpdate_KeepingOwnEmail(t *testing.T) {
	id := oid.New()
	users := &mockUserRepo{
		users: map[oid.ID]repository.User{
			id: {ID: id, Email: "ada@acme.test", Code: "EMP-042"},
		},
		// Existence checks see the user's own email; updating without
		// changing it must not trip the conflict.
		takenEmails: map[string]bool{"ada@acme.test": true},
	}
	u := NewUserUsecase(users, &mockJobRepo{})

	_, err := u.Update(context.Background(), id, UpdateUserInput{
		Email:     "ada@acme.test",
		FirstName: "Ada",
		LastName:  "Martin",
		Code:      "EMP-042",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestUserListTeamMembers_ManagerNotFound(t *testing.T) {
	u := NewUserUsecase(&mockUserRepo{}, &mockJobRepo{})

	_, err := u.ListTeamMembers(context.Background(), oid.New())
	if !errors.Is(err, ErrManagerNotFound) {
		t.Fatalf("expected ErrManagerNotFound, got %v", err)
	}
}
