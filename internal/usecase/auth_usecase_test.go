package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skillboard/internal/pkg/jwt"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

func newAuthFixture(t *testing.T) (*Auth, repository.User, jwt.Service) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	usr := repository.User{
		ID:           oid.New(),
		Email:        "manager@acme.test",
		PasswordHash: string(hash),
		Roles:        []string{"MANAGER"},
	}

	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	users := &mockUserRepo{
		users:   map[oid.ID]repository.User{usr.ID: usr},
		byEmail: map[string]repository.User{usr.Email: usr},
	}
	return NewAuthUsecase(users, jwtSvc), usr, jwtSvc
}

func TestAuthLogin(t *testing.T) {
	u, usr, jwtSvc := newAuthFixture(t)

	got, access, refresh, err := u.Login(context.Background(), LoginInput{
		Email:    "  Manager@acme.test ",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != usr.ID {
		t.Fatalf("expected user %s, got %s", usr.ID, got.ID)
	}

	claims, err := jwtSvc.ValidateToken(access)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.UserID != usr.ID || jwtSvc.IsRefreshToken(claims) {
		t.Fatalf("unexpected access claims: %+v", claims)
	}

	claims, err = jwtSvc.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if !jwtSvc.IsRefreshToken(claims) {
		t.Fatal("expected a refresh token")
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	u, _, _ := newAuthFixture(t)

	_, _, _, err := u.Login(context.Background(), LoginInput{
		Email:    "manager@acme.test",
		Password: "nope",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	u, _, _ := newAuthFixture(t)

	_, _, _, err := u.Login(context.Background(), LoginInput{
		Email:    "ghost@acme.test",
		Password: "s3cret",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthRefresh(t *testing.T) {
	u, usr, jwtSvc := newAuthFixture(t)

	refresh, err := jwtSvc.GenerateRefreshToken(usr.ID)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}

	access, newRefresh, err := u.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := jwtSvc.ValidateToken(access)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if claims.UserID != usr.ID {
		t.Fatalf("expected claims for %s, got %s", usr.ID, claims.UserID)
	}
	if newRefresh == "" {
		t.Fatal("expected a rotated refresh token")
	}
}

func TestAuthRefresh_RejectsAccessToken(t *testing.T) {
	u, usr, jwtSvc := newAuthFixture(t)

	access, err := jwtSvc.GenerateAccessToken(usr.ID, usr.Email, usr.Roles)
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}

	_, _, err = u.Refresh(context.Background(), access)
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthRefresh_Garbage(t *testing.T) {
	u, _, _ := newAuthFixture(t)

	if _, _, err := u.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
