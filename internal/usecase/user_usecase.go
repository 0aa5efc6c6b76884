package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyTaken = errors.New("email already taken")
	ErrCodeAlreadyTaken  = errors.New("employee code already taken")
	ErrJobNotFound       = errors.New("job not found")
	ErrManagerNotFound   = errors.New("manager not found")
)

type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Code      string

	JobID          *oid.ID
	ManagerUserIDs []oid.ID
	Roles          []string

	Gender    *string
	BirthDate *time.Time
	HiredAt   *time.Time

	CompanyCode       string
	CompanyName       string
	EstablishmentCode string
	EstablishmentName string
}

type UpdateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Code      string

	JobID          *oid.ID
	ManagerUserIDs []oid.ID
	Roles          []string

	Gender    *string
	BirthDate *time.Time
	HiredAt   *time.Time

	CompanyCode       string
	CompanyName       string
	EstablishmentCode string
	EstablishmentName string
}

type UserUsecase interface {
	GetByID(ctx context.Context, id oid.ID) (repository.User, error)
	List(ctx context.Context) ([]repository.User, error)
	ListManagers(ctx context.Context) ([]repository.User, error)
	ListTeamMembers(ctx context.Context, managerID oid.ID) ([]repository.User, error)
	Create(ctx context.Context, in CreateUserInput) (repository.User, error)
	Update(ctx context.Context, id oid.ID, in UpdateUserInput) (repository.User, error)
	Delete(ctx context.Context, id oid.ID) error
}

type User struct {
	users repository.UserRepository
	jobs  repository.JobRepository
	now   func() time.Time
}

func NewUserUsecase(users repository.UserRepository, jobs repository.JobRepository) *User {
	return &User{users: users, jobs: jobs, now: time.Now}
}

func (u *User) GetByID(ctx context.Context, id oid.ID) (repository.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrUserNotFound
		}
		return repository.User{}, ErrInternal
	}
	return usr, nil
}

func (u *User) List(ctx context.Context) ([]repository.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return users, nil
}

func (u *User) ListManagers(ctx context.Context) ([]repository.User, error) {
	users, err := u.users.ListManagers(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return users, nil
}

func (u *User) ListTeamMembers(ctx context.Context, managerID oid.ID) ([]repository.User, error) {
	exists, err := u.users.ExistsByID(ctx, managerID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrManagerNotFound
	}

	users, err := u.users.ListTeamMembers(ctx, managerID)
	if err != nil {
		return nil, ErrInternal
	}
	return users, nil
}

func (u *User) Create(ctx context.Context, in CreateUserInput) (repository.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.Code == "" {
		return repository.User{}, ErrInvalidInput
	}

	if taken, err := u.users.ExistsByEmail(ctx, email); err != nil {
		return repository.User{}, ErrInternal
	} else if taken {
		return repository.User{}, ErrEmailAlreadyTaken
	}
	if taken, err := u.users.ExistsByCode(ctx, in.Code); err != nil {
		return repository.User{}, ErrInternal
	} else if taken {
		return repository.User{}, ErrCodeAlreadyTaken
	}

	if err := u.checkReferences(ctx, in.JobID, in.ManagerUserIDs); err != nil {
		return repository.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, ErrInternal
	}

	now := u.now().UTC()
	usr := repository.User{
		ID:                oid.New(),
		Email:             email,
		PasswordHash:      string(hash),
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Code:              in.Code,
		JobID:             in.JobID,
		ManagerUserIDs:    in.ManagerUserIDs,
		Roles:             normalizeRoles(in.Roles),
		Gender:            in.Gender,
		BirthDate:         in.BirthDate,
		HiredAt:           in.HiredAt,
		CompanyCode:       in.CompanyCode,
		CompanyName:       in.CompanyName,
		EstablishmentCode: in.EstablishmentCode,
		EstablishmentName: in.EstablishmentName,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if usr.ManagerUserIDs == nil {
		usr.ManagerUserIDs = []oid.ID{}
	}

	if err := u.users.Create(ctx, usr); err != nil {
		return repository.User{}, ErrInternal
	}
	return usr, nil
}

func (u *User) Update(ctx context.Context, id oid.ID, in UpdateUserInput) (repository.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrUserNotFound
		}
		return repository.User{}, ErrInternal
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.FirstName == "" || in.LastName == "" || in.Code == "" {
		return repository.User{}, ErrInvalidInput
	}

	if email != usr.Email {
		if taken, err := u.users.ExistsByEmail(ctx, email); err != nil {
			return repository.User{}, ErrInternal
		} else if taken {
			return repository.User{}, ErrEmailAlreadyTaken
		}
	}
	if in.Code != usr.Code {
		if taken, err := u.users.ExistsByCode(ctx, in.Code); err != nil {
			return repository.User{}, ErrInternal
		} else if taken {
			return repository.User{}, ErrCodeAlreadyTaken
		}
	}

	if err := u.checkReferences(ctx, in.JobID, in.ManagerUserIDs); err != nil {
		return repository.User{}, err
	}

	usr.Email = email
	usr.FirstName = in.FirstName
	usr.LastName = in.LastName
	usr.Code = in.Code
	usr.JobID = in.JobID
	usr.ManagerUserIDs = in.ManagerUserIDs
	usr.Roles = normalizeRoles(in.Roles)
	usr.Gender = in.Gender
	usr.BirthDate = in.BirthDate
	usr.HiredAt = in.HiredAt
	usr.CompanyCode = in.CompanyCode
	usr.CompanyName = in.CompanyName
	usr.EstablishmentCode = in.EstablishmentCode
	usr.EstablishmentName = in.EstablishmentName
	usr.UpdatedAt = u.now().UTC()
	if usr.ManagerUserIDs == nil {
		usr.ManagerUserIDs = []oid.ID{}
	}

	if err := u.users.Update(ctx, usr); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrUserNotFound
		}
		return repository.User{}, ErrInternal
	}
	return usr, nil
}

func (u *User) Delete(ctx context.Context, id oid.ID) error {
	if err := u.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *User) checkReferences(ctx context.Context, jobID *oid.ID, managerIDs []oid.ID) error {
	if jobID != nil {
		exists, err := u.jobs.ExistsByID(ctx, *jobID)
		if err != nil {
			return ErrInternal
		}
		if !exists {
			return ErrJobNotFound
		}
	}
	for _, mid := range managerIDs {
		exists, err := u.users.ExistsByID(ctx, mid)
		if err != nil {
			return ErrInternal
		}
		if !exists {
			return ErrManagerNotFound
		}
	}
	return nil
}

func normalizeRoles(roles []string) []string {
	if len(roles) == 0 {
		return []string{"USER"}
	}
	out := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		return []string{"USER"}
	}
	return out
}
