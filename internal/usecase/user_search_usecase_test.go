package usecase

import (
	"context"
	"errors"
	"testing"

	"skillboard/internal/domain/search"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/pagination"
	"skillboard/internal/repository"
)

type mockUserSearchRepo struct {
	ids       []oid.ID
	hits      []search.ObservationHit
	searchErr error

	gotGetByIDs []oid.ID
}

func (m *mockUserSearchRepo) SearchIDs(context.Context, repository.UserSearchFilter) ([]oid.ID, error) {
	return m.ids, m.searchErr
}

func (m *mockUserSearchRepo) QualifyingHits(context.Context, []oid.ID, []search.SkillRequirement) ([]search.ObservationHit, error) {
	return m.hits, nil
}

func (m *mockUserSearchRepo) GetByIDs(_ context.Context, ids []oid.ID) ([]repository.User, error) {
	m.gotGetByIDs = ids
	out := make([]repository.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, repository.User{ID: id})
	}
	return out, nil
}

func TestUserSearch_ConflictingSkillFilters(t *testing.T) {
	u := NewUserSearchUsecase(&mockUserSearchRepo{})

	lvl := 2
	in := SearchUsersInput{
		Filter: repository.UserSearchFilter{
			SingleSkill:    &repository.SingleSkillFilter{SkillName: "weld", ObservedLevel: &lvl},
			RequiredSkills: []search.SkillRequirement{{SkillID: oid.New(), MinLevel: 1}},
		},
		Pagination: pagination.Params{Page: 1, Limit: 10},
	}

	_, _, err := u.Search(context.Background(), in)
	if !errors.Is(err, ErrConflictingSkillFilters) {
		t.Fatalf("expected ErrConflictingSkillFilters, got %v", err)
	}
}

func TestUserSearch_InvalidMinLevel(t *testing.T) {
	u := NewUserSearchUsecase(&mockUserSearchRepo{})

	in := SearchUsersInput{
		Filter: repository.UserSearchFilter{
			RequiredSkills: []search.SkillRequirement{{SkillID: oid.New(), MinLevel: 9}},
		},
		Pagination: pagination.Params{Page: 1, Limit: 10},
	}

	_, _, err := u.Search(context.Background(), in)
	if !errors.Is(err, ErrInvalidObservedLevel) {
		t.Fatalf("expected ErrInvalidObservedLevel, got %v", err)
	}
}

func TestUserSearch_AllMatchFiltering(t *testing.T) {
	alice, bob, carol := oid.New(), oid.New(), oid.New()
	skillA, skillB := oid.New(), oid.New()

	repo := &mockUserSearchRepo{
		ids: []oid.ID{alice, bob, carol},
		hits: []search.ObservationHit{
			{UserID: alice, SkillID: skillA},
			{UserID: alice, SkillID: skillB},
			{UserID: bob, SkillID: skillA},
			{UserID: carol, SkillID: skillB},
		},
	}
	u := NewUserSearchUsecase(repo)

	in := SearchUsersInput{
		Filter: repository.UserSearchFilter{
			RequiredSkills: []search.SkillRequirement{
				{SkillID: skillA, MinLevel: 2},
				{SkillID: skillB, MinLevel: 1},
			},
		},
		Pagination: pagination.Params{Page: 1, Limit: 10},
	}

	users, total, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	if len(users) != 1 || users[0].ID != alice {
		t.Fatalf("expected only %s to match", alice)
	}
}

func TestUserSearch_TotalCountsBeforePageWindow(t *testing.T) {
	ids := make([]oid.ID, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, oid.New())
	}
	repo := &mockUserSearchRepo{ids: ids}
	u := NewUserSearchUsecase(repo)

	in := SearchUsersInput{
		Pagination: pagination.Params{Page: 2, Limit: 2, Skip: 2},
	}

	users, total, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(users) != 2 || users[0].ID != ids[2] || users[1].ID != ids[3] {
		t.Fatalf("expected second page window, got %v", repo.gotGetByIDs)
	}
}

func TestUserSearch_PageBeyondResults(t *testing.T) {
	repo := &mockUserSearchRepo{ids: []oid.ID{oid.New()}}
	u := NewUserSearchUsecase(repo)

	in := SearchUsersInput{
		Pagination: pagination.Params{Page: 3, Limit: 10, Skip: 20},
	}

	users, total, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty page, got %d users", len(users))
	}
	if repo.gotGetByIDs != nil {
		t.Fatal("expected no user fetch for an empty window")
	}
}
