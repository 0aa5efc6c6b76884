package usecase

import (
	"context"
	"errors"

	"skillboard/internal/domain/reporting"
	"skillboard/internal/domain/search"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/pagination"
	"skillboard/internal/repository"
)

var ErrConflictingSkillFilters = errors.New("single-skill and multi-skill filters are exclusive")

type SearchUsersInput struct {
	Filter     repository.UserSearchFilter
	Pagination pagination.Params
}

type UserSearchUsecase interface {
	Search(ctx context.Context, in SearchUsersInput) ([]repository.User, int, error)
}

type UserSearch struct {
	repo repository.UserSearchRepository
}

func NewUserSearchUsecase(repo repository.UserSearchRepository) *UserSearch {
	return &UserSearch{repo: repo}
}

// Search applies every provided criterion, resolves the multi-skill ALL-match
// on top, and slices the page window out of the filtered result. The total
// counts filtered users, not raw candidates.
func (u *UserSearch) Search(ctx context.Context, in SearchUsersInput) ([]repository.User, int, error) {
	f := in.Filter
	if f.SingleSkill != nil && len(f.RequiredSkills) > 0 {
		return nil, 0, ErrConflictingSkillFilters
	}
	for _, req := range f.RequiredSkills {
		if req.SkillID.IsZero() {
			return nil, 0, ErrInvalidInput
		}
		if req.MinLevel < reporting.MinLevel || req.MinLevel > reporting.MaxLevel {
			return nil, 0, ErrInvalidObservedLevel
		}
	}
	if f.SingleSkill != nil && f.SingleSkill.ObservedLevel != nil {
		lvl := *f.SingleSkill.ObservedLevel
		if lvl < reporting.MinLevel || lvl > reporting.MaxLevel {
			return nil, 0, ErrInvalidObservedLevel
		}
	}

	ids, err := u.repo.SearchIDs(ctx, f)
	if err != nil {
		return nil, 0, ErrInternal
	}

	if len(f.RequiredSkills) > 0 {
		ids, err = u.filterByRequiredSkills(ctx, ids, f.RequiredSkills)
		if err != nil {
			return nil, 0, ErrInternal
		}
	}

	total := len(ids)
	window := pageWindow(ids, in.Pagination)
	if len(window) == 0 {
		return []repository.User{}, total, nil
	}

	users, err := u.repo.GetByIDs(ctx, window)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return users, total, nil
}

func (u *UserSearch) filterByRequiredSkills(ctx context.Context, ids []oid.ID, reqs []search.SkillRequirement) ([]oid.ID, error) {
	if len(ids) == 0 {
		return ids, nil
	}

	hits, err := u.repo.QualifyingHits(ctx, ids, reqs)
	if err != nil {
		return nil, err
	}

	matched := search.UsersMatchingAll(hits, reqs)
	out := make([]oid.ID, 0, len(matched))
	for _, id := range ids {
		if _, ok := matched[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func pageWindow(ids []oid.ID, p pagination.Params) []oid.ID {
	if p.Skip >= len(ids) {
		return nil
	}
	end := p.Skip + p.Limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[p.Skip:end]
}
