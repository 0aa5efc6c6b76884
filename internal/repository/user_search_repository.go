package repository

import (
	"context"
	"fmt"
	"strings"

	"skillboard/internal/database"
	"skillboard/internal/domain/search"
	"skillboard/internal/pkg/oid"
)

// SingleSkillFilter is the legacy one-skill mode: substring on the skill name
// and/or an exact observed level, matched through the user's evaluations.
type SingleSkillFilter struct {
	SkillName     string
	ObservedLevel *int
}

// UserSearchFilter accumulates the optional criteria; zero values mean the
// stage is skipped. Skill criteria are a discriminated pair: at most one of
// SingleSkill / RequiredSkills is set.
type UserSearchFilter struct {
	ManagerUserID     *oid.ID
	Gender            string
	EstablishmentName string

	AgeMin       *int
	AgeMax       *int
	SeniorityMin *int
	SeniorityMax *int

	Query string

	JobName string
	JobIDs  []oid.ID

	SingleSkill    *SingleSkillFilter
	RequiredSkills []search.SkillRequirement
}

type UserSearchRepository interface {
	// SearchIDs returns every matching user ID, createdAt descending, with
	// all filters applied except RequiredSkills (resolved by the caller).
	SearchIDs(ctx context.Context, f UserSearchFilter) ([]oid.ID, error)
	// QualifyingHits returns the (user, skill) pairs among the given users
	// whose observed level reaches each requirement's minimum.
	QualifyingHits(ctx context.Context, userIDs []oid.ID, reqs []search.SkillRequirement) ([]search.ObservationHit, error)
	// GetByIDs returns users in the order of the given ID slice.
	GetByIDs(ctx context.Context, ids []oid.ID) ([]User, error)
}

type PostgresUserSearchRepository struct {
	db database.Querier
}

func NewPostgresUserSearchRepository(db database.DB) *PostgresUserSearchRepository {
	return &PostgresUserSearchRepository{db: db}
}

func (r *PostgresUserSearchRepository) SearchIDs(ctx context.Context, f UserSearchFilter) ([]oid.ID, error) {
	var (
		conds []string
		joins []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ManagerUserID != nil {
		conds = append(conds, arg(*f.ManagerUserID)+" = ANY(u.manager_user_ids)")
	}
	if f.Gender != "" {
		conds = append(conds, "u.gender = "+arg(f.Gender))
	}
	if f.EstablishmentName != "" {
		conds = append(conds, "u.establishment_name ILIKE "+arg("%"+f.EstablishmentName+"%"))
	}

	if f.AgeMin != nil {
		conds = append(conds, "date_part('year', age(u.birth_date))::int >= "+arg(*f.AgeMin))
	}
	if f.AgeMax != nil {
		conds = append(conds, "date_part('year', age(u.birth_date))::int <= "+arg(*f.AgeMax))
	}
	if f.SeniorityMin != nil {
		conds = append(conds, "date_part('year', age(u.hired_at))::int >= "+arg(*f.SeniorityMin))
	}
	if f.SeniorityMax != nil {
		conds = append(conds, "date_part('year', age(u.hired_at))::int <= "+arg(*f.SeniorityMax))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf(
			"(u.first_name ILIKE %s OR u.last_name ILIKE %s OR u.email ILIKE %s OR u.code ILIKE %s)",
			p, p, p, p))
	}

	if f.JobName != "" || len(f.JobIDs) > 0 {
		joins = append(joins, "JOIN jobs j ON j.id = u.job_id")
		if f.JobName != "" {
			conds = append(conds, "j.name ILIKE "+arg("%"+f.JobName+"%"))
		}
		if len(f.JobIDs) > 0 {
			conds = append(conds, "j.id = ANY("+arg(oid.Strings(f.JobIDs))+")")
		}
	}

	if f.SingleSkill != nil {
		sub := []string{"e.user_id = u.id"}
		if f.SingleSkill.SkillName != "" {
			sub = append(sub, "s.name ILIKE "+arg("%"+f.SingleSkill.SkillName+"%"))
		}
		if f.SingleSkill.ObservedLevel != nil {
			sub = append(sub, "es.observed_level = "+arg(*f.SingleSkill.ObservedLevel))
		}
		conds = append(conds, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM evaluations e
				JOIN evaluation_skills es ON es.evaluation_id = e.id
				JOIN skills s ON s.id = es.skill_id
				WHERE %s
			)`, strings.Join(sub, " AND ")))
	}

	query := "SELECT u.id FROM users u"
	if len(joins) > 0 {
		query += " " + strings.Join(joins, " ")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY u.created_at DESC, u.id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]oid.ID, 0)
	for rows.Next() {
		var id oid.ID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSearchRepository) QualifyingHits(ctx context.Context, userIDs []oid.ID, reqs []search.SkillRequirement) ([]search.ObservationHit, error) {
	if len(userIDs) == 0 || len(reqs) == 0 {
		return nil, nil
	}

	args := []any{oid.Strings(userIDs)}
	pairs := make([]string, 0, len(reqs))
	for _, req := range reqs {
		args = append(args, req.SkillID, req.MinLevel)
		pairs = append(pairs, fmt.Sprintf("(es.skill_id = $%d AND es.observed_level >= $%d)", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(
		`SELECT DISTINCT e.user_id, es.skill_id
		 FROM evaluations e
		 JOIN evaluation_skills es ON es.evaluation_id = e.id
		 WHERE e.user_id = ANY($1) AND (%s)`,
		strings.Join(pairs, " OR "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]search.ObservationHit, 0)
	for rows.Next() {
		var h search.ObservationHit
		if err := rows.Scan(&h.UserID, &h.SkillID); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSearchRepository) GetByIDs(ctx context.Context, ids []oid.ID) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, oid.Strings(ids))
	if err != nil {
		return nil, err
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[oid.ID]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	out := make([]User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
