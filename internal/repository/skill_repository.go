package repository

import (
	"context"
	"errors"
	"time"

	"skillboard/internal/database"
	"skillboard/internal/pkg/oid"

	"github.com/jackc/pgx/v5"
)

var (
	ErrSkillNotFound          = errors.New("skill not found")
	ErrMacroSkillNotFound     = errors.New("macro skill not found")
	ErrMacroSkillTypeNotFound = errors.New("macro skill type not found")
)

type MacroSkillType struct {
	ID        oid.ID
	Name      string
	CreatedAt time.Time
}

type MacroSkill struct {
	ID               oid.ID
	Name             string
	MacroSkillTypeID oid.ID
	JobID            oid.ID
	CreatedAt        time.Time
}

type Skill struct {
	ID            oid.ID
	Name          string
	MacroSkillID  oid.ID
	JobID         oid.ID
	ExpectedLevel int
	CreatedAt     time.Time
}

type SkillRepository interface {
	ListMacroSkillTypes(ctx context.Context) ([]MacroSkillType, error)
	ExistsMacroSkillTypeByName(ctx context.Context, name string) (bool, error)
	GetMacroSkillType(ctx context.Context, id oid.ID) (MacroSkillType, error)
	CreateMacroSkillType(ctx context.Context, t MacroSkillType) error

	ListMacroSkills(ctx context.Context) ([]MacroSkill, error)
	GetMacroSkill(ctx context.Context, id oid.ID) (MacroSkill, error)
	CreateMacroSkill(ctx context.Context, m MacroSkill) error

	ListSkills(ctx context.Context) ([]Skill, error)
	GetSkill(ctx context.Context, id oid.ID) (Skill, error)
	CreateSkill(ctx context.Context, s Skill) error
	DeleteSkill(ctx context.Context, id oid.ID) error
	HasEvaluationSkills(ctx context.Context, skillID oid.ID) (bool, error)
}

type PostgresSkillRepository struct {
	db database.Querier
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListMacroSkillTypes(ctx context.Context) ([]MacroSkillType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM macro_skill_types ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MacroSkillType, 0)
	for rows.Next() {
		var t MacroSkillType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ExistsMacroSkillTypeByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM macro_skill_types WHERE name = $1)`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) GetMacroSkillType(ctx context.Context, id oid.ID) (MacroSkillType, error) {
	var t MacroSkillType
	row := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM macro_skill_types WHERE id = $1`, id)
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MacroSkillType{}, ErrMacroSkillTypeNotFound
		}
		return MacroSkillType{}, err
	}
	return t, nil
}

func (r *PostgresSkillRepository) CreateMacroSkillType(ctx context.Context, t MacroSkillType) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO macro_skill_types (id, name, created_at) VALUES ($1, $2, $3)`,
		t.ID, t.Name, t.CreatedAt)
	return err
}

func (r *PostgresSkillRepository) ListMacroSkills(ctx context.Context) ([]MacroSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, macro_skill_type_id, job_id, created_at FROM macro_skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MacroSkill, 0)
	for rows.Next() {
		var m MacroSkill
		if err := rows.Scan(&m.ID, &m.Name, &m.MacroSkillTypeID, &m.JobID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetMacroSkill(ctx context.Context, id oid.ID) (MacroSkill, error) {
	var m MacroSkill
	row := r.db.QueryRow(ctx,
		`SELECT id, name, macro_skill_type_id, job_id, created_at FROM macro_skills WHERE id = $1`, id)
	if err := row.Scan(&m.ID, &m.Name, &m.MacroSkillTypeID, &m.JobID, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MacroSkill{}, ErrMacroSkillNotFound
		}
		return MacroSkill{}, err
	}
	return m, nil
}

func (r *PostgresSkillRepository) CreateMacroSkill(ctx context.Context, m MacroSkill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO macro_skills (id, name, macro_skill_type_id, job_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.MacroSkillTypeID, m.JobID, m.CreatedAt)
	return err
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, macro_skill_id, job_id, expected_level, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.MacroSkillID, &s.JobID, &s.ExpectedLevel, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetSkill(ctx context.Context, id oid.ID) (Skill, error) {
	var s Skill
	row := r.db.QueryRow(ctx,
		`SELECT id, name, macro_skill_id, job_id, expected_level, created_at FROM skills WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.Name, &s.MacroSkillID, &s.JobID, &s.ExpectedLevel, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, s Skill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, macro_skill_id, job_id, expected_level, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.MacroSkillID, s.JobID, s.ExpectedLevel, s.CreatedAt)
	return err
}

func (r *PostgresSkillRepository) DeleteSkill(ctx context.Context, id oid.ID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) HasEvaluationSkills(ctx context.Context, skillID oid.ID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM evaluation_skills WHERE skill_id = $1)`, skillID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
