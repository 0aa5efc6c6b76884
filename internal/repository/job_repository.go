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
	ErrJobNotFound  = errors.New("job not found")
	ErrJobCodeTaken = errors.New("job code already exists")
)

type Job struct {
	ID         oid.ID
	Name       string
	Code       string
	JobProfile string
	JobFamily  *string
	CreatedAt  time.Time
}

// JobSkillRow is a job-owned skill with its taxonomy names live-joined for
// display. The names are never denormalized into storage.
type JobSkillRow struct {
	SkillID            oid.ID
	SkillName          string
	MacroSkillID       oid.ID
	MacroSkillName     string
	MacroSkillTypeID   oid.ID
	MacroSkillTypeName string
	ExpectedLevel      int
}

type JobRepository interface {
	GetByID(ctx context.Context, id oid.ID) (Job, error)
	ExistsByID(ctx context.Context, id oid.ID) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]Job, error)
	Search(ctx context.Context, query string) ([]Job, error)
	Create(ctx context.Context, j Job) error
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id oid.ID) error
	ListSkills(ctx context.Context, jobID oid.ID) ([]JobSkillRow, error)
	ListSkillsForJobs(ctx context.Context, jobIDs []oid.ID) (map[oid.ID][]JobSkillRow, error)
}

type PostgresJobRepository struct {
	db database.Querier
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id oid.ID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, code, job_profile, job_family, created_at FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id oid.ID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE code = $1)`, code)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) List(ctx context.Context) ([]Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, code, job_profile, job_family, created_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Search(ctx context.Context, query string) ([]Job, error) {
	p := "%" + query + "%"
	rows, err := r.db.Query(ctx,
		`SELECT id, name, code, job_profile, job_family, created_at
		 FROM jobs
		 WHERE name ILIKE $1 OR code ILIKE $1 OR job_profile ILIKE $1 OR job_family ILIKE $1
		 ORDER BY created_at DESC`,
		p)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Create(ctx context.Context, j Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, name, code, job_profile, job_family, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		j.ID, j.Name, j.Code, j.JobProfile, j.JobFamily, j.CreatedAt)
	return err
}

func (r *PostgresJobRepository) Update(ctx context.Context, j Job) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET name = $2, code = $3, job_profile = $4, job_family = $5 WHERE id = $1`,
		j.ID, j.Name, j.Code, j.JobProfile, j.JobFamily)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id oid.ID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

const jobSkillSelect = `
	SELECT s.id, s.name, ms.id, ms.name, mst.id, mst.name, s.expected_level
	FROM skills s
	JOIN macro_skills ms ON ms.id = s.macro_skill_id
	JOIN macro_skill_types mst ON mst.id = ms.macro_skill_type_id`

func (r *PostgresJobRepository) ListSkills(ctx context.Context, jobID oid.ID) ([]JobSkillRow, error) {
	rows, err := r.db.Query(ctx, jobSkillSelect+` WHERE s.job_id = $1 ORDER BY mst.name ASC, ms.name ASC, s.name ASC`, jobID)
	if err != nil {
		return nil, err
	}
	return collectJobSkills(rows)
}

func (r *PostgresJobRepository) ListSkillsForJobs(ctx context.Context, jobIDs []oid.ID) (map[oid.ID][]JobSkillRow, error) {
	out := make(map[oid.ID][]JobSkillRow)
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT s.job_id, s.id, s.name, ms.id, ms.name, mst.id, mst.name, s.expected_level
		 FROM skills s
		 JOIN macro_skills ms ON ms.id = s.macro_skill_id
		 JOIN macro_skill_types mst ON mst.id = ms.macro_skill_type_id
		 WHERE s.job_id = ANY($1)`,
		oid.Strings(jobIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID oid.ID
		var sk JobSkillRow
		if err := rows.Scan(&jobID, &sk.SkillID, &sk.SkillName, &sk.MacroSkillID, &sk.MacroSkillName,
			&sk.MacroSkillTypeID, &sk.MacroSkillTypeName, &sk.ExpectedLevel); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], sk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (Job, error) {
	var j Job
	if err := row.Scan(&j.ID, &j.Name, &j.Code, &j.JobProfile, &j.JobFamily, &j.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func collectJobs(rows database.Rows) ([]Job, error) {
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		j, err := scanJob(rowsAsRow{rows})
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func collectJobSkills(rows database.Rows) ([]JobSkillRow, error) {
	defer rows.Close()

	out := make([]JobSkillRow, 0)
	for rows.Next() {
		var sk JobSkillRow
		if err := rows.Scan(&sk.SkillID, &sk.SkillName, &sk.MacroSkillID, &sk.MacroSkillName,
			&sk.MacroSkillTypeID, &sk.MacroSkillTypeName, &sk.ExpectedLevel); err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
