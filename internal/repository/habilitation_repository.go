package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillboard/internal/database"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/pagination"

	"github.com/jackc/pgx/v5"
)

var ErrHabilitationNotFound = errors.New("habilitation not found")

type Habilitation struct {
	ID             oid.ID
	UserID         oid.ID
	JobID          oid.ID
	Type           string
	Code           string
	Label          string
	StartDate      time.Time
	EndDate        time.Time
	PayrollSection string
	Establishment  string
	Profession     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HabilitationFilter accumulates the optional search criteria; zero values
// mean the condition is skipped.
type HabilitationFilter struct {
	Query       string
	UserIDs     []oid.ID
	JobIDs      []oid.ID
	StartsAfter *time.Time
	EndsBefore  *time.Time
	ActiveAt    *time.Time
}

type HabilitationRepository interface {
	GetByID(ctx context.Context, id oid.ID) (Habilitation, error)
	Search(ctx context.Context, f HabilitationFilter, p pagination.Params) ([]Habilitation, int, error)
	Create(ctx context.Context, h Habilitation) error
	Update(ctx context.Context, h Habilitation) error
	Delete(ctx context.Context, id oid.ID) error
}

type PostgresHabilitationRepository struct {
	db database.Querier
}

func NewPostgresHabilitationRepository(db database.DB) *PostgresHabilitationRepository {
	return &PostgresHabilitationRepository{db: db}
}

const habilitationColumns = `id, user_id, job_id, type, code, label, start_date, end_date,
	payroll_section, establishment, profession, created_at, updated_at`

func (r *PostgresHabilitationRepository) GetByID(ctx context.Context, id oid.ID) (Habilitation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+habilitationColumns+` FROM habilitations WHERE id = $1`, id)
	return scanHabilitation(row)
}

func (r *PostgresHabilitationRepository) Search(ctx context.Context, f HabilitationFilter, p pagination.Params) ([]Habilitation, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		ph := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf(
			"(code ILIKE %s OR label ILIKE %s OR type ILIKE %s OR payroll_section ILIKE %s OR establishment ILIKE %s OR profession ILIKE %s)",
			ph, ph, ph, ph, ph, ph))
	}
	if len(f.UserIDs) > 0 {
		conds = append(conds, "user_id = ANY("+arg(oid.Strings(f.UserIDs))+")")
	}
	if len(f.JobIDs) > 0 {
		conds = append(conds, "job_id = ANY("+arg(oid.Strings(f.JobIDs))+")")
	}
	if f.StartsAfter != nil {
		conds = append(conds, "start_date >= "+arg(*f.StartsAfter))
	}
	if f.EndsBefore != nil {
		conds = append(conds, "end_date <= "+arg(*f.EndsBefore))
	}
	if f.ActiveAt != nil {
		ph := arg(*f.ActiveAt)
		conds = append(conds, fmt.Sprintf("start_date <= %s AND end_date >= %s", ph, ph))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM habilitations`+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + habilitationColumns + ` FROM habilitations` + where +
		` ORDER BY start_date DESC, id DESC LIMIT ` + arg(p.Limit) + ` OFFSET ` + arg(p.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Habilitation, 0)
	for rows.Next() {
		h, err := scanHabilitation(rowsAsRow{rows})
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresHabilitationRepository) Create(ctx context.Context, h Habilitation) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO habilitations (`+habilitationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		h.ID, h.UserID, h.JobID, h.Type, h.Code, h.Label, h.StartDate, h.EndDate,
		h.PayrollSection, h.Establishment, h.Profession, h.CreatedAt, h.UpdatedAt)
	return err
}

func (r *PostgresHabilitationRepository) Update(ctx context.Context, h Habilitation) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE habilitations SET
			user_id = $2, job_id = $3, type = $4, code = $5, label = $6,
			start_date = $7, end_date = $8, payroll_section = $9, establishment = $10,
			profession = $11, updated_at = $12
		 WHERE id = $1`,
		h.ID, h.UserID, h.JobID, h.Type, h.Code, h.Label,
		h.StartDate, h.EndDate, h.PayrollSection, h.Establishment,
		h.Profession, h.UpdatedAt)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHabilitationNotFound
	}
	return nil
}

func (r *PostgresHabilitationRepository) Delete(ctx context.Context, id oid.ID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM habilitations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHabilitationNotFound
	}
	return nil
}

func scanHabilitation(row database.Row) (Habilitation, error) {
	var h Habilitation
	err := row.Scan(&h.ID, &h.UserID, &h.JobID, &h.Type, &h.Code, &h.Label, &h.StartDate, &h.EndDate,
		&h.PayrollSection, &h.Establishment, &h.Profession, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Habilitation{}, ErrHabilitationNotFound
		}
		return Habilitation{}, err
	}
	return h, nil
}
