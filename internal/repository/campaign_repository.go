package repository

import (
	"context"
	"errors"
	"time"

	"skillboard/internal/database"
	"skillboard/internal/pkg/oid"

	"github.com/jackc/pgx/v5"
)

var ErrCampaignNotFound = errors.New("evaluation campaign not found")

type EvaluationCampaign struct {
	ID        oid.ID
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CampaignRepository interface {
	List(ctx context.Context) ([]EvaluationCampaign, error)
	GetByID(ctx context.Context, id oid.ID) (EvaluationCampaign, error)
	// FindCurrent returns the campaign whose window contains now, preferring
	// the most recent start date when windows overlap.
	FindCurrent(ctx context.Context, now time.Time) (EvaluationCampaign, error)
	Create(ctx context.Context, c EvaluationCampaign) error
	Update(ctx context.Context, c EvaluationCampaign) error
	Delete(ctx context.Context, id oid.ID) error
}

type PostgresCampaignRepository struct {
	db database.Querier
}

func NewPostgresCampaignRepository(db database.DB) *PostgresCampaignRepository {
	return &PostgresCampaignRepository{db: db}
}

func (r *PostgresCampaignRepository) List(ctx context.Context) ([]EvaluationCampaign, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, start_date, end_date, created_at, updated_at FROM evaluation_campaigns ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EvaluationCampaign, 0)
	for rows.Next() {
		var c EvaluationCampaign
		if err := rows.Scan(&c.ID, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCampaignRepository) GetByID(ctx context.Context, id oid.ID) (EvaluationCampaign, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, start_date, end_date, created_at, updated_at FROM evaluation_campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

func (r *PostgresCampaignRepository) FindCurrent(ctx context.Context, now time.Time) (EvaluationCampaign, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, start_date, end_date, created_at, updated_at
		 FROM evaluation_campaigns
		 WHERE start_date <= $1 AND end_date >= $1
		 ORDER BY start_date DESC
		 LIMIT 1`,
		now)
	return scanCampaign(row)
}

func (r *PostgresCampaignRepository) Create(ctx context.Context, c EvaluationCampaign) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO evaluation_campaigns (id, start_date, end_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.StartDate, c.EndDate, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *PostgresCampaignRepository) Update(ctx context.Context, c EvaluationCampaign) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE evaluation_campaigns SET start_date = $2, end_date = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.StartDate, c.EndDate, c.UpdatedAt)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *PostgresCampaignRepository) Delete(ctx context.Context, id oid.ID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM evaluation_campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func scanCampaign(row database.Row) (EvaluationCampaign, error) {
	var c EvaluationCampaign
	if err := row.Scan(&c.ID, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EvaluationCampaign{}, ErrCampaignNotFound
		}
		return EvaluationCampaign{}, err
	}
	return c, nil
}
