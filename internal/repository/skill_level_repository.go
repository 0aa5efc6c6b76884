package repository

import (
	"context"
	"errors"
	"time"

	"skillboard/internal/database"
	"skillboard/internal/pkg/oid"

	"github.com/jackc/pgx/v5"
)

var ErrSkillLevelNotFound = errors.New("skill level not found")

// SkillLevel is the per-user tracked level for a skill. Level is nil when the
// skill has never been observed for the user.
type SkillLevel struct {
	ID        oid.ID
	UserID    oid.ID
	SkillID   oid.ID
	Level     *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SkillLevelRepository interface {
	Get(ctx context.Context, userID, skillID oid.ID) (SkillLevel, error)
	ListByUser(ctx context.Context, userID oid.ID) ([]SkillLevel, error)
	ListByUsers(ctx context.Context, userIDs []oid.ID) (map[oid.ID][]SkillLevel, error)
	// ListLevelsBySkill returns every tracked level for the skill, including
	// null levels, one entry per user.
	ListLevelsBySkill(ctx context.Context, skillID oid.ID) ([]*float64, error)
	// Upsert inserts the (user, skill) pair or replaces its level.
	Upsert(ctx context.Context, userID, skillID oid.ID, level float64, now time.Time) error
}

type PostgresSkillLevelRepository struct {
	db database.Querier
}

func NewPostgresSkillLevelRepository(db database.DB) *PostgresSkillLevelRepository {
	return &PostgresSkillLevelRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresSkillLevelRepository) WithTx(tx database.Tx) SkillLevelRepository {
	return &PostgresSkillLevelRepository{db: tx}
}

func (r *PostgresSkillLevelRepository) Get(ctx context.Context, userID, skillID oid.ID) (SkillLevel, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, skill_id, level, created_at, updated_at
		 FROM skill_levels WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID)

	var sl SkillLevel
	if err := row.Scan(&sl.ID, &sl.UserID, &sl.SkillID, &sl.Level, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SkillLevel{}, ErrSkillLevelNotFound
		}
		return SkillLevel{}, err
	}
	return sl, nil
}

func (r *PostgresSkillLevelRepository) ListByUser(ctx context.Context, userID oid.ID) ([]SkillLevel, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, skill_id, level, created_at, updated_at
		 FROM skill_levels WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillLevel, 0)
	for rows.Next() {
		var sl SkillLevel
		if err := rows.Scan(&sl.ID, &sl.UserID, &sl.SkillID, &sl.Level, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillLevelRepository) ListByUsers(ctx context.Context, userIDs []oid.ID) (map[oid.ID][]SkillLevel, error) {
	out := make(map[oid.ID][]SkillLevel)
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, skill_id, level, created_at, updated_at
		 FROM skill_levels WHERE user_id = ANY($1)`,
		oid.Strings(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sl SkillLevel
		if err := rows.Scan(&sl.ID, &sl.UserID, &sl.SkillID, &sl.Level, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
			return nil, err
		}
		out[sl.UserID] = append(out[sl.UserID], sl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillLevelRepository) ListLevelsBySkill(ctx context.Context, skillID oid.ID) ([]*float64, error) {
	rows, err := r.db.Query(ctx, `SELECT level FROM skill_levels WHERE skill_id = $1`, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*float64, 0)
	for rows.Next() {
		var level *float64
		if err := rows.Scan(&level); err != nil {
			return nil, err
		}
		out = append(out, level)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillLevelRepository) Upsert(ctx context.Context, userID, skillID oid.ID, level float64, now time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_levels (id, user_id, skill_id, level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET level = EXCLUDED.level, updated_at = EXCLUDED.updated_at`,
		oid.New(), userID, skillID, level, now)
	return err
}
