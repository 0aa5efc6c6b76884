package repository

import (
	"context"
	"errors"
	"time"

	"skillboard/internal/database"
	"skillboard/internal/pkg/oid"

	"github.com/jackc/pgx/v5"
)

var ErrEvaluationNotFound = errors.New("evaluation not found")

type Evaluation struct {
	ID                   oid.ID
	UserID               oid.ID
	ManagerUserID        *oid.ID
	UserJobID            *oid.ID
	UserJobCode          *string
	EvaluationCampaignID oid.ID
	CreatedBy            oid.ID
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type EvaluationSkill struct {
	ID                   oid.ID
	EvaluationID         oid.ID
	EvaluationCampaignID oid.ID
	SkillID              oid.ID
	MacroSkillID         oid.ID
	MacroSkillTypeID     oid.ID
	ObservedLevel        int
	CreatedAt            time.Time
}

// EnrichedEvaluationSkill carries the taxonomy names joined live at read time.
type EnrichedEvaluationSkill struct {
	EvaluationSkill
	SkillName          string
	MacroSkillName     string
	MacroSkillTypeName string
}

// PriorObservation is the latest earlier observation of a skill for a user,
// together with whether it was made in the given campaign.
type PriorObservation struct {
	ObservedLevel float64
	SameCampaign  bool
}

type EvaluationRepository interface {
	GetByID(ctx context.Context, id oid.ID) (Evaluation, error)
	List(ctx context.Context) ([]Evaluation, error)
	ListByUser(ctx context.Context, userID oid.ID) ([]Evaluation, error)
	Create(ctx context.Context, e Evaluation) error
	CreateSkills(ctx context.Context, skills []EvaluationSkill) error
	Delete(ctx context.Context, id oid.ID) error
	ListSkills(ctx context.Context, evaluationID oid.ID) ([]EnrichedEvaluationSkill, error)
	// FindPriorObservation returns the most recent observation of the skill
	// for the user, excluding the given evaluation.
	FindPriorObservation(ctx context.Context, userID, skillID, excludeEvaluationID, campaignID oid.ID) (PriorObservation, bool, error)
	ListEvaluatedUserIDsInCampaign(ctx context.Context, campaignID oid.ID, userIDs []oid.ID) (map[oid.ID]struct{}, error)
}

type PostgresEvaluationRepository struct {
	db database.Querier
}

func NewPostgresEvaluationRepository(db database.DB) *PostgresEvaluationRepository {
	return &PostgresEvaluationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresEvaluationRepository) WithTx(tx database.Tx) EvaluationRepository {
	return &PostgresEvaluationRepository{db: tx}
}

const evaluationColumns = `id, user_id, manager_user_id, user_job_id, user_job_code,
	evaluation_campaign_id, created_by, created_at, updated_at`

func (r *PostgresEvaluationRepository) GetByID(ctx context.Context, id oid.ID) (Evaluation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+evaluationColumns+` FROM evaluations WHERE id = $1`, id)
	return scanEvaluation(row)
}

func (r *PostgresEvaluationRepository) List(ctx context.Context) ([]Evaluation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+evaluationColumns+` FROM evaluations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectEvaluations(rows)
}

func (r *PostgresEvaluationRepository) ListByUser(ctx context.Context, userID oid.ID) ([]Evaluation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectEvaluations(rows)
}

func (r *PostgresEvaluationRepository) Create(ctx context.Context, e Evaluation) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO evaluations (`+evaluationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.UserID, idPtr(e.ManagerUserID), idPtr(e.UserJobID), e.UserJobCode,
		e.EvaluationCampaignID, e.CreatedBy, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *PostgresEvaluationRepository) CreateSkills(ctx context.Context, skills []EvaluationSkill) error {
	for _, s := range skills {
		_, err := r.db.Exec(ctx,
			`INSERT INTO evaluation_skills
				(id, evaluation_id, evaluation_campaign_id, skill_id, macro_skill_id, macro_skill_type_id, observed_level, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, s.EvaluationID, s.EvaluationCampaignID, s.SkillID, s.MacroSkillID, s.MacroSkillTypeID,
			s.ObservedLevel, s.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the evaluation; its skills go with it via FK cascade.
func (r *PostgresEvaluationRepository) Delete(ctx context.Context, id oid.ID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

func (r *PostgresEvaluationRepository) ListSkills(ctx context.Context, evaluationID oid.ID) ([]EnrichedEvaluationSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT es.id, es.evaluation_id, es.evaluation_campaign_id, es.skill_id, es.macro_skill_id,
			es.macro_skill_type_id, es.observed_level, es.created_at,
			s.name, ms.name, mst.name
		 FROM evaluation_skills es
		 JOIN skills s ON s.id = es.skill_id
		 JOIN macro_skills ms ON ms.id = es.macro_skill_id
		 JOIN macro_skill_types mst ON mst.id = es.macro_skill_type_id
		 WHERE es.evaluation_id = $1
		 ORDER BY mst.name ASC, ms.name ASC, s.name ASC`,
		evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EnrichedEvaluationSkill, 0)
	for rows.Next() {
		var s EnrichedEvaluationSkill
		if err := rows.Scan(&s.ID, &s.EvaluationID, &s.EvaluationCampaignID, &s.SkillID, &s.MacroSkillID,
			&s.MacroSkillTypeID, &s.ObservedLevel, &s.CreatedAt,
			&s.SkillName, &s.MacroSkillName, &s.MacroSkillTypeName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEvaluationRepository) FindPriorObservation(ctx context.Context, userID, skillID, excludeEvaluationID, campaignID oid.ID) (PriorObservation, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT es.observed_level, es.evaluation_campaign_id = $4
		 FROM evaluation_skills es
		 JOIN evaluations e ON e.id = es.evaluation_id
		 WHERE e.user_id = $1 AND es.skill_id = $2 AND es.evaluation_id <> $3
		 ORDER BY es.created_at DESC
		 LIMIT 1`,
		userID, skillID, excludeEvaluationID, campaignID)

	var p PriorObservation
	if err := row.Scan(&p.ObservedLevel, &p.SameCampaign); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PriorObservation{}, false, nil
		}
		return PriorObservation{}, false, err
	}
	return p, true, nil
}

func (r *PostgresEvaluationRepository) ListEvaluatedUserIDsInCampaign(ctx context.Context, campaignID oid.ID, userIDs []oid.ID) (map[oid.ID]struct{}, error) {
	out := make(map[oid.ID]struct{})
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT user_id FROM evaluations WHERE evaluation_campaign_id = $1 AND user_id = ANY($2)`,
		campaignID, oid.Strings(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id oid.ID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEvaluation(row database.Row) (Evaluation, error) {
	var e Evaluation
	var managerID, jobID *string
	err := row.Scan(&e.ID, &e.UserID, &managerID, &jobID, &e.UserJobCode,
		&e.EvaluationCampaignID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Evaluation{}, ErrEvaluationNotFound
		}
		return Evaluation{}, err
	}
	if managerID != nil {
		id := oid.ID(*managerID)
		e.ManagerUserID = &id
	}
	if jobID != nil {
		id := oid.ID(*jobID)
		e.UserJobID = &id
	}
	return e, nil
}

func collectEvaluations(rows database.Rows) ([]Evaluation, error) {
	defer rows.Close()

	out := make([]Evaluation, 0)
	for rows.Next() {
		e, err := scanEvaluation(rowsAsRow{rows})
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
