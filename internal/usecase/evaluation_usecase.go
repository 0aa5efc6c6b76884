package usecase

import (
	"context"
	"errors"
	"time"

	"skillboard/internal/database"
	"skillboard/internal/domain/evaluation"
	"skillboard/internal/domain/reporting"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

var (
	ErrEvaluationNotFound   = errors.New("evaluation not found")
	ErrNoSkillsInEvaluation = errors.New("evaluation must contain at least one skill")
	ErrDuplicateSkill       = errors.New("duplicate skill in evaluation")
	ErrInvalidObservedLevel = errors.New("invalid observed level")
)

type ObservedSkillInput struct {
	SkillID       oid.ID
	ObservedLevel int
}

type CreateCompleteEvaluationInput struct {
	UserID        oid.ID
	ManagerUserID *oid.ID
	CampaignID    oid.ID
	UserJobID     *oid.ID
	UserJobCode   *string
	CreatedBy     oid.ID
	Skills        []ObservedSkillInput
}

type EvaluationWithSkills struct {
	Evaluation repository.Evaluation
	Skills     []repository.EnrichedEvaluationSkill
}

// EvaluationStore is the evaluation repository surface plus transaction
// binding, so the complete-evaluation write runs atomically.
type EvaluationStore interface {
	repository.EvaluationRepository
	WithTx(tx database.Tx) repository.EvaluationRepository
}

// SkillLevelStore is the tracked-level repository surface plus transaction
// binding.
type SkillLevelStore interface {
	repository.SkillLevelRepository
	WithTx(tx database.Tx) repository.SkillLevelRepository
}

type EvaluationUsecase interface {
	CreateComplete(ctx context.Context, in CreateCompleteEvaluationInput) (EvaluationWithSkills, error)
	GetWithSkills(ctx context.Context, id oid.ID) (EvaluationWithSkills, error)
	List(ctx context.Context) ([]repository.Evaluation, error)
	ListByUser(ctx context.Context, userID oid.ID) ([]repository.Evaluation, error)
	Delete(ctx context.Context, id oid.ID) error
	ListSkillLevels(ctx context.Context, userID oid.ID) ([]repository.SkillLevel, error)
}

type Evaluation struct {
	db          database.DB
	evaluations EvaluationStore
	skillLevels SkillLevelStore
	users       repository.UserRepository
	skills      repository.SkillRepository
	campaigns   repository.CampaignRepository
	cache       ReportCache
	now         func() time.Time
}

func NewEvaluationUsecase(
	db database.DB,
	evaluations EvaluationStore,
	skillLevels SkillLevelStore,
	users repository.UserRepository,
	skills repository.SkillRepository,
	campaigns repository.CampaignRepository,
	cache ReportCache,
) *Evaluation {
	return &Evaluation{
		db:          db,
		evaluations: evaluations,
		skillLevels: skillLevels,
		users:       users,
		skills:      skills,
		campaigns:   campaigns,
		cache:       cache,
		now:         time.Now,
	}
}

// CreateComplete records an evaluation with all its observed skills and folds
// every observation into the user's tracked levels in a single transaction.
func (u *Evaluation) CreateComplete(ctx context.Context, in CreateCompleteEvaluationInput) (EvaluationWithSkills, error) {
	if in.UserID.IsZero() || in.CampaignID.IsZero() || in.CreatedBy.IsZero() {
		return EvaluationWithSkills{}, ErrInvalidInput
	}
	if len(in.Skills) == 0 {
		return EvaluationWithSkills{}, ErrNoSkillsInEvaluation
	}

	seen := make(map[oid.ID]struct{}, len(in.Skills))
	for _, s := range in.Skills {
		if s.SkillID.IsZero() {
			return EvaluationWithSkills{}, ErrInvalidInput
		}
		if s.ObservedLevel < reporting.MinLevel || s.ObservedLevel > reporting.MaxLevel {
			return EvaluationWithSkills{}, ErrInvalidObservedLevel
		}
		if _, dup := seen[s.SkillID]; dup {
			return EvaluationWithSkills{}, ErrDuplicateSkill
		}
		seen[s.SkillID] = struct{}{}
	}

	usr, err := u.users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return EvaluationWithSkills{}, ErrUserNotFound
		}
		return EvaluationWithSkills{}, ErrInternal
	}
	if _, err := u.campaigns.GetByID(ctx, in.CampaignID); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return EvaluationWithSkills{}, ErrCampaignNotFound
		}
		return EvaluationWithSkills{}, ErrInternal
	}

	skillsByID := make(map[oid.ID]repository.Skill, len(in.Skills))
	typeByMacro := make(map[oid.ID]oid.ID)
	for _, s := range in.Skills {
		sk, err := u.skills.GetSkill(ctx, s.SkillID)
		if err != nil {
			if errors.Is(err, repository.ErrSkillNotFound) {
				return EvaluationWithSkills{}, ErrSkillNotFound
			}
			return EvaluationWithSkills{}, ErrInternal
		}
		skillsByID[s.SkillID] = sk

		if _, ok := typeByMacro[sk.MacroSkillID]; !ok {
			macro, err := u.skills.GetMacroSkill(ctx, sk.MacroSkillID)
			if err != nil {
				if errors.Is(err, repository.ErrMacroSkillNotFound) {
					return EvaluationWithSkills{}, ErrMacroSkillNotFound
				}
				return EvaluationWithSkills{}, ErrInternal
			}
			typeByMacro[sk.MacroSkillID] = macro.MacroSkillTypeID
		}
	}

	now := u.now().UTC()
	eval := repository.Evaluation{
		ID:                   oid.New(),
		UserID:               usr.ID,
		ManagerUserID:        in.ManagerUserID,
		UserJobID:            in.UserJobID,
		UserJobCode:          in.UserJobCode,
		EvaluationCampaignID: in.CampaignID,
		CreatedBy:            in.CreatedBy,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	rows := make([]repository.EvaluationSkill, 0, len(in.Skills))
	for _, s := range in.Skills {
		sk := skillsByID[s.SkillID]
		rows = append(rows, repository.EvaluationSkill{
			ID:                   oid.New(),
			EvaluationID:         eval.ID,
			EvaluationCampaignID: in.CampaignID,
			SkillID:              sk.ID,
			MacroSkillID:         sk.MacroSkillID,
			MacroSkillTypeID:     typeByMacro[sk.MacroSkillID],
			ObservedLevel:        s.ObservedLevel,
			CreatedAt:            now,
		})
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return EvaluationWithSkills{}, ErrInternal
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	txEvals := u.evaluations.WithTx(tx)
	txLevels := u.skillLevels.WithTx(tx)

	if err := txEvals.Create(ctx, eval); err != nil {
		return EvaluationWithSkills{}, ErrInternal
	}
	if err := txEvals.CreateSkills(ctx, rows); err != nil {
		return EvaluationWithSkills{}, ErrInternal
	}

	for _, s := range in.Skills {
		prior, found, err := txEvals.FindPriorObservation(ctx, usr.ID, s.SkillID, eval.ID, in.CampaignID)
		if err != nil {
			return EvaluationWithSkills{}, ErrInternal
		}

		var tracked *float64
		sl, err := txLevels.Get(ctx, usr.ID, s.SkillID)
		switch {
		case err == nil:
			tracked = sl.Level
		case errors.Is(err, repository.ErrSkillLevelNotFound):
		default:
			return EvaluationWithSkills{}, ErrInternal
		}

		mergeIn := evaluation.MergeInput{
			ObservedLevel: float64(s.ObservedLevel),
			TrackedLevel:  tracked,
		}
		if found {
			mergeIn.Prior = &evaluation.PriorObservation{
				ObservedLevel: prior.ObservedLevel,
				SameCampaign:  prior.SameCampaign,
			}
		}

		merged := evaluation.MergeLevel(mergeIn)
		if err := txLevels.Upsert(ctx, usr.ID, s.SkillID, merged, now); err != nil {
			return EvaluationWithSkills{}, ErrInternal
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return EvaluationWithSkills{}, ErrInternal
	}

	u.invalidateReports(ctx, usr, in.ManagerUserID, skillsByID)

	enriched, err := u.evaluations.ListSkills(ctx, eval.ID)
	if err != nil {
		return EvaluationWithSkills{}, ErrInternal
	}
	return EvaluationWithSkills{Evaluation: eval, Skills: enriched}, nil
}

func (u *Evaluation) GetWithSkills(ctx context.Context, id oid.ID) (EvaluationWithSkills, error) {
	eval, err := u.evaluations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEvaluationNotFound) {
			return EvaluationWithSkills{}, ErrEvaluationNotFound
		}
		return EvaluationWithSkills{}, ErrInternal
	}

	skills, err := u.evaluations.ListSkills(ctx, id)
	if err != nil {
		return EvaluationWithSkills{}, ErrInternal
	}
	return EvaluationWithSkills{Evaluation: eval, Skills: skills}, nil
}

func (u *Evaluation) List(ctx context.Context) ([]repository.Evaluation, error) {
	evals, err := u.evaluations.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return evals, nil
}

func (u *Evaluation) ListByUser(ctx context.Context, userID oid.ID) ([]repository.Evaluation, error) {
	evals, err := u.evaluations.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return evals, nil
}

// Delete removes the evaluation and its observations. Tracked levels are left
// as they are; history already folded into them stays folded.
func (u *Evaluation) Delete(ctx context.Context, id oid.ID) error {
	if err := u.evaluations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEvaluationNotFound) {
			return ErrEvaluationNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Evaluation) ListSkillLevels(ctx context.Context, userID oid.ID) ([]repository.SkillLevel, error) {
	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	levels, err := u.skillLevels.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return levels, nil
}

// invalidateReports drops the cached reports a fresh evaluation can change.
// Cache failures are ignored; readers fall back to the database.
func (u *Evaluation) invalidateReports(ctx context.Context, usr repository.User, evalManager *oid.ID, skills map[oid.ID]repository.Skill) {
	if u.cache == nil {
		return
	}

	keys := make([]string, 0, len(skills)+len(usr.ManagerUserIDs)+1)
	seenJobs := make(map[oid.ID]struct{}, len(skills))
	for _, sk := range skills {
		if _, ok := seenJobs[sk.JobID]; ok {
			continue
		}
		seenJobs[sk.JobID] = struct{}{}
		keys = append(keys, distributionCacheKey(sk.JobID))
	}
	seenManagers := make(map[oid.ID]struct{}, len(usr.ManagerUserIDs)+1)
	for _, mid := range usr.ManagerUserIDs {
		seenManagers[mid] = struct{}{}
		keys = append(keys, teamStatsCacheKey(mid))
	}
	if evalManager != nil {
		if _, ok := seenManagers[*evalManager]; !ok {
			keys = append(keys, teamStatsCacheKey(*evalManager))
		}
	}
	if len(keys) > 0 {
		_ = u.cache.Delete(ctx, keys...)
	}
}
