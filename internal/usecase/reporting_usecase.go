package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillboard/internal/domain/reporting"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

type SkillDistribution struct {
	SkillID            oid.ID                      `json:"skillId"`
	SkillName          string                      `json:"skillName"`
	MacroSkillName     string                      `json:"macroSkillName"`
	MacroSkillTypeName string                      `json:"macroSkillTypeName"`
	ExpectedLevel      int                         `json:"expectedLevel"`
	LevelDistribution  reporting.LevelDistribution `json:"levelDistribution"`
}

type CampaignSummary struct {
	ID        oid.ID    `json:"_id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type TeamStats struct {
	ManagerID          oid.ID                       `json:"managerId"`
	ManagerName        string                       `json:"managerName"`
	TeamSize           int                          `json:"teamSize"`
	CurrentCampaign    *CampaignSummary             `json:"currentCampaign"`
	KeySkillsMastery   reporting.KeySkillsMastery   `json:"keySkillsMastery"`
	EvaluationProgress reporting.EvaluationProgress `json:"evaluationProgress"`
}

type ReportingUsecase interface {
	SkillsDistribution(ctx context.Context, jobID oid.ID) ([]SkillDistribution, error)
	TeamStats(ctx context.Context, managerID oid.ID) (TeamStats, error)
}

type Reporting struct {
	users       repository.UserRepository
	jobs        repository.JobRepository
	skillLevels repository.SkillLevelRepository
	evaluations repository.EvaluationRepository
	campaigns   repository.CampaignRepository
	cache       ReportCache
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewReportingUsecase(
	users repository.UserRepository,
	jobs repository.JobRepository,
	skillLevels repository.SkillLevelRepository,
	evaluations repository.EvaluationRepository,
	campaigns repository.CampaignRepository,
	cache ReportCache,
	cacheTTL time.Duration,
) *Reporting {
	return &Reporting{
		users:       users,
		jobs:        jobs,
		skillLevels: skillLevels,
		evaluations: evaluations,
		campaigns:   campaigns,
		cache:       cache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// SkillsDistribution returns one 0..4 histogram per skill of the job, counting
// tracked levels across every user holding one.
func (u *Reporting) SkillsDistribution(ctx context.Context, jobID oid.ID) ([]SkillDistribution, error) {
	key := distributionCacheKey(jobID)
	if u.cache != nil {
		var cached []SkillDistribution
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	skills, err := u.jobs.ListSkills(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillDistribution, 0, len(skills))
	for _, sk := range skills {
		levels, err := u.skillLevels.ListLevelsBySkill(ctx, sk.SkillID)
		if err != nil {
			return nil, ErrInternal
		}
		out = append(out, SkillDistribution{
			SkillID:            sk.SkillID,
			SkillName:          sk.SkillName,
			MacroSkillName:     sk.MacroSkillName,
			MacroSkillTypeName: sk.MacroSkillTypeName,
			ExpectedLevel:      sk.ExpectedLevel,
			LevelDistribution:  reporting.BucketLevels(levels),
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, u.cacheTTL)
	}
	return out, nil
}

// TeamStats aggregates the manager's direct reports: key-skill mastery over
// the union of their jobs' skills, and evaluation progress within the current
// campaign.
func (u *Reporting) TeamStats(ctx context.Context, managerID oid.ID) (TeamStats, error) {
	key := teamStatsCacheKey(managerID)
	if u.cache != nil {
		var cached TeamStats
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	manager, err := u.users.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TeamStats{}, ErrManagerNotFound
		}
		return TeamStats{}, ErrInternal
	}

	team, err := u.users.ListTeamMembers(ctx, managerID)
	if err != nil {
		return TeamStats{}, ErrInternal
	}

	memberIDs := make([]oid.ID, 0, len(team))
	jobIDs := make([]oid.ID, 0, len(team))
	seenJobs := make(map[oid.ID]struct{}, len(team))
	for _, m := range team {
		memberIDs = append(memberIDs, m.ID)
		if m.JobID == nil {
			continue
		}
		if _, ok := seenJobs[*m.JobID]; ok {
			continue
		}
		seenJobs[*m.JobID] = struct{}{}
		jobIDs = append(jobIDs, *m.JobID)
	}

	skillsByJob, err := u.jobs.ListSkillsForJobs(ctx, jobIDs)
	if err != nil {
		return TeamStats{}, ErrInternal
	}
	levelsByUser, err := u.skillLevels.ListByUsers(ctx, memberIDs)
	if err != nil {
		return TeamStats{}, ErrInternal
	}

	members := make([]reporting.MemberSnapshot, 0, len(team))
	for _, m := range team {
		snap := reporting.MemberSnapshot{
			UserID:        m.ID,
			TrackedLevels: make(map[oid.ID]float64),
		}
		if m.JobID != nil {
			for _, sk := range skillsByJob[*m.JobID] {
				snap.JobSkills = append(snap.JobSkills, reporting.JobSkill{
					SkillID:       sk.SkillID,
					ExpectedLevel: sk.ExpectedLevel,
				})
			}
		}
		for _, sl := range levelsByUser[m.ID] {
			if sl.Level == nil {
				continue
			}
			snap.TrackedLevels[sl.SkillID] = *sl.Level
		}
		members = append(members, snap)
	}

	evaluated := make(map[oid.ID]struct{})
	var current *CampaignSummary
	campaign, err := u.campaigns.FindCurrent(ctx, u.now().UTC())
	switch {
	case err == nil:
		current = &CampaignSummary{
			ID:        campaign.ID,
			StartDate: campaign.StartDate,
			EndDate:   campaign.EndDate,
		}
		evaluated, err = u.evaluations.ListEvaluatedUserIDsInCampaign(ctx, campaign.ID, memberIDs)
		if err != nil {
			return TeamStats{}, ErrInternal
		}
	case errors.Is(err, repository.ErrCampaignNotFound):
	default:
		return TeamStats{}, ErrInternal
	}

	stats := TeamStats{
		ManagerID:          manager.ID,
		ManagerName:        strings.TrimSpace(manager.FirstName + " " + manager.LastName),
		TeamSize:           len(team),
		CurrentCampaign:    current,
		KeySkillsMastery:   reporting.ComputeKeySkillsMastery(members),
		EvaluationProgress: reporting.ComputeEvaluationProgress(len(team), evaluated),
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, stats, u.cacheTTL)
	}
	return stats, nil
}
