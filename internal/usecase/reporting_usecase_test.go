package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

type mockJobRepo struct {
	jobs        map[oid.ID]repository.Job
	skills      map[oid.ID][]repository.JobSkillRow
	searchItems []repository.Job
	takenCodes  map[string]bool
}

func (m *mockJobRepo) GetByID(_ context.Context, id oid.ID) (repository.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}
func (m *mockJobRepo) ExistsByID(_ context.Context, id oid.ID) (bool, error) {
	_, ok := m.jobs[id]
	return ok, nil
}
func (m *mockJobRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	return m.takenCodes[code], nil
}
func (m *mockJobRepo) List(context.Context) ([]repository.Job, error) {
	out := make([]repository.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	return out, nil
}
func (m *mockJobRepo) Search(context.Context, string) ([]repository.Job, error) {
	return m.searchItems, nil
}
func (m *mockJobRepo) Create(context.Context, repository.Job) error { return nil }
func (m *mockJobRepo) Update(context.Context, repository.Job) error { return nil }
func (m *mockJobRepo) Delete(context.Context, oid.ID) error         { return nil }
func (m *mockJobRepo) ListSkills(_ context.Context, jobID oid.ID) ([]repository.JobSkillRow, error) {
	return m.skills[jobID], nil
}
func (m *mockJobRepo) ListSkillsForJobs(_ context.Context, jobIDs []oid.ID) (map[oid.ID][]repository.JobSkillRow, error) {
	out := make(map[oid.ID][]repository.JobSkillRow, len(jobIDs))
	for _, id := range jobIDs {
		if rows, ok := m.skills[id]; ok {
			out[id] = rows
		}
	}
	return out, nil
}

type mockReportCache struct {
	entries map[string][]byte
	sets    int
}

func (m *mockReportCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mockReportCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *mockReportCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func ptrLevel(v float64) *float64 { return &v }

func TestReportingSkillsDistribution(t *testing.T) {
	jobID := oid.New()
	skillID := oid.New()

	jobs := &mockJobRepo{
		jobs: map[oid.ID]repository.Job{jobID: {ID: jobID, Name: "Welder"}},
		skills: map[oid.ID][]repository.JobSkillRow{
			jobID: {{
				SkillID:            skillID,
				SkillName:          "TIG welding",
				MacroSkillName:     "Welding",
				MacroSkillTypeName: "Technical",
				ExpectedLevel:      3,
			}},
		},
	}
	levels := &mockSkillLevelStore{bySkill: map[oid.ID][]*float64{
		skillID: {ptrLevel(2), ptrLevel(2), ptrLevel(4), ptrLevel(2.5), nil},
	}}
	cache := &mockReportCache{}

	u := NewReportingUsecase(&mockUserRepo{}, jobs, levels, &mockEvaluationStore{}, &mockCampaignRepo{}, cache, time.Minute)

	out, err := u.SkillsDistribution(context.Background(), jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(out))
	}
	dist := out[0].LevelDistribution
	if dist[2] != 2 || dist[4] != 1 || dist[0] != 0 {
		t.Fatalf("unexpected distribution: %v", dist)
	}
	if out[0].MacroSkillName != "Welding" || out[0].MacroSkillTypeName != "Technical" {
		t.Fatalf("unexpected macro fields: %+v", out[0])
	}
	if cache.sets != 1 {
		t.Fatalf("expected result cached once, got %d sets", cache.sets)
	}

	raw, err := json.Marshal(out[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, want := range []string{"skillId", "skillName", "macroSkillName", "macroSkillTypeName", "expectedLevel", "levelDistribution"} {
		if _, ok := keys[want]; !ok {
			t.Fatalf("missing %q in payload %s", want, raw)
		}
	}
}

func TestReportingSkillsDistribution_CacheHitSkipsRepos(t *testing.T) {
	jobID := oid.New()
	cached, _ := json.Marshal([]SkillDistribution{{SkillName: "cached"}})
	cache := &mockReportCache{entries: map[string][]byte{
		distributionCacheKey(jobID): cached,
	}}

	// The job repo knows nothing about the job. A cache hit must not touch it.
	u := NewReportingUsecase(&mockUserRepo{}, &mockJobRepo{}, &mockSkillLevelStore{}, &mockEvaluationStore{}, &mockCampaignRepo{}, cache, time.Minute)

	out, err := u.SkillsDistribution(context.Background(), jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].SkillName != "cached" {
		t.Fatalf("expected cached payload, got %+v", out)
	}
}

func TestReportingSkillsDistribution_JobNotFound(t *testing.T) {
	u := NewReportingUsecase(&mockUserRepo{}, &mockJobRepo{}, &mockSkillLevelStore{}, &mockEvaluationStore{}, &mockCampaignRepo{}, nil, time.Minute)

	_, err := u.SkillsDistribution(context.Background(), oid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestReportingTeamStats(t *testing.T) {
	managerID := oid.New()
	jobID := oid.New()
	skillA := oid.New()
	skillB := oid.New()
	alice := oid.New()
	bob := oid.New()

	users := &mockUserRepo{
		users: map[oid.ID]repository.User{
			managerID: {ID: managerID, FirstName: "Marie", LastName: "Dupont"},
		},
		team: []repository.User{
			{ID: alice, JobID: &jobID},
			{ID: bob, JobID: &jobID},
		},
	}
	jobs := &mockJobRepo{skills: map[oid.ID][]repository.JobSkillRow{
		jobID: {
			{SkillID: skillA, ExpectedLevel: 3},
			{SkillID: skillB, ExpectedLevel: 2},
		},
	}}
	levels := &mockSkillLevelStore{byUsers: map[oid.ID][]repository.SkillLevel{
		alice: {
			{UserID: alice, SkillID: skillA, Level: ptrLevel(3)},
			{UserID: alice, SkillID: skillB, Level: ptrLevel(1)},
		},
		bob: {
			{UserID: bob, SkillID: skillB, Level: ptrLevel(1)},
		},
	}}
	campaignStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	campaignEnd := campaignStart.AddDate(0, 3, 0)
	campaigns := &mockCampaignRepo{current: &repository.EvaluationCampaign{
		ID:        oid.New(),
		StartDate: campaignStart,
		EndDate:   campaignEnd,
	}}
	evals := &mockEvaluationStore{evaluated: map[oid.ID]struct{}{alice: {}}}

	u := NewReportingUsecase(users, jobs, levels, evals, campaigns, nil, time.Minute)

	stats, err := u.TeamStats(context.Background(), managerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.TeamSize != 2 {
		t.Fatalf("expected team size 2, got %d", stats.TeamSize)
	}
	if stats.ManagerID != managerID {
		t.Fatalf("expected manager id %v, got %v", managerID, stats.ManagerID)
	}
	if stats.ManagerName != "Marie Dupont" {
		t.Fatalf("unexpected manager name %q", stats.ManagerName)
	}
	if stats.CurrentCampaign == nil {
		t.Fatal("expected current campaign")
	}
	if stats.CurrentCampaign.ID != campaigns.current.ID || !stats.CurrentCampaign.StartDate.Equal(campaignStart) || !stats.CurrentCampaign.EndDate.Equal(campaignEnd) {
		t.Fatalf("unexpected campaign summary: %+v", stats.CurrentCampaign)
	}
	// skillA mastered by alice, skillB evaluated but below expectations for everyone.
	if stats.KeySkillsMastery.MasteredSkillsCount != 1 || stats.KeySkillsMastery.TotalEvaluatedSkillsCount != 2 {
		t.Fatalf("unexpected mastery: %+v", stats.KeySkillsMastery)
	}
	if stats.KeySkillsMastery.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", stats.KeySkillsMastery.Percentage)
	}
	if stats.EvaluationProgress.EvaluatedMembersCount != 1 || stats.EvaluationProgress.TotalMembersCount != 2 {
		t.Fatalf("unexpected progress: %+v", stats.EvaluationProgress)
	}
}

func TestReportingTeamStats_NoCurrentCampaign(t *testing.T) {
	managerID := oid.New()
	users := &mockUserRepo{
		users: map[oid.ID]repository.User{managerID: {ID: managerID}},
		team:  []repository.User{{ID: oid.New()}},
	}

	u := NewReportingUsecase(users, &mockJobRepo{}, &mockSkillLevelStore{}, &mockEvaluationStore{}, &mockCampaignRepo{}, nil, time.Minute)

	stats, err := u.TeamStats(context.Background(), managerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.EvaluationProgress.EvaluatedMembersCount != 0 || stats.EvaluationProgress.Percentage != 0 {
		t.Fatalf("expected zero progress without a campaign, got %+v", stats.EvaluationProgress)
	}
	if stats.CurrentCampaign != nil {
		t.Fatalf("expected nil current campaign, got %+v", stats.CurrentCampaign)
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, want := range []string{"managerId", "managerName", "teamSize", "currentCampaign", "keySkillsMastery", "evaluationProgress"} {
		if _, ok := keys[want]; !ok {
			t.Fatalf("missing %q in payload %s", want, raw)
		}
	}
}

func TestReportingTeamStats_ManagerNotFound(t *testing.T) {
	u := NewReportingUsecase(&mockUserRepo{}, &mockJobRepo{}, &mockSkillLevelStore{}, &mockEvaluationStore{}, &mockCampaignRepo{}, nil, time.Minute)

	_, err := u.TeamStats(context.Background(), oid.New())
	if !errors.Is(err, ErrManagerNotFound) {
		t.Fatalf("expected ErrManagerNotFound, got %v", err)
	}
}
