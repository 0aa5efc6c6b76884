package handler

import (
	"encoding/json"
	"testing"

	"skillboard/internal/pkg/oid"
)

func TestCreateCompleteEvaluationRequest_Unmarshal(t *testing.T) {
	userID := oid.New()
	managerID := oid.New()
	campaignID := oid.New()
	jobID := oid.New()
	skillID := oid.New()

	body := `{
		"evaluation": {
			"userId": "` + userID.String() + `",
			"managerUserId": "` + managerID.String() + `",
			"evaluationCampaignId": "` + campaignID.String() + `",
			"userJobId": "` + jobID.String() + `",
			"userJobCode": "WLD-01"
		},
		"skills": [{"skillId": "` + skillID.String() + `", "observedLevel": 3}]
	}`

	var req createCompleteEvaluationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if req.Evaluation.UserID != userID.String() {
		t.Fatalf("expected user id %s, got %q", userID, req.Evaluation.UserID)
	}
	if req.Evaluation.CampaignID != campaignID.String() {
		t.Fatalf("expected campaign id %s, got %q", campaignID, req.Evaluation.CampaignID)
	}
	if req.Evaluation.ManagerUserID == nil || *req.Evaluation.ManagerUserID != managerID.String() {
		t.Fatalf("expected manager id %s, got %v", managerID, req.Evaluation.ManagerUserID)
	}
	if req.Evaluation.UserJobID == nil || *req.Evaluation.UserJobID != jobID.String() {
		t.Fatalf("expected job id %s, got %v", jobID, req.Evaluation.UserJobID)
	}
	if req.Evaluation.UserJobCode == nil || *req.Evaluation.UserJobCode != "WLD-01" {
		t.Fatalf("expected job code WLD-01, got %v", req.Evaluation.UserJobCode)
	}
	if len(req.Skills) != 1 || req.Skills[0].SkillID != skillID.String() || req.Skills[0].ObservedLevel != 3 {
		t.Fatalf("unexpected skills: %+v", req.Skills)
	}
}

func TestCreateCompleteEvaluationRequest_OptionalFieldsAbsent(t *testing.T) {
	body := `{"evaluation": {"userId": "` + oid.New().String() + `", "evaluationCampaignId": "` + oid.New().String() + `"}, "skills": []}`

	var req createCompleteEvaluationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Evaluation.ManagerUserID != nil || req.Evaluation.UserJobID != nil || req.Evaluation.UserJobCode != nil {
		t.Fatalf("expected absent optional fields to stay nil: %+v", req.Evaluation)
	}
}

func TestOptionalID(t *testing.T) {
	id, err := optionalID(nil)
	if err != nil || id != nil {
		t.Fatalf("expected nil for missing value, got %v %v", id, err)
	}

	empty := ""
	id, err = optionalID(&empty)
	if err != nil || id != nil {
		t.Fatalf("expected nil for empty value, got %v %v", id, err)
	}

	want := oid.New()
	raw := want.String()
	id, err = optionalID(&raw)
	if err != nil || id == nil || *id != want {
		t.Fatalf("expected %v, got %v %v", want, id, err)
	}

	bad := "not-an-id"
	if _, err := optionalID(&bad); err == nil {
		t.Fatal("expected error for malformed id")
	}
}

func TestZipSkillRequirements(t *testing.T) {
	a := oid.New()
	b := oid.New()

	reqs, err := zipSkillRequirements([]string{a.String(), b.String()}, []string{"3", "2"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].SkillID != a || reqs[0].MinLevel != 3 {
		t.Fatalf("unexpected first requirement: %+v", reqs[0])
	}
	if reqs[1].SkillID != b || reqs[1].MinLevel != 2 {
		t.Fatalf("unexpected second requirement: %+v", reqs[1])
	}
}

func TestZipSkillRequirements_LengthMismatch(t *testing.T) {
	if _, err := zipSkillRequirements([]string{oid.New().String()}, []string{"3", "2"}); err == nil {
		t.Fatal("expected error for mismatched arrays")
	}
}

func TestZipSkillRequirements_BadLevel(t *testing.T) {
	if _, err := zipSkillRequirements([]string{oid.New().String()}, []string{"high"}); err == nil {
		t.Fatal("expected error for non-numeric level")
	}
}

func TestParseSkillRequirements_CompactForm(t *testing.T) {
	a := oid.New()
	b := oid.New()

	reqs, err := parseSkillRequirements(a.String() + ":3," + b.String() + ":1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(reqs) != 2 || reqs[0].SkillID != a || reqs[0].MinLevel != 3 || reqs[1].SkillID != b || reqs[1].MinLevel != 1 {
		t.Fatalf("unexpected requirements: %+v", reqs)
	}
}
