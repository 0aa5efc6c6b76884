package dto

import (
	"time"

	"skillboard/internal/repository"
	"skillboard/internal/usecase"
)

type EvaluationResponse struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	ManagerUserID        *string   `json:"managerUserId"`
	UserJobID            *string   `json:"userJobId"`
	UserJobCode          *string   `json:"userJobCode"`
	EvaluationCampaignID string    `json:"evaluationCampaignId"`
	CreatedBy            string    `json:"createdBy"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type EvaluationSkillResponse struct {
	ID                 string `json:"id"`
	SkillID            string `json:"skillId"`
	SkillName          string `json:"skillName"`
	MacroSkillID       string `json:"macroSkillId"`
	MacroSkillName     string `json:"macroSkillName"`
	MacroSkillTypeID   string `json:"macroSkillTypeId"`
	MacroSkillTypeName string `json:"macroSkillTypeName"`
	ObservedLevel      int    `json:"observedLevel"`
}

type EvaluationWithSkillsResponse struct {
	EvaluationResponse
	Skills []EvaluationSkillResponse `json:"skills"`
}

func NewEvaluationResponse(e repository.Evaluation) EvaluationResponse {
	res := EvaluationResponse{
		ID:                   e.ID.String(),
		UserID:               e.UserID.String(),
		UserJobCode:          e.UserJobCode,
		EvaluationCampaignID: e.EvaluationCampaignID.String(),
		CreatedBy:            e.CreatedBy.String(),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
	if e.ManagerUserID != nil {
		s := e.ManagerUserID.String()
		res.ManagerUserID = &s
	}
	if e.UserJobID != nil {
		s := e.UserJobID.String()
		res.UserJobID = &s
	}
	return res
}

func NewEvaluationResponses(evals []repository.Evaluation) []EvaluationResponse {
	out := make([]EvaluationResponse, 0, len(evals))
	for _, e := range evals {
		out = append(out, NewEvaluationResponse(e))
	}
	return out
}

func NewEvaluationWithSkillsResponse(e usecase.EvaluationWithSkills) EvaluationWithSkillsResponse {
	skills := make([]EvaluationSkillResponse, 0, len(e.Skills))
	for _, s := range e.Skills {
		skills = append(skills, EvaluationSkillResponse{
			ID:                 s.ID.String(),
			SkillID:            s.SkillID.String(),
			SkillName:          s.SkillName,
			MacroSkillID:       s.MacroSkillID.String(),
			MacroSkillName:     s.MacroSkillName,
			MacroSkillTypeID:   s.MacroSkillTypeID.String(),
			MacroSkillTypeName: s.MacroSkillTypeName,
			ObservedLevel:      s.ObservedLevel,
		})
	}
	return EvaluationWithSkillsResponse{
		EvaluationResponse: NewEvaluationResponse(e.Evaluation),
		Skills:             skills,
	}
}

type SkillLevelResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SkillID   string    `json:"skillId"`
	Level     *float64  `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSkillLevelResponses(levels []repository.SkillLevel) []SkillLevelResponse {
	out := make([]SkillLevelResponse, 0, len(levels))
	for _, sl := range levels {
		out = append(out, SkillLevelResponse{
			ID:        sl.ID.String(),
			UserID:    sl.UserID.String(),
			SkillID:   sl.SkillID.String(),
			Level:     sl.Level,
			CreatedAt: sl.CreatedAt,
			UpdatedAt: sl.UpdatedAt,
		})
	}
	return out
}
