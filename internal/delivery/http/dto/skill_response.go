package dto

import (
	"time"

	"skillboard/internal/repository"
)

type MacroSkillTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMacroSkillTypeResponse(t repository.MacroSkillType) MacroSkillTypeResponse {
	return MacroSkillTypeResponse{ID: t.ID.String(), Name: t.Name, CreatedAt: t.CreatedAt}
}

func NewMacroSkillTypeResponses(types []repository.MacroSkillType) []MacroSkillTypeResponse {
	out := make([]MacroSkillTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, NewMacroSkillTypeResponse(t))
	}
	return out
}

type MacroSkillResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	MacroSkillTypeID string    `json:"macroSkillTypeId"`
	JobID            string    `json:"jobId"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewMacroSkillResponse(m repository.MacroSkill) MacroSkillResponse {
	return MacroSkillResponse{
		ID:               m.ID.String(),
		Name:             m.Name,
		MacroSkillTypeID: m.MacroSkillTypeID.String(),
		JobID:            m.JobID.String(),
		CreatedAt:        m.CreatedAt,
	}
}

func NewMacroSkillResponses(macros []repository.MacroSkill) []MacroSkillResponse {
	out := make([]MacroSkillResponse, 0, len(macros))
	for _, m := range macros {
		out = append(out, NewMacroSkillResponse(m))
	}
	return out
}

type SkillResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MacroSkillID  string    `json:"macroSkillId"`
	JobID         string    `json:"jobId"`
	ExpectedLevel int       `json:"expectedLevel"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewSkillResponse(s repository.Skill) SkillResponse {
	return SkillResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		MacroSkillID:  s.MacroSkillID.String(),
		JobID:         s.JobID.String(),
		ExpectedLevel: s.ExpectedLevel,
		CreatedAt:     s.CreatedAt,
	}
}

func NewSkillResponses(skills []repository.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, NewSkillResponse(s))
	}
	return out
}
