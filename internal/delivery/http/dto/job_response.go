package dto

import (
	"time"

	"skillboard/internal/repository"
)

type JobResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	JobProfile string    `json:"jobProfile"`
	JobFamily  *string   `json:"jobFamily"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewJobResponse(j repository.Job) JobResponse {
	return JobResponse{
		ID:         j.ID.String(),
		Name:       j.Name,
		Code:       j.Code,
		JobProfile: j.JobProfile,
		JobFamily:  j.JobFamily,
		CreatedAt:  j.CreatedAt,
	}
}

func NewJobResponses(jobs []repository.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}

// JobSkillResponse is one job-owned skill with its full taxonomy path.
type JobSkillResponse struct {
	SkillID            string `json:"skillId"`
	SkillName          string `json:"skillName"`
	MacroSkillID       string `json:"macroSkillId"`
	MacroSkillName     string `json:"macroSkillName"`
	MacroSkillTypeID   string `json:"macroSkillTypeId"`
	MacroSkillTypeName string `json:"macroSkillTypeName"`
	ExpectedLevel      int    `json:"expectedLevel"`
}

func NewJobSkillResponses(rows []repository.JobSkillRow) []JobSkillResponse {
	out := make([]JobSkillResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, JobSkillResponse{
			SkillID:            r.SkillID.String(),
			SkillName:          r.SkillName,
			MacroSkillID:       r.MacroSkillID.String(),
			MacroSkillName:     r.MacroSkillName,
			MacroSkillTypeID:   r.MacroSkillTypeID.String(),
			MacroSkillTypeName: r.MacroSkillTypeName,
			ExpectedLevel:      r.ExpectedLevel,
		})
	}
	return out
}
