package dto

import (
	"time"

	"skillboard/internal/repository"
)

type HabilitationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	JobID          string    `json:"jobId"`
	Type           string    `json:"type"`
	Code           string    `json:"code"`
	Label          string    `json:"label"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	PayrollSection string    `json:"payrollSection"`
	Establishment  string    `json:"establishment"`
	Profession     string    `json:"profession"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewHabilitationResponse(h repository.Habilitation) HabilitationResponse {
	return HabilitationResponse{
		ID:             h.ID.String(),
		UserID:         h.UserID.String(),
		JobID:          h.JobID.String(),
		Type:           h.Type,
		Code:           h.Code,
		Label:          h.Label,
		StartDate:      h.StartDate,
		EndDate:        h.EndDate,
		PayrollSection: h.PayrollSection,
		Establishment:  h.Establishment,
		Profession:     h.Profession,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func NewHabilitationResponses(items []repository.Habilitation) []HabilitationResponse {
	out := make([]HabilitationResponse, 0, len(items))
	for _, h := range items {
		out = append(out, NewHabilitationResponse(h))
	}
	return out
}
