package dto

import (
	"time"

	"skillboard/internal/repository"
)

type CampaignResponse struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCampaignResponse(c repository.EvaluationCampaign) CampaignResponse {
	return CampaignResponse{
		ID:        c.ID.String(),
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCampaignResponses(campaigns []repository.EvaluationCampaign) []CampaignResponse {
	out := make([]CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, NewCampaignResponse(c))
	}
	return out
}
