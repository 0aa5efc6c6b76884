package dto

import (
	"time"

	"skillboard/internal/pkg/oid"
	"skillboard/internal/repository"
)

type UserResponse struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Code           string   `json:"code"`
	JobID          *string  `json:"jobId"`
	ManagerUserIDs []string `json:"managerUserIds"`
	Roles          []string `json:"roles"`

	Gender    *string    `json:"gender"`
	BirthDate *time.Time `json:"birthDate"`
	HiredAt   *time.Time `json:"hiredAt"`
	// Age and Seniority are derived from birthDate and hiredAt at read time.
	Age       *int `json:"age"`
	Seniority *int `json:"seniority"`

	CompanyCode       string `json:"companyCode"`
	CompanyName       string `json:"companyName"`
	EstablishmentCode string `json:"establishmentCode"`
	EstablishmentName string `json:"establishmentName"`

	InvitedAt *time.Time `json:"invitedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func NewUserResponse(u repository.User) UserResponse {
	now := time.Now().UTC()
	res := UserResponse{
		ID:                u.ID.String(),
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Code:              u.Code,
		ManagerUserIDs:    oid.Strings(u.ManagerUserIDs),
		Roles:             u.Roles,
		Gender:            u.Gender,
		BirthDate:         u.BirthDate,
		HiredAt:           u.HiredAt,
		Age:               yearsSince(u.BirthDate, now),
		Seniority:         yearsSince(u.HiredAt, now),
		CompanyCode:       u.CompanyCode,
		CompanyName:       u.CompanyName,
		EstablishmentCode: u.EstablishmentCode,
		EstablishmentName: u.EstablishmentName,
		InvitedAt:         u.InvitedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
	if res.ManagerUserIDs == nil {
		res.ManagerUserIDs = []string{}
	}
	if res.Roles == nil {
		res.Roles = []string{}
	}
	if u.JobID != nil {
		s := u.JobID.String()
		res.JobID = &s
	}
	return res
}

func NewUserResponses(users []repository.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

func yearsSince(t *time.Time, now time.Time) *int {
	if t == nil || t.After(now) {
		return nil
	}
	years := now.Year() - t.Year()
	anniversary := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return nil
	}
	return &years
}
