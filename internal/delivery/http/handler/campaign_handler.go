package handler

import (
	"errors"
	"time"

	"skillboard/internal/delivery/http/dto"
	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/response"
	"skillboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CampaignHandler struct {
	campaigns usecase.CampaignUsecase
}

type campaignRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func NewCampaignHandler(campaigns usecase.CampaignUsecase) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

func (h *CampaignHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/current", h.GetCurrent)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *CampaignHandler) List(c fiber.Ctx) error {
	campaigns, err := h.campaigns.List(c.Context())
	if err != nil {
		return mapCampaignUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewCampaignResponses(campaigns))
}

func (h *CampaignHandler) GetCurrent(c fiber.Ctx) error {
	campaign, err := h.campaigns.GetCurrent(c.Context())
	if err != nil {
		return mapCampaignUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewCampaignResponse(campaign))
}

func (h *CampaignHandler) Get(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid campaign id", nil, err)
	}

	campaign, err := h.campaigns.GetByID(c.Context(), id)
	if err != nil {
		return mapCampaignUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewCampaignResponse(campaign))
}

func (h *CampaignHandler) Create(c fiber.Ctx) error {
	var req campaignRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	campaign, err := h.campaigns.Create(c.Context(), usecase.CampaignInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return mapCampaignUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCampaignResponse(campaign))
}

func (h *CampaignHandler) Update(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid campaign id", nil, err)
	}

	var req campaignRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	campaign, err := h.campaigns.Update(c.Context(), id, usecase.CampaignInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return mapCampaignUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewCampaignResponse(campaign))
}

func (h *CampaignHandler) Delete(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid campaign id", nil, err)
	}

	if err := h.campaigns.Delete(c.Context(), id); err != nil {
		return mapCampaignUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapCampaignUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCampaignNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Campaign not found", nil, err)
	case errors.Is(err, usecase.ErrNoCurrentCampaign):
		return middleware.NewAppError(fiber.StatusNotFound, "No campaign is currently open", nil, err)
	case errors.Is(err, usecase.ErrInvalidCampaignDates):
		return middleware.NewAppError(fiber.StatusBadRequest, "End date precedes start date", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
