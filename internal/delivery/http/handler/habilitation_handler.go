package handler

import (
	"errors"
	"strings"
	"time"

	"skillboard/internal/delivery/http/dto"
	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/pagination"
	"skillboard/internal/pkg/response"
	"skillboard/internal/repository"
	"skillboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HabilitationHandler struct {
	habilitations usecase.HabilitationUsecase
}

type habilitationRequest struct {
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
}

func NewHabilitationHandler(habilitations usecase.HabilitationUsecase) *HabilitationHandler {
	return &HabilitationHandler{habilitations: habilitations}
}

func (h *HabilitationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Search)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *HabilitationHandler) Search(c fiber.Ctx) error {
	filter, err := habilitationFilterFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	params := pagination.FromRequest(c)
	items, total, err := h.habilitations.Search(c.Context(), usecase.SearchHabilitationsInput{
		Filter:     filter,
		Pagination: params,
	})
	if err != nil {
		return mapHabilitationUsecaseError(err)
	}

	page := pagination.NewPage(dto.NewHabilitationResponses(items), params.Page, params.Limit, total)
	pagination.SetHeaders(c, page.Meta)
	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *HabilitationHandler) Get(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid habilitation id", nil, err)
	}

	item, err := h.habilitations.GetByID(c.Context(), id)
	if err != nil {
		return mapHabilitationUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewHabilitationResponse(item))
}

func (h *HabilitationHandler) Create(c fiber.Ctx) error {
	var req habilitationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.habilitations.Create(c.Context(), in)
	if err != nil {
		return mapHabilitationUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewHabilitationResponse(item))
}

func (h *HabilitationHandler) Update(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid habilitation id", nil, err)
	}

	var req habilitationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.habilitations.Update(c.Context(), id, in)
	if err != nil {
		return mapHabilitationUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewHabilitationResponse(item))
}

func (h *HabilitationHandler) Delete(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid habilitation id", nil, err)
	}

	if err := h.habilitations.Delete(c.Context(), id); err != nil {
		return mapHabilitationUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func habilitationFilterFromQuery(c fiber.Ctx) (repository.HabilitationFilter, error) {
	var f repository.HabilitationFilter

	f.Query = c.Query("q")
	if raw := c.Query("userIds"); raw != "" {
		ids, err := oid.ParseSlice(strings.Split(raw, ","))
		if err != nil {
			return f, err
		}
		f.UserIDs = ids
	}
	if raw := c.Query("jobIds"); raw != "" {
		ids, err := oid.ParseSlice(strings.Split(raw, ","))
		if err != nil {
			return f, err
		}
		f.JobIDs = ids
	}

	var err error
	if f.StartsAfter, err = optionalTimeQuery(c, "startDateFrom"); err != nil {
		return f, err
	}
	if f.EndsBefore, err = optionalTimeQuery(c, "endDateTo"); err != nil {
		return f, err
	}
	if f.ActiveAt, err = optionalTimeQuery(c, "activeAt"); err != nil {
		return f, err
	}

	return f, nil
}

func optionalTimeQuery(c fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r habilitationRequest) toInput() (usecase.HabilitationInput, error) {
	userID, err := oid.Parse(r.UserID)
	if err != nil {
		return usecase.HabilitationInput{}, err
	}
	jobID, err := oid.Parse(r.JobID)
	if err != nil {
		return usecase.HabilitationInput{}, err
	}
	return usecase.HabilitationInput{
		UserID:         userID,
		JobID:          jobID,
		Type:           r.Type,
		Code:           r.Code,
		Label:          r.Label,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		PayrollSection: r.PayrollSection,
		Establishment:  r.Establishment,
		Profession:     r.Profession,
	}, nil
}

func mapHabilitationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrHabilitationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Habilitation not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidHabilitationDates):
		return middleware.NewAppError(fiber.StatusBadRequest, "End date precedes start date", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
