package handler

import (
	"errors"

	"skillboard/internal/delivery/http/dto"
	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/response"
	"skillboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	jobs      usecase.JobUsecase
	reporting usecase.ReportingUsecase
}

type jobRequest struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	JobProfile string  `json:"jobProfile"`
	JobFamily  *string `json:"jobFamily"`
}

func NewJobHandler(jobs usecase.JobUsecase, reporting usecase.ReportingUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, reporting: reporting}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/:id", h.Get)
	r.Get("/:id/skills", h.ListSkills)
	r.Get("/:id/skills/distribution", h.SkillsDistribution)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	jobs, err := h.jobs.List(c.Context())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobResponses(jobs))
}

func (h *JobHandler) Search(c fiber.Ctx) error {
	jobs, err := h.jobs.Search(c.Context(), c.Query("q"))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobResponses(jobs))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	j, err := h.jobs.GetByID(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobResponse(j))
}

func (h *JobHandler) ListSkills(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	skills, err := h.jobs.ListSkills(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobSkillResponses(skills))
}

// SkillsDistribution returns the bare array of per-skill histograms.
func (h *JobHandler) SkillsDistribution(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	dist, err := h.reporting.SkillsDistribution(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dist)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.Create(c.Context(), usecase.CreateJobInput{
		Name:       req.Name,
		Code:       req.Code,
		JobProfile: req.JobProfile,
		JobFamily:  req.JobFamily,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.Update(c.Context(), id, usecase.UpdateJobInput{
		Name:       req.Name,
		Code:       req.Code,
		JobProfile: req.JobProfile,
		JobFamily:  req.JobFamily,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewJobResponse(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	if err := h.jobs.Delete(c.Context(), id); err != nil {
		return mapJobUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrManagerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Manager not found", nil, err)
	case errors.Is(err, usecase.ErrJobCodeTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Job code already taken", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
