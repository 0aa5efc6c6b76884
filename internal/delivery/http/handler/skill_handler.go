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

type SkillHandler struct {
	skills usecase.SkillUsecase
}

type macroSkillTypeRequest struct {
	Name string `json:"name"`
}

type macroSkillRequest struct {
	Name             string `json:"name"`
	MacroSkillTypeID string `json:"macroSkillTypeId"`
	JobID            string `json:"jobId"`
}

type skillRequest struct {
	Name          string `json:"name"`
	MacroSkillID  string `json:"macroSkillId"`
	JobID         string `json:"jobId"`
	ExpectedLevel int    `json:"expectedLevel"`
}

func NewSkillHandler(skills usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// RegisterRoutes mounts the three taxonomy levels as sibling groups.
func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	types := r.Group("/macro-skill-types")
	types.Get("/", h.ListMacroSkillTypes)
	types.Post("/", h.CreateMacroSkillType)

	macros := r.Group("/macro-skills")
	macros.Get("/", h.ListMacroSkills)
	macros.Post("/", h.CreateMacroSkill)

	skills := r.Group("/skills")
	skills.Get("/", h.ListSkills)
	skills.Get("/:id", h.GetSkill)
	skills.Post("/", h.CreateSkill)
	skills.Delete("/:id", h.DeleteSkill)
}

func (h *SkillHandler) ListMacroSkillTypes(c fiber.Ctx) error {
	types, err := h.skills.ListMacroSkillTypes(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewMacroSkillTypeResponses(types))
}

func (h *SkillHandler) CreateMacroSkillType(c fiber.Ctx) error {
	var req macroSkillTypeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.skills.CreateMacroSkillType(c.Context(), usecase.CreateMacroSkillTypeInput{Name: req.Name})
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMacroSkillTypeResponse(t))
}

func (h *SkillHandler) ListMacroSkills(c fiber.Ctx) error {
	macros, err := h.skills.ListMacroSkills(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewMacroSkillResponses(macros))
}

func (h *SkillHandler) CreateMacroSkill(c fiber.Ctx) error {
	var req macroSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	typeID, err := oid.Parse(req.MacroSkillTypeID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid macro skill type id", nil, err)
	}
	jobID, err := oid.Parse(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	m, err := h.skills.CreateMacroSkill(c.Context(), usecase.CreateMacroSkillInput{
		Name:             req.Name,
		MacroSkillTypeID: typeID,
		JobID:            jobID,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMacroSkillResponse(m))
}

func (h *SkillHandler) ListSkills(c fiber.Ctx) error {
	skills, err := h.skills.ListSkills(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewSkillResponses(skills))
}

func (h *SkillHandler) GetSkill(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	s, err := h.skills.GetSkill(c.Context(), id)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewSkillResponse(s))
}

func (h *SkillHandler) CreateSkill(c fiber.Ctx) error {
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	macroID, err := oid.Parse(req.MacroSkillID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid macro skill id", nil, err)
	}
	jobID, err := oid.Parse(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	s, err := h.skills.CreateSkill(c.Context(), usecase.CreateSkillInput{
		Name:          req.Name,
		MacroSkillID:  macroID,
		JobID:         jobID,
		ExpectedLevel: req.ExpectedLevel,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSkillResponse(s))
}

func (h *SkillHandler) DeleteSkill(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	if err := h.skills.DeleteSkill(c.Context(), id); err != nil {
		return mapSkillUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrMacroSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Macro skill not found", nil, err)
	case errors.Is(err, usecase.ErrMacroSkillTypeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Macro skill type not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrMacroSkillTypeNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Macro skill type name already taken", nil, err)
	case errors.Is(err, usecase.ErrSkillHasEvaluations):
		return middleware.NewAppError(fiber.StatusConflict, "Skill is referenced by evaluations", nil, err)
	case errors.Is(err, usecase.ErrInvalidExpectedSkillLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid expected level", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
