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

type EvaluationHandler struct {
	evaluations usecase.EvaluationUsecase
}

type observedSkillRequest struct {
	SkillID       string `json:"skillId"`
	ObservedLevel int    `json:"observedLevel"`
}

type evaluationRequest struct {
	UserID        string  `json:"userId"`
	ManagerUserID *string `json:"managerUserId"`
	CampaignID    string  `json:"evaluationCampaignId"`
	UserJobID     *string `json:"userJobId"`
	UserJobCode   *string `json:"userJobCode"`
}

type createCompleteEvaluationRequest struct {
	Evaluation evaluationRequest      `json:"evaluation"`
	Skills     []observedSkillRequest `json:"skills"`
}

func NewEvaluationHandler(evaluations usecase.EvaluationUsecase) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

func (h *EvaluationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/skill-levels", h.ListSkillLevels)
	r.Get("/:id", h.Get)
	r.Post("/complete", h.CreateComplete)
	r.Delete("/:id", h.Delete)
}

func (h *EvaluationHandler) CreateComplete(c fiber.Ctx) error {
	var req createCompleteEvaluationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	userID, err := oid.Parse(req.Evaluation.UserID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}
	campaignID, err := oid.Parse(req.Evaluation.CampaignID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid campaign id", nil, err)
	}
	managerID, err := optionalID(req.Evaluation.ManagerUserID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid manager id", nil, err)
	}
	userJobID, err := optionalID(req.Evaluation.UserJobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	createdBy := middleware.UserIDFromCtx(c)
	if createdBy.IsZero() {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	in := usecase.CreateCompleteEvaluationInput{
		UserID:        userID,
		ManagerUserID: managerID,
		CampaignID:    campaignID,
		UserJobID:     userJobID,
		UserJobCode:   req.Evaluation.UserJobCode,
		CreatedBy:     createdBy,
		Skills:        make([]usecase.ObservedSkillInput, 0, len(req.Skills)),
	}
	for _, s := range req.Skills {
		skillID, err := oid.Parse(s.SkillID)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
		}
		in.Skills = append(in.Skills, usecase.ObservedSkillInput{
			SkillID:       skillID,
			ObservedLevel: s.ObservedLevel,
		})
	}

	created, err := h.evaluations.CreateComplete(c.Context(), in)
	if err != nil {
		return mapEvaluationUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewEvaluationWithSkillsResponse(created))
}

func (h *EvaluationHandler) List(c fiber.Ctx) error {
	if raw := c.Query("userId"); raw != "" {
		userID, err := oid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
		}
		evals, err := h.evaluations.ListByUser(c.Context(), userID)
		if err != nil {
			return mapEvaluationUsecaseError(err)
		}
		return c.Status(fiber.StatusOK).JSON(dto.NewEvaluationResponses(evals))
	}

	evals, err := h.evaluations.List(c.Context())
	if err != nil {
		return mapEvaluationUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewEvaluationResponses(evals))
}

func (h *EvaluationHandler) Get(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid evaluation id", nil, err)
	}

	eval, err := h.evaluations.GetWithSkills(c.Context(), id)
	if err != nil {
		return mapEvaluationUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewEvaluationWithSkillsResponse(eval))
}

func (h *EvaluationHandler) Delete(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid evaluation id", nil, err)
	}

	if err := h.evaluations.Delete(c.Context(), id); err != nil {
		return mapEvaluationUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSkillLevels returns the authenticated user's tracked levels, or another
// user's when userId is passed.
func (h *EvaluationHandler) ListSkillLevels(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if raw := c.Query("userId"); raw != "" {
		id, err := oid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
		}
		userID = id
	}
	if userID.IsZero() {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	levels, err := h.evaluations.ListSkillLevels(c.Context(), userID)
	if err != nil {
		return mapEvaluationUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewSkillLevelResponses(levels))
}

func optionalID(raw *string) (*oid.ID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := oid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapEvaluationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEvaluationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Evaluation not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrCampaignNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Campaign not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrMacroSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Macro skill not found", nil, err)
	case errors.Is(err, usecase.ErrNoSkillsInEvaluation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Evaluation must contain at least one skill", nil, err)
	case errors.Is(err, usecase.ErrDuplicateSkill):
		return middleware.NewAppError(fiber.StatusBadRequest, "Duplicate skill in evaluation", nil, err)
	case errors.Is(err, usecase.ErrInvalidObservedLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid observed level", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
