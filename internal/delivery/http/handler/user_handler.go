package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"skillboard/internal/delivery/http/dto"
	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/domain/search"
	"skillboard/internal/pkg/oid"
	"skillboard/internal/pkg/pagination"
	"skillboard/internal/pkg/response"
	"skillboard/internal/repository"
	"skillboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	users     usecase.UserUsecase
	search    usecase.UserSearchUsecase
	reporting usecase.ReportingUsecase
}

type userRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Code      string `json:"code"`

	JobID          *string  `json:"jobId"`
	ManagerUserIDs []string `json:"managerUserIds"`
	Roles          []string `json:"roles"`

	Gender    *string    `json:"gender"`
	BirthDate *time.Time `json:"birthDate"`
	HiredAt   *time.Time `json:"hiredAt"`

	CompanyCode       string `json:"companyCode"`
	CompanyName       string `json:"companyName"`
	EstablishmentCode string `json:"establishmentCode"`
	EstablishmentName string `json:"establishmentName"`
}

func NewUserHandler(users usecase.UserUsecase, searchUC usecase.UserSearchUsecase, reporting usecase.ReportingUsecase) *UserHandler {
	return &UserHandler{users: users, search: searchUC, reporting: reporting}
}

// RegisterRoutes mounts the user routes; the write operations additionally
// run the given admin guard.
func (h *UserHandler) RegisterRoutes(r fiber.Router, requireAdmin fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/managers", h.ListManagers)
	r.Get("/:managerId/team-stats", h.TeamStats)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create, requireAdmin)
	r.Put("/:id", h.Update, requireAdmin)
	r.Delete("/:id", h.Delete, requireAdmin)
}

func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserResponses(users))
}

func (h *UserHandler) ListManagers(c fiber.Ctx) error {
	users, err := h.users.ListManagers(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserResponses(users))
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	usr, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserResponse(usr))
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req userRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toCreateInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.users.Create(c.Context(), in)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(usr))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	var req userRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in, err := req.toUpdateInput()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.users.Update(c.Context(), id, in)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserResponse(usr))
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := oid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		return mapUserUsecaseError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) Search(c fiber.Ctx) error {
	filter, err := searchFilterFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	params := pagination.FromRequest(c)
	users, total, err := h.search.Search(c.Context(), usecase.SearchUsersInput{
		Filter:     filter,
		Pagination: params,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	page := pagination.NewPage(dto.NewUserResponses(users), params.Page, params.Limit, total)
	pagination.SetHeaders(c, page.Meta)
	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *UserHandler) TeamStats(c fiber.Ctx) error {
	managerID, err := oid.Parse(c.Params("managerId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid manager id", nil, err)
	}

	stats, err := h.reporting.TeamStats(c.Context(), managerID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func searchFilterFromQuery(c fiber.Ctx) (repository.UserSearchFilter, error) {
	var f repository.UserSearchFilter

	if raw := c.Query("managerUserId"); raw != "" {
		id, err := oid.Parse(raw)
		if err != nil {
			return f, err
		}
		f.ManagerUserID = &id
	}
	f.Gender = c.Query("gender")
	f.EstablishmentName = c.Query("establishmentName")
	f.Query = c.Query("q")
	f.JobName = c.Query("jobName")

	var err error
	if f.AgeMin, err = optionalIntQuery(c, "ageMin"); err != nil {
		return f, err
	}
	if f.AgeMax, err = optionalIntQuery(c, "ageMax"); err != nil {
		return f, err
	}
	if f.SeniorityMin, err = optionalIntQuery(c, "seniorityMin"); err != nil {
		return f, err
	}
	if f.SeniorityMax, err = optionalIntQuery(c, "seniorityMax"); err != nil {
		return f, err
	}

	if raw := c.Query("jobIds"); raw != "" {
		ids, err := oid.ParseSlice(strings.Split(raw, ","))
		if err != nil {
			return f, err
		}
		f.JobIDs = ids
	}

	skillName := c.Query("skillName")
	observedLevel, err := optionalIntQuery(c, "observedLevel")
	if err != nil {
		return f, err
	}
	if skillName != "" || observedLevel != nil {
		f.SingleSkill = &repository.SingleSkillFilter{
			SkillName:     skillName,
			ObservedLevel: observedLevel,
		}
	}

	skillIDs := queryValues(c, "skillIds")
	minLevels := queryValues(c, "levels")
	switch {
	case len(skillIDs) > 0 || len(minLevels) > 0:
		reqs, err := zipSkillRequirements(skillIDs, minLevels)
		if err != nil {
			return f, err
		}
		f.RequiredSkills = reqs
	default:
		if raw := c.Query("skills"); raw != "" {
			reqs, err := parseSkillRequirements(raw)
			if err != nil {
				return f, err
			}
			f.RequiredSkills = reqs
		}
	}

	return f, nil
}

// queryValues collects every occurrence of a repeatable query parameter,
// additionally splitting comma-separated values inside each occurrence.
func queryValues(c fiber.Ctx, key string) []string {
	var out []string
	for _, v := range c.RequestCtx().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(v), ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// zipSkillRequirements pairs the parallel skillIds and levels arrays of the
// multi-skill filter.
func zipSkillRequirements(ids, levels []string) ([]search.SkillRequirement, error) {
	if len(ids) != len(levels) {
		return nil, errors.New("skillIds and levels must have the same length")
	}
	out := make([]search.SkillRequirement, 0, len(ids))
	for i, idStr := range ids {
		id, err := oid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		lvl, err := strconv.Atoi(levels[i])
		if err != nil {
			return nil, err
		}
		out = append(out, search.SkillRequirement{SkillID: id, MinLevel: lvl})
	}
	return out, nil
}

// parseSkillRequirements reads the compact form of the multi-skill filter, a
// comma-separated list of skillId:minLevel pairs.
func parseSkillRequirements(raw string) ([]search.SkillRequirement, error) {
	parts := strings.Split(raw, ",")
	out := make([]search.SkillRequirement, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idStr, lvlStr, found := strings.Cut(part, ":")
		if !found {
			return nil, errors.New("expected skillId:minLevel")
		}
		id, err := oid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		lvl, err := strconv.Atoi(lvlStr)
		if err != nil {
			return nil, err
		}
		out = append(out, search.SkillRequirement{SkillID: id, MinLevel: lvl})
	}
	return out, nil
}

func optionalIntQuery(c fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r userRequest) toCreateInput() (usecase.CreateUserInput, error) {
	jobID, managers, err := r.parseRefs()
	if err != nil {
		return usecase.CreateUserInput{}, err
	}
	return usecase.CreateUserInput{
		Email:             r.Email,
		Password:          r.Password,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Code:              r.Code,
		JobID:             jobID,
		ManagerUserIDs:    managers,
		Roles:             r.Roles,
		Gender:            r.Gender,
		BirthDate:         r.BirthDate,
		HiredAt:           r.HiredAt,
		CompanyCode:       r.CompanyCode,
		CompanyName:       r.CompanyName,
		EstablishmentCode: r.EstablishmentCode,
		EstablishmentName: r.EstablishmentName,
	}, nil
}

func (r userRequest) toUpdateInput() (usecase.UpdateUserInput, error) {
	jobID, managers, err := r.parseRefs()
	if err != nil {
		return usecase.UpdateUserInput{}, err
	}
	return usecase.UpdateUserInput{
		Email:             r.Email,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Code:              r.Code,
		JobID:             jobID,
		ManagerUserIDs:    managers,
		Roles:             r.Roles,
		Gender:            r.Gender,
		BirthDate:         r.BirthDate,
		HiredAt:           r.HiredAt,
		CompanyCode:       r.CompanyCode,
		CompanyName:       r.CompanyName,
		EstablishmentCode: r.EstablishmentCode,
		EstablishmentName: r.EstablishmentName,
	}, nil
}

func (r userRequest) parseRefs() (*oid.ID, []oid.ID, error) {
	var jobID *oid.ID
	if r.JobID != nil && *r.JobID != "" {
		id, err := oid.Parse(*r.JobID)
		if err != nil {
			return nil, nil, err
		}
		jobID = &id
	}
	managers, err := oid.ParseSlice(r.ManagerUserIDs)
	if err != nil {
		return nil, nil, err
	}
	return jobID, managers, nil
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrManagerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Manager not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrEmailAlreadyTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already taken", nil, err)
	case errors.Is(err, usecase.ErrCodeAlreadyTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Employee code already taken", nil, err)
	case errors.Is(err, usecase.ErrConflictingSkillFilters):
		return middleware.NewAppError(fiber.StatusBadRequest, "Single-skill and multi-skill filters are exclusive", nil, err)
	case errors.Is(err, usecase.ErrInvalidObservedLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid observed level", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
