package routes

import (
	"skillboard/internal/delivery/http/handler"
	"skillboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Jobs          *handler.JobHandler
	Skills        *handler.SkillHandler
	Evaluations   *handler.EvaluationHandler
	Campaigns     *handler.CampaignHandler
	Habilitations *handler.HabilitationHandler

	AuthMw *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	r.Auth.RegisterRoutes(app.Group("/auth"))

	protected := app.Group("", r.AuthMw.Middleware())
	r.Auth.RegisterMe(protected)
	r.Users.RegisterRoutes(protected.Group("/users"), r.AuthMw.RequireRoles("RH", "ADMIN"))
	r.Jobs.RegisterRoutes(protected.Group("/jobs"))
	r.Skills.RegisterRoutes(protected)
	r.Evaluations.RegisterRoutes(protected.Group("/evaluations"))
	r.Campaigns.RegisterRoutes(protected.Group("/evaluation-campaigns"))
	r.Habilitations.RegisterRoutes(protected.Group("/habilitations"))
}
