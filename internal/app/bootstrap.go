package app

import (
	"fmt"
	"log"
	"strings"

	"skillboard/internal/config"
	"skillboard/internal/delivery/http/handler"
	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware()
	accessMw := middleware.NewAccessLogMiddleware(logger)
	authMw := middleware.NewAuthMiddleware(c.JWT)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	registry := &routes.Registry{
		Auth:          handler.NewAuthHandler(c.Auth, c.Users),
		Users:         handler.NewUserHandler(c.Users, c.UserSearch, c.Reporting),
		Jobs:          handler.NewJobHandler(c.Jobs, c.Reporting),
		Skills:        handler.NewSkillHandler(c.Skills),
		Evaluations:   handler.NewEvaluationHandler(c.Evaluations),
		Campaigns:     handler.NewCampaignHandler(c.Campaigns),
		Habilitations: handler.NewHabilitationHandler(c.Habilitations),
		AuthMw:        authMw,
	}
	registry.Register(f)

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
