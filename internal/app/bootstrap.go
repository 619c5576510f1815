package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skill-tracker/internal/config"
	"skill-tracker/internal/delivery/http/handler"
	"skill-tracker/internal/delivery/http/middleware"
	"skill-tracker/internal/delivery/http/routes"
	v1 "skill-tracker/internal/delivery/http/routes/v1"
	"skill-tracker/internal/usecase"
	"skill-tracker/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// New wires the HTTP surface over an existing container. The store is not
// loaded here; handlers answer 503 until it is.
func New(c *Container) *App {
	cfg := c.Config
	log := c.Logger

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		Immutable: true,
	})
	registerGlobalMiddleware(f, log)

	hub := ws.NewHub(log)
	notifier := ws.NewNotifier(hub, time.Now, log)
	c.Store.Subscribe(notifier.SkillsChanged)

	skillUC := usecase.NewSkillUsecase(c.Store, time.Now, log)
	timelineUC := usecase.NewTimelineUsecase(c.Store, time.Now)

	var suggestCache usecase.SuggestionCache
	if c.Cache != nil {
		suggestCache = c.Cache
	}
	suggestionUC := usecase.NewSuggestionUsecase(c.AI, c.Store, suggestCache, cfg.AI.CacheTTL, log)

	var pinger handler.Pinger
	if c.pinger != nil {
		pinger = c.pinger
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.Store, cfg.Storage.Backend, pinger),
		v1.Handlers{
			Skills:      handler.NewSkillHandler(skillUC),
			Timeline:    handler.NewTimelineHandler(timelineUC),
			Suggestions: handler.NewSuggestionHandler(suggestionUC),
		},
		ws.NewHandler(hub, log).HandleSkillsWS,
	).Register(f)

	return &App{Fiber: f, Container: c, Hub: hub}
}

// Bootstrap builds the container and the app. The returned cleanup flushes
// the store and closes connections.
func Bootstrap(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *slog.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
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
