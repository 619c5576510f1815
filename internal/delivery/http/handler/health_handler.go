package handler

import (
	"context"
	"time"

	"skill-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Readiness reports whether the skill collection has finished loading.
type Readiness interface {
	Loaded() bool
}

// Pinger is implemented by storage backends that hold a connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	ready   Readiness
	storage Pinger
	backend string
}

type healthResponse struct {
	Loaded  bool   `json:"loaded"`
	Backend string `json:"backend"`
	Storage string `json:"storage"`
}

// NewHealthHandler takes a nil storage for backends without a connection.
func NewHealthHandler(ready Readiness, backend string, storage Pinger) *HealthHandler {
	return &HealthHandler{ready: ready, storage: storage, backend: backend}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Get)
}

func (h *HealthHandler) Get(c fiber.Ctx) error {
	res := healthResponse{Backend: h.backend, Storage: "ok"}
	if h.ready != nil {
		res.Loaded = h.ready.Loaded()
	}
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			res.Storage = "unavailable"
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
