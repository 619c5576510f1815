package v1

import (
	"skill-tracker/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Skills      *handler.SkillHandler
	Timeline    *handler.TimelineHandler
	Suggestions *handler.SuggestionHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Skills != nil {
		h.Skills.RegisterRoutes(r)
	}
	if h.Timeline != nil {
		h.Timeline.RegisterRoutes(r)
	}
	if h.Suggestions != nil {
		h.Suggestions.RegisterRoutes(r)
	}
}
