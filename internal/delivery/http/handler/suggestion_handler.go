package handler

import (
	"skill-tracker/internal/delivery/http/dto"
	"skill-tracker/internal/pkg/response"
	"skill-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SuggestionHandler struct {
	uc usecase.SuggestionUsecase
}

func NewSuggestionHandler(uc usecase.SuggestionUsecase) *SuggestionHandler {
	return &SuggestionHandler{uc: uc}
}

func (h *SuggestionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/suggestions", h.Suggest)
	r.Post("/categorize", h.Categorize)
}

// Suggest accepts an empty body, in which case the stored skills are used.
func (h *SuggestionHandler) Suggest(c fiber.Ctx) error {
	var req dto.SuggestionRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}

	out, err := h.uc.Suggest(c.Context(), req.Skills)
	if err != nil {
		return mapUsecaseError(err)
	}
	if out == nil {
		out = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SuggestionResponse{Suggestions: out})
}

func (h *SuggestionHandler) Categorize(c fiber.Ctx) error {
	var req dto.CategorizeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	cat, err := h.uc.Categorize(c.Context(), req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CategorizeResponse{Name: req.Name, Category: cat.String()})
}
