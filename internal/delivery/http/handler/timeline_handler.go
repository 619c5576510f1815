package handler

import (
	"skill-tracker/internal/delivery/http/dto"
	"skill-tracker/internal/pkg/response"
	"skill-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TimelineHandler struct {
	uc usecase.TimelineUsecase
}

func NewTimelineHandler(uc usecase.TimelineUsecase) *TimelineHandler {
	return &TimelineHandler{uc: uc}
}

func (h *TimelineHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/timeline", h.Get)
}

func (h *TimelineHandler) Get(c fiber.Ctx) error {
	chart, ok, err := h.uc.Chart(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	if !ok {
		return response.Success(c, fiber.StatusOK, "No skills to display yet", dto.EmptyChartResponse())
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChartResponse(chart))
}
