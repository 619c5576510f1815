package handler

import (
	"errors"

	"skill-tracker/internal/delivery/http/dto"
	"skill-tracker/internal/delivery/http/middleware"
	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	var verr *skill.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Please fix the highlighted fields.", verr.Fields, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrNotLoaded):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "", dto.LoadingResponse{Loaded: false}, err)
	case errors.Is(err, usecase.ErrNoSkills):
		return middleware.NewAppError(fiber.StatusBadRequest, "Add skills first to get suggestions.", nil, err)
	case errors.Is(err, usecase.ErrNameTooShort):
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill name must be at least 2 characters.", nil, err)
	case errors.Is(err, usecase.ErrAIUnavailable):
		return middleware.NewAppError(fiber.StatusBadGateway, "", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
