package handler

import (
	"strings"

	"skill-tracker/internal/delivery/http/dto"
	"skill-tracker/internal/delivery/http/middleware"
	"skill-tracker/internal/pkg/response"
	"skill-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Get("/groups", h.Groups)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillListResponse{
		Loaded: true,
		Skills: dto.NewSkillResponses(items),
	})
}

func (h *SkillHandler) Groups(c fiber.Ctx) error {
	groups, err := h.uc.GroupSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillGroupResponses(groups))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req dto.SkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	in, bad := req.ToInput()
	if bad != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Please fix the highlighted fields.", bad, nil)
	}

	created, err := h.uc.AddSkill(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill added successfully", dto.NewSkillResponse(created))
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	var req dto.SkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	in, bad := req.ToInput()
	if bad != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Please fix the highlighted fields.", bad, nil)
	}

	updated, err := h.uc.UpdateSkill(c.Context(), skillID(c), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill updated successfully", dto.NewSkillResponse(updated))
}

// Delete answers 200 whether or not the id existed.
func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id := skillID(c)
	removed, err := h.uc.RemoveSkill(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RemoveSkillResponse{ID: id, Removed: removed})
}

// skillID copies the route param; fiber reuses the request buffer it points
// into once the handler returns.
func skillID(c fiber.Ctx) string {
	return strings.Clone(c.Params("id"))
}
