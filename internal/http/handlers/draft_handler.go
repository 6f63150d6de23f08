package handlers

import (
	"strconv"

	"github.com/creator-marketplace/backend/internal/http/dto"
	"github.com/creator-marketplace/backend/internal/middleware"
	"github.com/creator-marketplace/backend/internal/models"
	"github.com/creator-marketplace/backend/internal/services"
	"github.com/creator-marketplace/backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DraftHandler struct {
	draftService *services.DraftService
	log          *zap.Logger
}

func NewDraftHandler(draftService *services.DraftService, log *zap.Logger) *DraftHandler {
	return &DraftHandler{draftService: draftService, log: log}
}

func (h *DraftHandler) CreateDraft(c *fiber.Ctx) error {
	view, err := h.draftService.Create(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: view})
}

func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}

	view, err := h.draftService.Get(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: view})
}

// UpdateDraft applies a partial update. Field-level input errors come back
// in the draft view and never reject the change.
func (h *DraftHandler) UpdateDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}

	var req dto.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := req.Check(); err != nil {
		return badRequest(c, err.Error())
	}

	view, err := h.draftService.Update(c.Context(), id, middleware.GetUserID(c), func(d *models.CampaignDraft) {
		req.Apply(d)
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: view})
}

// SaveDraft writes the draft now. A failed write still returns the draft
// with a 503 so the client keeps editing.
func (h *DraftHandler) SaveDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}

	view, err := h.draftService.Save(c.Context(), id, middleware.GetUserID(c))
	if view == nil {
		return writeError(c, h.log, err)
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.SuccessResponse{OK: false, Data: view})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: view})
}

func (h *DraftHandler) NextStep(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}

	view, err := h.draftService.NextStep(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: view})
}

func (h *DraftHandler) PreviousStep(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}

	view, err := h.draftService.PreviousStep(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: view})
}

func (h *DraftHandler) GoToStep(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}
	step, err := strconv.Atoi(c.Params("step"))
	if err != nil {
		return badRequest(c, "invalid step")
	}

	view, err := h.draftService.GoToStep(c.Context(), id, middleware.GetUserID(c), step)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: view})
}

func (h *DraftHandler) ValidateDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}
	mode, ok := validation.ParseMode(c.Query("mode"))
	if !ok {
		return badRequest(c, "mode must be interactive or publish")
	}

	errs, err := h.draftService.Validate(c.Context(), id, middleware.GetUserID(c), mode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.ValidationResponse{
		Mode:   mode.String(),
		Valid:  len(errs) == 0,
		Errors: errs,
	}})
}

func (h *DraftHandler) PreviewDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}

	p, err := h.draftService.Preview(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: p})
}

func (h *DraftHandler) PublishDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}

	campaign, err := h.draftService.Publish(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *DraftHandler) GetHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid draft id")
	}
	limit, offset := pagination(c)

	logs, err := h.draftService.History(c.Context(), id, middleware.GetUserID(c), limit, offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.ListResponse{Items: logs, Limit: limit, Offset: offset}})
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
