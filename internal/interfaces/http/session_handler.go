package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vcostin/pic-gallery-sub004/internal/application"
)

// SessionHandler drives gallery editing sessions: reorder, stage, remove
// and finally persist the whole image set in one batch.
type SessionHandler struct {
	sessions  *application.SessionManager
	galleries *application.GalleryService
}

func NewSessionHandler(sessions *application.SessionManager, galleries *application.GalleryService) *SessionHandler {
	return &SessionHandler{sessions: sessions, galleries: galleries}
}

// OpenSession starts an editing session seeded with the gallery's saved
// entries.
func (h *SessionHandler) OpenSession(c *fiber.Ctx) error {
	galleryID := c.Params("id")

	gallery, err := h.galleries.GetGallery(galleryID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	userID := c.Locals("userID").(string)
	if gallery.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Gallery does not belong to user"})
	}

	sessionID, session := h.sessions.Open(galleryID, gallery.Images)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sessionId": sessionID,
		"state":     session.State(),
	})
}

func (h *SessionHandler) GetState(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}
	return c.JSON(session.State())
}

func (h *SessionHandler) UpdateDescription(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}

	type Request struct {
		Description *string `json:"description"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	session.UpdateDescription(c.Params("entryId"), req.Description)
	return c.JSON(session.State())
}

func (h *SessionHandler) StageImages(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}

	type Request struct {
		ImageIDs []string `json:"imageIds" validate:"required,min=1"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	changed := session.StageImages(req.ImageIDs, h.galleries.ImageResolver())
	return c.JSON(fiber.Map{
		"changed": changed,
		"state":   session.State(),
	})
}

func (h *SessionHandler) BeginDrag(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}

	type Request struct {
		EntryID string `json:"entryId" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session.BeginDrag(req.EntryID)
	return c.JSON(session.State())
}

func (h *SessionHandler) EndDrag(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}

	type Request struct {
		SourceID string  `json:"sourceId" validate:"required"`
		TargetID *string `json:"targetId"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	targetID := ""
	if req.TargetID != nil {
		targetID = *req.TargetID
	}
	changed := session.EndDrag(req.SourceID, targetID)
	return c.JSON(fiber.Map{
		"changed": changed,
		"state":   session.State(),
	})
}

func (h *SessionHandler) CancelDrag(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}
	session.CancelDrag()
	return c.JSON(session.State())
}

func (h *SessionHandler) RequestRemoval(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}

	type Request struct {
		EntryID string `json:"entryId" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := application.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session.RequestRemoval(req.EntryID)
	return c.JSON(session.State())
}

func (h *SessionHandler) ConfirmRemoval(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}
	removed := session.ConfirmRemoval()
	return c.JSON(fiber.Map{
		"removed": removed,
		"state":   session.State(),
	})
}

func (h *SessionHandler) CancelRemoval(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}
	session.CancelRemoval()
	return c.JSON(session.State())
}

func (h *SessionHandler) DismissToast(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}
	session.DismissToast()
	return c.JSON(session.State())
}

// Save commits the session's image set in one batch and reseeds the
// session from the fresh server rows, which replaces every temporary id
// with its permanent one.
func (h *SessionHandler) Save(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}

	entries, err := h.galleries.SaveImages(session.GalleryID, session.SavePayload())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	session.Initialize(entries)

	return c.JSON(session.State())
}

func (h *SessionHandler) CloseSession(c *fiber.Ctx) error {
	h.sessions.Close(c.Params("sessionId"))
	return c.SendStatus(fiber.StatusOK)
}
