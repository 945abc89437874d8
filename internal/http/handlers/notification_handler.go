package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hooks/internal/domain"
	"hooks/internal/log"
	"hooks/internal/store"
)

type NotificationHandler struct {
	Store *store.Notifications
}

// Feed returns the notification center payload: the feed newest-first plus
// the derived unread count.
func (h *NotificationHandler) Feed(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"notifications": h.Store.Notifications(),
		"unread_count":  h.Store.UnreadCount(),
	})
}

func (h *NotificationHandler) Add(c *fiber.Ctx) error {
	var draft domain.NotificationDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification payload"})
	}
	if draft.Title == "" || draft.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and message are required"})
	}
	if !draft.Type.Valid() {
		draft.Type = domain.NotificationSystem
	}
	if !draft.Priority.Valid() {
		draft.Priority = domain.PriorityMedium
	}

	n := h.Store.Add(c.Context(), draft)
	log.Info(c, "notification.add", map[string]any{"id": n.ID, "type": string(n.Type)})
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing id"})
	}
	h.Store.MarkAsRead(c.Context(), id)
	return c.JSON(fiber.Map{"unread_count": h.Store.UnreadCount()})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	h.Store.MarkAllAsRead(c.Context())
	return c.JSON(fiber.Map{"unread_count": h.Store.UnreadCount()})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing id"})
	}
	h.Store.Delete(c.Context(), id)
	return c.JSON(fiber.Map{"unread_count": h.Store.UnreadCount()})
}

func (h *NotificationHandler) ClearAll(c *fiber.Ctx) error {
	h.Store.ClearAll(c.Context())
	log.Info(c, "notification.clear_all", nil)
	return c.JSON(fiber.Map{"unread_count": h.Store.UnreadCount()})
}
