package handlers

import (
	"strings"

	"coursiva/internal/domain"
	applog "coursiva/internal/log"
	"coursiva/internal/repos"
	"coursiva/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	Repo *repos.NotificationRepo
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	email, okE := validate.Email(c.Query("email"))
	if !okE {
		return fail(c, "email invalide")
	}
	notifs, err := h.Repo.ListByEmail(email)
	if err != nil {
		applog.Error(c, "notifications.list", err, nil)
		return fail(c, "lecture des notifications impossible")
	}
	if notifs == nil {
		notifs = []domain.Notification{}
	}
	return ok(c, notifs)
}

type notificationPayload struct {
	Email string `json:"email"`
	Title string `json:"title"`
	Body  string `json:"body"`
	ID    string `json:"id"`
}

func (h *NotificationHandler) CreateNotification(c *fiber.Ctx) error {
	var p notificationPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	email, okE := validate.Email(p.Email)
	if !okE {
		return fail(c, "email invalide")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fail(c, "titre obligatoire")
	}
	n := domain.Notification{ID: uuid.NewString(), UserEmail: email, Title: p.Title, Body: p.Body}
	if err := h.Repo.Create(n); err != nil {
		applog.Error(c, "notifications.create", err, nil)
		return fail(c, "creation impossible")
	}
	return ok(c, fiber.Map{"id": n.ID})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	var p notificationPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	id, okID := validate.ID(p.ID)
	if !okID {
		return fail(c, "id invalide")
	}
	if err := h.Repo.MarkRead(id); err != nil {
		applog.Error(c, "notifications.read", err, nil)
		return fail(c, "mise a jour impossible")
	}
	return ok(c, nil)
}
