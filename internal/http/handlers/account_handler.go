package handlers

import (
	"strconv"
	"strings"

	"coursiva/internal/domain"
	applog "coursiva/internal/log"
	"coursiva/internal/repos"
	"coursiva/internal/services"
	"coursiva/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AccountHandler struct {
	Auth *services.AuthService
	Logs *repos.AppLogRepo
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

type accountPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (h *AccountHandler) CreerCompteClient(c *fiber.Ctx) error {
	var p accountPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	email, okE := validate.Email(p.Email)
	if !okE {
		applog.Security(c, "account.create.fail", map[string]any{"reason": "bad_email"})
		return fail(c, "email invalide")
	}
	name, okN := validate.Name(p.Name)
	if !okN {
		return fail(c, "nom obligatoire (60 caracteres max)")
	}
	if !validate.Password(p.Password) {
		return fail(c, "mot de passe trop faible")
	}
	phone, okP := validate.Phone(p.Phone)
	if !okP {
		return fail(c, "telephone invalide")
	}

	u, err := h.Auth.Register(email, name, p.Password, phone, strings.TrimSpace(p.Address))
	if err != nil {
		if err == services.ErrEmailTaken {
			return fail(c, err.Error())
		}
		applog.Error(c, "account.create", err, nil)
		return fail(c, "creation du compte impossible")
	}
	applog.Audit(c, "account.create", map[string]any{"email": email})
	return ok(c, u)
}

func (h *AccountHandler) ConnecterClient(c *fiber.Ctx) error {
	var p accountPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, p.Email, p.Password)
	if err != nil {
		applog.Security(c, "account.login.fail", map[string]any{"email": p.Email})
		return fail(c, services.ErrBadCreds.Error())
	}
	applog.Audit(c, "account.login", map[string]any{"email": u.Email})
	return ok(c, u)
}

func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	var p accountPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	email, okE := validate.Email(p.Email)
	if !okE {
		return fail(c, "email invalide")
	}
	name, okN := validate.Name(p.Name)
	if !okN {
		return fail(c, "nom obligatoire (60 caracteres max)")
	}
	phone, okP := validate.Phone(p.Phone)
	if !okP {
		return fail(c, "telephone invalide")
	}
	if err := h.Auth.Users.UpdateProfile(email, name, phone, strings.TrimSpace(p.Address)); err != nil {
		applog.Error(c, "account.update", err, nil)
		return fail(c, "mise a jour impossible")
	}
	applog.Audit(c, "account.update", map[string]any{"email": email})
	return ok(c, fiber.Map{"email": email})
}

type clientEvent struct {
	Email  string `json:"email"`
	Event  string `json:"event"`
	Detail string `json:"detail"`
}

// LogClientEvent appends a browser-side event to the durable log table.
func (h *AccountHandler) LogClientEvent(c *fiber.Ctx) error {
	var p clientEvent
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	if strings.TrimSpace(p.Event) == "" {
		return fail(c, "event obligatoire")
	}
	if err := h.Logs.Append(domain.AppLog{
		ID:        uuid.NewString(),
		UserEmail: strings.TrimSpace(p.Email),
		Event:     p.Event,
		Detail:    p.Detail,
	}); err != nil {
		applog.Error(c, "applog.append", err, nil)
		return fail(c, "journalisation impossible")
	}
	return ok(c, nil)
}

func (h *AccountHandler) GetAppLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "200"))
	logs, err := h.Logs.ListLatest(limit)
	if err != nil {
		applog.Error(c, "applog.list", err, nil)
		return fail(c, "lecture des journaux impossible")
	}
	return ok(c, logs)
}
