package handlers

import (
	applog "coursiva/internal/log"
	"coursiva/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler is the whole HTTP surface of a categoryd instance.
type CategoryHandler struct {
	Assembly *services.AssemblyService
}

func (h *CategoryHandler) GetProducts(c *fiber.Ctx) error {
	sheets, err := h.Assembly.Assemble()
	if err != nil {
		applog.Error(c, "category.assemble", err, nil)
		return fail(c, "lecture du catalogue impossible")
	}
	return ok(c, sheets)
}
