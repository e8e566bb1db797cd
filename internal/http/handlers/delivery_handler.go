package handlers

import (
	"strconv"

	"coursiva/internal/config"
	"coursiva/internal/domain"
	applog "coursiva/internal/log"
	"coursiva/internal/repos"

	"github.com/gofiber/fiber/v2"
)

type DeliveryHandler struct {
	Repo     *repos.DeliveryRepo
	Settings *config.Settings
}

// GetDeliveryOptions serves the options table plus the free-shipping
// threshold from settings. An unreachable table degrades to the builtin
// defaults instead of erroring.
func (h *DeliveryHandler) GetDeliveryOptions(c *fiber.Ctx) error {
	options, err := h.Repo.List()
	if err != nil || len(options) == 0 {
		if err != nil {
			applog.Error(c, "delivery.list", err, nil)
		}
		options = []domain.DeliveryOption{
			{ID: "standard", Label: "Livraison standard", Price: 4.90, Delay: "3-5 jours"},
			{ID: "retrait", Label: "Retrait sur place", Price: 0, Delay: "immediat"},
		}
	}

	freeOver := 50.0
	if h.Settings != nil {
		if v, err := strconv.ParseFloat(h.Settings.Get("livraison_gratuite_des", "50"), 64); err == nil {
			freeOver = v
		}
	}
	return ok(c, fiber.Map{"options": options, "freeOver": freeOver})
}
