package handlers

import (
	applog "coursiva/internal/log"
	"coursiva/internal/services"
	"coursiva/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type orderPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	DeliveryMode string `json:"deliveryMode"`
	Items        []struct {
		ProductID string  `json:"productId"`
		Label     string  `json:"label"`
		Qty       int     `json:"qty"`
		Price     float64 `json:"price"`
	} `json:"items"`
}

func (h *OrderHandler) EnregistrerCommande(c *fiber.Ctx) error {
	var p orderPayload
	if err := c.BodyParser(&p); err != nil {
		return fail(c, "corps de requete invalide")
	}
	email, okE := validate.Email(p.Email)
	if !okE {
		return fail(c, "email invalide")
	}
	name, okN := validate.Name(p.Name)
	if !okN {
		return fail(c, "nom obligatoire")
	}

	lines := make([]services.OrderLine, 0, len(p.Items))
	for _, it := range p.Items {
		lines = append(lines, services.OrderLine{
			ProductID: it.ProductID,
			Label:     it.Label,
			Qty:       it.Qty,
			Price:     it.Price,
		})
	}

	orderID, err := h.Orders.Register(name, email, p.DeliveryMode, lines)
	if err != nil {
		if err == services.ErrOrderBusy {
			applog.Security(c, "order.busy", map[string]any{"email": email})
		} else {
			applog.Error(c, "order.register", err, map[string]any{"email": email})
		}
		return fail(c, err.Error())
	}
	applog.Audit(c, "order.register", map[string]any{"order_id": orderID, "email": email})
	return ok(c, fiber.Map{"orderId": orderID})
}
