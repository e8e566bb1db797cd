package handlers

import (
	"coursiva/internal/domain"
	applog "coursiva/internal/log"
	"coursiva/internal/services"
	"coursiva/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AggregatorHandler struct {
	Agg *services.AggregatorService
}

func (h *AggregatorHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Agg.ListCategories()
	if err != nil {
		applog.Error(c, "aggregator.categories", err, nil)
		return fail(c, "lecture du registre impossible")
	}
	return ok(c, cats)
}

func (h *AggregatorHandler) GetPublicCatalog(c *fiber.Ctx) error {
	snap, err := h.Agg.PublicCatalog(c.Context())
	if err != nil {
		applog.Error(c, "aggregator.catalog", err, nil)
		return fail(c, "lecture du catalogue impossible")
	}
	return c.JSON(fiber.Map{"success": true, "data": snap, "cacheVersion": snap.CacheVersion})
}

func (h *AggregatorHandler) InvalidateCache(c *fiber.Ctx) error {
	v, err := h.Agg.InvalidateCache()
	if err != nil {
		applog.Error(c, "aggregator.invalidate", err, nil)
		return fail(c, "invalidation impossible")
	}
	applog.Audit(c, "aggregator.invalidate", map[string]any{"version": v})
	return okVersion(c, v)
}

// UpsertCategory is the registry edit hook: any change to a registry row
// bumps the cache version in the same request, so readers notice without a
// separate notify call.
func (h *AggregatorHandler) UpsertCategory(c *fiber.Ctx) error {
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return fail(c, "corps de requete invalide")
	}
	id, okID := validate.ID(cat.ID)
	if !okID {
		return fail(c, "id invalide")
	}
	cat.ID = id
	if cat.DisplayName == "" {
		return fail(c, "displayName obligatoire")
	}
	if err := h.Agg.Registry.Upsert(cat); err != nil {
		applog.Error(c, "aggregator.registry.upsert", err, nil)
		return fail(c, "mise a jour du registre impossible")
	}
	v, err := h.Agg.InvalidateCache()
	if err != nil {
		applog.Error(c, "aggregator.registry.bump", err, nil)
		return fail(c, "invalidation impossible")
	}
	applog.Audit(c, "aggregator.registry.upsert", map[string]any{"category": cat.ID, "version": v})
	return okVersion(c, v)
}

func (h *AggregatorHandler) GetCacheVersion(c *fiber.Ctx) error {
	v, err := h.Agg.CacheVersion()
	if err != nil {
		applog.Error(c, "aggregator.version", err, nil)
		return fail(c, "lecture de la version impossible")
	}
	return okVersion(c, v)
}
