package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"coursiva/internal/config"
	"coursiva/internal/http/handlers"
	applog "coursiva/internal/log"
	"coursiva/internal/repos"
	"coursiva/internal/services"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenRegistryDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	agg := services.NewAggregatorService(repos.NewRegistryRepo(db), repos.NewStateRepo(db), cfg.FanoutTimeout)
	h := &handlers.AggregatorHandler{Agg: agg}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	// The catalog fan-out is the expensive path; keep pollers off it.
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/getCacheVersion" || c.Path() == "/healthz"
		},
	}))

	app.Get("/getPublicCatalog", h.GetPublicCatalog)
	app.Get("/listCategories", h.ListCategories)
	app.Get("/invalidateCache", h.InvalidateCache)
	app.Get("/getCacheVersion", h.GetCacheVersion)
	app.Post("/upsertCategory", h.UpsertCategory)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/", handlers.Ping("aggregator"))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "action inconnue"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
