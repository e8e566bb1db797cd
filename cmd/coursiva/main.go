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
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": err.Error(),
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	deps := handlers.NewDeps(db, cfg)

	// Accounts (login throttled)
	app.Post("/creerCompteClient", deps.AccountHandler.CreerCompteClient)
	app.Post("/connecterClient", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "error": "trop de tentatives, reessayez plus tard",
			})
		},
	}), deps.AccountHandler.ConnecterClient)
	app.Post("/updateProfile", deps.AccountHandler.UpdateProfile)
	app.Post("/logClientEvent", deps.AccountHandler.LogClientEvent)
	app.Get("/getAppLogs", deps.AccountHandler.GetAppLogs)

	// Orders
	app.Post("/enregistrerCommande", deps.OrderHandler.EnregistrerCommande)

	// Notifications
	app.Get("/getNotifications", deps.NotificationHandler.GetNotifications)
	app.Post("/createNotification", deps.NotificationHandler.CreateNotification)
	app.Post("/markAsRead", deps.NotificationHandler.MarkAsRead)

	// Deliveries
	app.Get("/getDeliveryOptions", deps.DeliveryHandler.GetDeliveryOptions)

	// Course learning
	app.Get("/getCoursAchetes", deps.LearningHandler.GetCoursAchetes)
	app.Get("/getProgressionCours", deps.LearningHandler.GetProgressionCours)
	app.Get("/getSeniorDashboardData", deps.LearningHandler.GetSeniorDashboardData)
	app.Post("/acheterCours", deps.LearningHandler.AcheterCours)
	app.Post("/enregistrerReponseQuiz", deps.LearningHandler.EnregistrerReponseQuiz)

	// Health & default ping
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/", handlers.Ping("coursiva"))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "action inconnue"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
