package handlers

import (
	"time"

	"coursiva/internal/config"
	"coursiva/internal/repos"
	"coursiva/internal/services"

	"github.com/jmoiron/sqlx"
)

// Deps wires the core backend (accounts, orders, notifications, deliveries,
// learning) the way cmd/coursiva mounts it.
type Deps struct {
	AccountHandler      *AccountHandler
	OrderHandler        *OrderHandler
	NotificationHandler *NotificationHandler
	DeliveryHandler     *DeliveryHandler
	LearningHandler     *LearningHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	notifRepo := repos.NewNotificationRepo(db)
	deliveryRepo := repos.NewDeliveryRepo(db)
	learningRepo := repos.NewLearningRepo(db)
	logRepo := repos.NewAppLogRepo(db)
	settings := config.NewSettings(repos.NewSettingsRepo(db), 10*time.Second)

	authSvc := &services.AuthService{Users: userRepo}
	orderSvc := services.NewOrderService(orderRepo)
	learningSvc := services.NewLearningService(learningRepo, notifRepo)

	return &Deps{
		AccountHandler:      &AccountHandler{Auth: authSvc, Logs: logRepo},
		OrderHandler:        &OrderHandler{Orders: orderSvc},
		NotificationHandler: &NotificationHandler{Repo: notifRepo},
		DeliveryHandler:     &DeliveryHandler{Repo: deliveryRepo, Settings: settings},
		LearningHandler:     &LearningHandler{Learning: learningSvc},
	}
}
