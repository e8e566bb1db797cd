package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"coursiva/internal/config"
	"coursiva/internal/http/handlers"
	"coursiva/internal/repos"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db, config.Config{})

	app := fiber.New()
	app.Post("/creerCompteClient", deps.AccountHandler.CreerCompteClient)
	app.Post("/connecterClient", deps.AccountHandler.ConnecterClient)
	app.Post("/updateProfile", deps.AccountHandler.UpdateProfile)
	app.Post("/logClientEvent", deps.AccountHandler.LogClientEvent)
	app.Get("/getAppLogs", deps.AccountHandler.GetAppLogs)
	app.Post("/enregistrerCommande", deps.OrderHandler.EnregistrerCommande)
	app.Get("/getNotifications", deps.NotificationHandler.GetNotifications)
	app.Post("/createNotification", deps.NotificationHandler.CreateNotification)
	app.Post("/markAsRead", deps.NotificationHandler.MarkAsRead)
	app.Get("/getDeliveryOptions", deps.DeliveryHandler.GetDeliveryOptions)
	app.Get("/getCoursAchetes", deps.LearningHandler.GetCoursAchetes)
	app.Post("/acheterCours", deps.LearningHandler.AcheterCours)
	app.Get("/getSeniorDashboardData", deps.LearningHandler.GetSeniorDashboardData)
	return app
}

type envelope struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data"`
	Error        string          `json:"error"`
	CacheVersion string          `json:"cacheVersion"`
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) envelope {
	t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s: decode: %v", path, err)
	}
	return env
}

func getJSON(t *testing.T, app *fiber.App, path string) envelope {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s: decode: %v", path, err)
	}
	return env
}

func TestCreateAccountAndLogin(t *testing.T) {
	app := newApp(t)

	env := postJSON(t, app, "/creerCompteClient", map[string]string{
		"email": "marie@coursiva.test", "name": "Marie", "password": "Passw0rd!",
	})
	if !env.Success {
		t.Fatalf("create failed: %s", env.Error)
	}

	// duplicate stays a handled envelope error, not a 500
	env = postJSON(t, app, "/creerCompteClient", map[string]string{
		"email": "marie@coursiva.test", "name": "Marie bis", "password": "Passw0rd!",
	})
	if env.Success || env.Error == "" {
		t.Fatalf("duplicate email must fail in the envelope: %+v", env)
	}

	env = postJSON(t, app, "/connecterClient", map[string]string{
		"email": "marie@coursiva.test", "password": "Passw0rd!",
	})
	if !env.Success {
		t.Fatalf("login failed: %s", env.Error)
	}

	env = postJSON(t, app, "/connecterClient", map[string]string{
		"email": "marie@coursiva.test", "password": "nope",
	})
	if env.Success {
		t.Fatal("bad password must fail")
	}
}

func TestCreateAccount_Validation(t *testing.T) {
	app := newApp(t)

	env := postJSON(t, app, "/creerCompteClient", map[string]string{
		"email": "pas-un-email", "name": "X", "password": "Passw0rd!",
	})
	if env.Success {
		t.Fatal("bad email must fail")
	}
	env = postJSON(t, app, "/creerCompteClient", map[string]string{
		"email": "ok@coursiva.test", "name": "X", "password": "court",
	})
	if env.Success {
		t.Fatal("weak password must fail")
	}
}

func TestClientEventLogging(t *testing.T) {
	app := newApp(t)

	env := postJSON(t, app, "/logClientEvent", map[string]string{
		"email": "marie@coursiva.test", "event": "page.view", "detail": "catalog",
	})
	if !env.Success {
		t.Fatalf("log event failed: %s", env.Error)
	}
	env = postJSON(t, app, "/logClientEvent", map[string]string{"email": "x@y.test"})
	if env.Success {
		t.Fatal("missing event name must fail")
	}

	env = getJSON(t, app, "/getAppLogs")
	if !env.Success {
		t.Fatalf("getAppLogs failed: %s", env.Error)
	}
	var logs []map[string]any
	if err := json.Unmarshal(env.Data, &logs); err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0]["event"] != "page.view" {
		t.Fatalf("unexpected logs: %v", logs)
	}
}

func TestOrderAndNotificationsFlow(t *testing.T) {
	app := newApp(t)

	env := postJSON(t, app, "/enregistrerCommande", map[string]any{
		"name": "Jeanne", "email": "jeanne@coursiva.test", "deliveryMode": "standard",
		"items": []map[string]any{{"productId": "c-001", "label": "Backend", "qty": 1, "price": 49}},
	})
	if !env.Success {
		t.Fatalf("order failed: %s", env.Error)
	}

	env = postJSON(t, app, "/createNotification", map[string]string{
		"email": "jeanne@coursiva.test", "title": "Commande enregistree",
	})
	if !env.Success {
		t.Fatalf("notification create failed: %s", env.Error)
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &created)

	env = getJSON(t, app, "/getNotifications?email=jeanne@coursiva.test")
	var notifs []map[string]any
	_ = json.Unmarshal(env.Data, &notifs)
	if len(notifs) != 1 {
		t.Fatalf("want 1 notification, got %d", len(notifs))
	}

	env = postJSON(t, app, "/markAsRead", map[string]string{"id": created.ID})
	if !env.Success {
		t.Fatalf("markAsRead failed: %s", env.Error)
	}

	env = getJSON(t, app, "/getSeniorDashboardData?email=jeanne@coursiva.test")
	if !env.Success {
		t.Fatalf("dashboard failed: %s", env.Error)
	}
	var dash struct {
		UnreadCount int `json:"unreadCount"`
	}
	_ = json.Unmarshal(env.Data, &dash)
	if dash.UnreadCount != 0 {
		t.Fatalf("want 0 unread after markAsRead, got %d", dash.UnreadCount)
	}
}

func TestDeliveryOptionsSeeded(t *testing.T) {
	app := newApp(t)

	env := getJSON(t, app, "/getDeliveryOptions")
	if !env.Success {
		t.Fatalf("delivery options failed: %s", env.Error)
	}
	var data struct {
		Options  []map[string]any `json:"options"`
		FreeOver float64          `json:"freeOver"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Options) == 0 {
		t.Fatal("want seeded delivery options")
	}
	if data.FreeOver != 50 {
		t.Fatalf("want default freeOver 50, got %v", data.FreeOver)
	}
}

func TestPurchaseIdempotent(t *testing.T) {
	app := newApp(t)

	buy := map[string]string{"email": "p@coursiva.test", "courseId": "c-001", "courseName": "Backend"}
	if env := postJSON(t, app, "/acheterCours", buy); !env.Success {
		t.Fatalf("buy failed: %s", env.Error)
	}
	if env := postJSON(t, app, "/acheterCours", buy); !env.Success {
		t.Fatalf("second buy must be a no-op, got: %s", env.Error)
	}

	env := getJSON(t, app, "/getCoursAchetes?email=p@coursiva.test")
	var purchases []map[string]any
	_ = json.Unmarshal(env.Data, &purchases)
	if len(purchases) != 1 {
		t.Fatalf("want 1 purchase, got %d", len(purchases))
	}
}
