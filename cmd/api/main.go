package main

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frederic5962/bill-app/internal/auth"
	"github.com/frederic5962/bill-app/internal/bills"
	"github.com/frederic5962/bill-app/internal/config"
	apphttp "github.com/frederic5962/bill-app/internal/http"
	"github.com/frederic5962/bill-app/internal/kv"
	"github.com/frederic5962/bill-app/internal/newbill"
	"github.com/frederic5962/bill-app/internal/reports"
	"github.com/frederic5962/bill-app/internal/router"
	"github.com/frederic5962/bill-app/internal/routes"
	"github.com/frederic5962/bill-app/internal/session"
	"github.com/frederic5962/bill-app/internal/store"
	"github.com/frederic5962/bill-app/internal/summary"
)

func main() {
	cfg := config.Load()

	var sessions kv.Store
	if cfg.RedisURL != "" {
		redisStore, err := kv.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting redis: %v", err)
		}
		defer redisStore.Close()
		sessions = redisStore
	} else {
		sessions = kv.NewMemory()
	}

	// The remote store is optional: without it the core flows
	// short-circuit instead of failing.
	var remote store.Remote
	if cfg.RemoteStoreURL != "" {
		remote = store.NewClient(cfg.RemoteStoreURL, sessions)
	} else {
		log.Println("REMOTE_STORE_URL not set, running without a remote store")
	}

	nav := &routes.Navigator{
		OnNavigate: func(path string) {
			log.Printf("navigate -> %s", path)
		},
	}

	sessionManager := session.NewManager(remote, sessions, nav)
	billsService := bills.NewService(remote)
	workflow := newbill.NewWorkflow(remote, sessionManager, nav)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	r := &router.Router{
		SessionHandler: &apphttp.SessionHandler{Manager: sessionManager},
		BillsHandler:   apphttp.NewBillsHandler(billsService, workflow),
		SummaryHandler: &summary.Handler{Bills: billsService},
		ReportsHandler: reports.NewHandler(billsService),
		SessionMW:      auth.SessionGate(sessions, []byte(cfg.JWTSecret)),
		AdminMW:        auth.RequireAdmin(),
	}
	r.RegisterRoutes(app)

	log.Println("Listening on port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
