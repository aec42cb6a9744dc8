package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frederic5962/bill-app/internal/config"
	"github.com/frederic5962/bill-app/internal/devstore"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

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

	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	h := &devstore.Handler{
		Repo:      devstore.NewRepository(pool),
		Secret:    []byte(cfg.JWTSecret),
		UploadDir: cfg.UploadDir,
		BaseURL:   "http://localhost:" + cfg.Port,
	}

	app.Post("/auth/login", h.Login)
	app.Post("/users", h.CreateUser)
	app.Get("/bills", h.ListBills)
	app.Post("/bills", h.CreateBill)
	app.Patch("/bills/:id", h.UpdateBill)
	app.Static("/files", cfg.UploadDir)

	log.Println("Dev store listening on port", cfg.Port)
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
