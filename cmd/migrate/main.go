package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frederic5962/bill-app/internal/config"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	sqlBytes, err := os.ReadFile("migrations/migrations.sql")
	if err != nil {
		log.Fatalf("error reading migrations file: %v", err)
	}

	log.Println("Applying migrations...")
	if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
		log.Fatalf("error applying migrations: %v", err)
	}

	log.Println("Migrations applied successfully")
}
