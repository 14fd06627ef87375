package main

import (
	"context"
	"log"
	"os"

	"ecomcart/internal/config"
	"ecomcart/internal/db"
	"ecomcart/internal/migrate"
)

func main() {
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg := config.FromEnv()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}

	err = migrate.Apply(ctx, pool)
	pool.Close()
	if err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	logger.Println("schema up to date")
}
