package database

import (
	"context"
	"log"
	"time"

	"croppulse/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the global Postgres connection pool.
var Pool *pgxpool.Pool

// InitDB initializes the Postgres connection pool.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to create Postgres pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to ping Postgres: %v", err)
	}
	Pool = pool
	log.Println("Connected to Postgres successfully!")
}

// GetPool returns the global pool, initializing it on first use.
func GetPool() *pgxpool.Pool {
	if Pool == nil {
		InitDB()
	}
	return Pool
}
