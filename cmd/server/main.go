package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"finance_backend/internal/app/di"
	"finance_backend/internal/app/router"
	authadapters "finance_backend/internal/feature/auth/adapters"
	authhandler "finance_backend/internal/feature/auth/transport/handler"
	authusecase "finance_backend/internal/feature/auth/usecase"
	ledgerhandler "finance_backend/internal/feature/ledger/transport/handler"
	ledgerusecase "finance_backend/internal/feature/ledger/usecase"
	"finance_backend/internal/platform/db"
	jwtmw "finance_backend/internal/platform/jwt"
	"finance_backend/internal/platform/redis"
)

const (
	accessTokenTTL      = 15 * time.Minute
	refreshTokenTTL     = 30 * 24 * time.Hour
	balanceCacheTTL     = 5 * time.Minute
	sessionCleanupEvery = time.Hour
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	gormDB := db.OpenDB()

	// Redis (optional: sessions fall back to the DB, balance cache is skipped)
	var rdb *redisv9.Client
	if tmp, err := redis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(gormDB)
	sessionRepo := di.NewSessionRepository(rdb, gormDB)
	entryRepo := di.NewEntryRepository(rdb, gormDB, balanceCacheTTL)

	// Expired sessions pile up in the DB-backed store; Redis expires its own.
	go func() {
		ticker := time.NewTicker(sessionCleanupEvery)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := sessionRepo.DeleteExpired(context.Background()); err != nil {
				log.Println("[ERROR] Session cleanup failed:", err)
			} else if n > 0 {
				log.Printf("[INFO] Removed %d expired sessions", n)
			}
		}
	}()

	// Usecase
	jwtGen := jwtmw.NewGenerator(secret, accessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, accessTokenTTL, refreshTokenTTL)
	entryUC := ledgerusecase.NewEntryUsecase(entryRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	entryH := ledgerhandler.NewEntryHandler(entryUC)

	r := router.NewRouter(authH, entryH, jwtGen)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
