// Package db opens the shared GORM database connection.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "finance_backend/internal/feature/auth/adapters"
	authentity "finance_backend/internal/feature/auth/domain/entity"
	ledgerentity "finance_backend/internal/feature/ledger/domain/entity"
)

// OpenDB connects to PostgreSQL using the DB_* environment variables,
// retrying for up to a minute while the database comes up. Driver errors
// are translated to gorm sentinels so adapters can match
// gorm.ErrDuplicatedKey alongside the raw pgconn codes.
func OpenDB() *gorm.DB {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, pass, name)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&ledgerentity.Entry{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
