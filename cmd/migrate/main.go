// Command migrate applies the SQL files under migrations/ in order, tracking
// applied versions in a schema_migrations table. With -seed-admin it also
// creates the first admin user from ADMIN_USERNAME / ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/infrastructure/postgres"
	"github.com/tijara-app/tijara-api/pkg/config"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

func main() {
	var (
		dir       string
		seedAdmin bool
	)
	flag.StringVar(&dir, "path", "migrations", "directory with .sql migration files")
	flag.BoolVar(&seedAdmin, "seed-admin", false, "create the initial admin user from ADMIN_USERNAME/ADMIN_PASSWORD")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		log.Fatal().Err(err).Msg("create schema_migrations")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		log.Fatal().Err(err).Msg("list migrations")
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			log.Fatal().Err(err).Str("version", version).Msg("check migration")
		}
		if exists {
			continue
		}

		sqlText, err := os.ReadFile(file)
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("read migration")
		}
		if _, err := pool.Exec(ctx, string(sqlText)); err != nil {
			log.Fatal().Err(err).Str("version", version).Msg("apply migration")
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			log.Fatal().Err(err).Str("version", version).Msg("record migration")
		}
		log.Info().Str("version", version).Msg("migration applied")
		applied++
	}
	log.Info().Int("applied", applied).Int("total", len(files)).Msg("migrations done")

	if seedAdmin {
		if err := createAdmin(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("seed admin user")
		}
		log.Info().Msg("admin user ready")
	}
}

func createAdmin(ctx context.Context, pool postgres.Querier) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin"
	}

	users := postgres.NewUserRepository(pool)
	if existing, err := users.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil // already seeded
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return users.Create(ctx, &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         "admin",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
