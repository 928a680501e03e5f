// Command provision creates or updates an API credential in the database.
// It refuses to overwrite an existing credential unless -force is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"attrisk/internal/auth"
	"attrisk/internal/platform/config"
	"attrisk/internal/platform/logger"
	"attrisk/internal/platform/postgres"
	"attrisk/pkg/platform/sentinel"
)

func main() {
	var (
		username = flag.String("username", os.Getenv("API_USERNAME"), "credential username")
		password = flag.String("password", os.Getenv("API_PASSWORD"), "credential password")
		force    = flag.Bool("force", false, "overwrite an existing credential")
	)
	flag.Parse()

	log := logger.New()
	if err := run(*username, *password, *force); err != nil {
		log.Error("provisioning failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("credential provisioned", "username", *username)
}

func run(username, password string, force bool) error {
	if username == "" || password == "" {
		return errors.New("username and password are required (flags or API_USERNAME/API_PASSWORD)")
	}

	cfg := config.FromEnv()
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	store := auth.NewPostgres(db)
	if !force {
		_, err := store.FindByUsername(ctx, username)
		switch {
		case err == nil:
			return fmt.Errorf("credential %q already exists, rerun with -force to overwrite", username)
		case !errors.Is(err, sentinel.ErrNotFound):
			return err
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return store.Upsert(ctx, auth.Credential{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
