// Command promote creates the first manager account, or promotes an existing
// account to manager and resets its password.
//
// Usage:
//
//	promote --email=boss@example.com --password=secret123 [--name="Store Boss"]
//
// Reads the same environment as the server (DATABASE_DSN is required).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/inventory-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/inventory-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/inventory-backend/internal/app"
	"github.com/heartmarshall/inventory-backend/internal/config"
	usersvc "github.com/heartmarshall/inventory-backend/internal/service/user"
)

func main() {
	email := flag.String("email", "", "email of the manager account")
	password := flag.String("password", "", "password to set (min 8 characters)")
	name := flag.String("name", "", "full name for a newly created account")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com --password=secret123 [--name=NAME]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	svc := usersvc.NewService(logger, userrepo.New(pool), postgres.NewTxManager(pool), cfg.Auth.BcryptCost)

	var fullName *string
	if n := strings.TrimSpace(*name); n != "" {
		fullName = &n
	}

	user, created, err := svc.BootstrapManager(ctx, usersvc.BootstrapInput{
		Email:    *email,
		Password: *password,
		FullName: fullName,
	})
	if err != nil {
		logger.Error("bootstrap manager", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if created {
		fmt.Printf("Manager %q created (id %s).\n", user.Email, user.ID)
		return
	}
	fmt.Printf("User %q promoted to manager.\n", user.Email)
}
