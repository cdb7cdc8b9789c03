package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/fbraem/kwai/internal/app/api"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/observability"
)

const usage = `usage: identity <command> [flags]

commands:
  create   create a user account without an invitation
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	switch os.Args[1] {
	case "create":
		os.Exit(create(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func create(args []string) int {
	flags := flag.NewFlagSet("create", flag.ExitOnError)
	email := flags.String("email", "", "email address of the user")
	firstName := flags.String("first-name", "", "first name of the user")
	lastName := flags.String("last-name", "", "last name of the user")
	password := flags.String("password", "", "password of the user")
	remark := flags.String("remark", "This user was created using the CLI", "remark stored with the user")
	_ = flags.Parse(args)

	ctx := context.Background()
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.Observability.ServiceName = "kwai-identity"
	instruments, shutdown, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	logger := instruments.Logger

	db, closeDB, err := api.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		return 1
	}
	defer closeDB()

	identity, err := api.NewIdentityService(cfg, db, nil, instruments)
	if err != nil {
		logger.Error("failed to build identity service", slog.String("error", err.Error()))
		return 1
	}
	account, err := identity.CreateUser(ctx, ports.CreateUserCommand{
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Password:  *password,
		Remark:    *remark,
	})
	if err != nil {
		logger.Error("failed to create user", slog.String("email", *email), slog.String("error", err.Error()))
		return 1
	}
	logger.Info("user created", slog.String("uuid", account.UUID.String()), slog.String("email", account.Email.String()))
	return 0
}
