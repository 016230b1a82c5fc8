// Command authctl is the operator tool for the identity service: it applies
// the store schema and exercises registration, login and token verification
// against the configured database.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/discoteque/identity/auth"
	"github.com/discoteque/identity/config"
	"github.com/discoteque/identity/internal/logging"
	"github.com/discoteque/identity/migrations"
	"github.com/discoteque/identity/password"
	"github.com/discoteque/identity/token"
	"github.com/discoteque/identity/users"
)

const usage = `Usage: authctl <command> [arguments] [flags]

Commands:
  migrate                       apply store schema migrations
  register <username> [email]   create a user and print an identity token
  login <username>              verify credentials and print an identity token
  verify <token>                check a token and print its claims

Flags (also settable via -c/-config JSON file):
  -d string   database DSN
  -s string   token signing secret
  -i string   token issuer
  -a string   token audience
  -t int      token validity, minutes

The password for register and login is read from the terminal without echo.
`

func main() {
	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if len(os.Args) < 2 || os.Args[1] == "help" || os.Args[1] == "-h" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := positionals(os.Args[2:])

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, command, args, cfg, logger); err != nil {
		logger.Error(ctx, "command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, cfg *config.Config, logger logging.Logger) error {
	signer, err := token.NewSigner([]byte(cfg.SecretKey), cfg.Issuer, cfg.Audience, cfg.TokenValidityDuration)
	if err != nil {
		return err
	}

	// verify needs no store
	if command == "verify" {
		if len(args) != 1 {
			return errors.New("usage: authctl verify <token>")
		}
		claims, err := signer.Parse(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("subject=%s role=%s expires=%s\n",
			claims.Subject, claims.Role, claims.ExpiresAt.Time.Format(time.RFC3339))
		return nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	if command == "migrate" {
		if err := migrations.Run(ctx, db); err != nil {
			return err
		}
		logger.Info(ctx, "migrations applied")
		return nil
	}

	service := auth.NewService(users.NewPostgresRepository(db), password.NewArgon2idHasher(), signer, logger)

	switch command {
	case "register":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: authctl register <username> [email]")
		}
		email := ""
		if len(args) == 2 {
			email = args[1]
		}
		pw, err := readPassword()
		if err != nil {
			return err
		}
		resp, err := service.Register(ctx, auth.RegisterRequest{Username: args[0], Email: email, Password: pw})
		if err != nil {
			return err
		}
		fmt.Printf("username=%s role=%s\ntoken=%s\n", resp.Username, resp.Role, resp.Token)
		return nil

	case "login":
		if len(args) != 1 {
			return errors.New("usage: authctl login <username>")
		}
		pw, err := readPassword()
		if err != nil {
			return err
		}
		resp, err := service.Login(ctx, auth.LoginRequest{Username: args[0], Password: pw})
		if err != nil {
			return err
		}
		fmt.Printf("username=%s role=%s\ntoken=%s\n", resp.Username, resp.Role, resp.Token)
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// positionals returns the leading non-flag arguments; configuration flags
// follow the positional arguments and are handled by the config package.
func positionals(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			break
		}
		out = append(out, arg)
	}
	return out
}

// readPassword prompts for a password on the controlling terminal without
// echoing it.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
