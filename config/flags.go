package config

import (
	"flag"
	"os"
	"time"

	"github.com/discoteque/identity/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-s string   token signing secret (HS256)
//	-i string   token issuer
//	-a string   token audience
//	-t int      token validity, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components (the -c/-config
// flags of the JSON overlay, subcommand flags of authctl).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-i", "-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	fs.StringVar(&cfg.Issuer, "i", cfg.Issuer, "token issuer")
	fs.StringVar(&cfg.Audience, "a", cfg.Audience, "token audience")

	tokenValidityMinutes := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidityMinutes) * time.Minute
}
