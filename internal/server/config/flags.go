package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST API bind address (e.g. ":5000")
//	-g string   gRPC health bind address, empty disables it
//	-b string   database driver: "pgx" or "sqlite"
//	-d string   database DSN
//	-s string   token signing secret
//	-t int      token validity, hours
//	-k int      bcrypt cost
//	-m int      maximum operations per listing, 0 for no cap
//	-o string   log backend: "slog" or "logrus"
//	-l string   log level
//
// Arguments are filtered with flagx.FilterArgs first, so flags meant for
// other parsers (-c) do not cause errors here.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-b", "-d", "-s", "-t", "-k", "-m", "-o", "-l"})

	fs := flag.NewFlagSet("opsapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "REST API address")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address")
	fs.StringVar(&config.DatabaseDriver, "b", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")

	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.MaxListLimit, "m", config.MaxListLimit, "max operations per listing")
	fs.StringVar(&config.LogBackend, "o", config.LogBackend, "log backend (slog|logrus)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		}
	})

	return nil
}
