package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   backend kind: sqlite, postgres or mysql
//	-d string   database DSN
//	-k string   encryption key file path
//	-s string   session token HMAC secret
//	-t int      session token validity, minutes
//	-r int      reset code validity, hours
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-k", "-s", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	backend := fs.String("b", string(config.BackendKind), "storage backend (sqlite|postgres|mysql)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.KeyFilePath, "k", config.KeyFilePath, "encryption key file path")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session token secret")

	sessionValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session_token_validity_duration (in minutes)")
	resetValidity := fs.Int("r", int(config.ResetCodeValidityDuration.Hours()), "reset_code_validity_duration (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.BackendKind = dbx.Kind(*backend)
	config.SessionTokenValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.ResetCodeValidityDuration = time.Duration(*resetValidity) * time.Hour
}
