package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/passvault/internal/dbx"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-b", "postgres", "-d", "postgres://localhost/vault",
				"-k", "/etc/passvault/master.key", "-s", "secret",
				"-t", "15", "-r", "12",
			},
			expected: &Config{
				BackendKind:                  dbx.KindPostgres,
				DatabaseDSN:                  "postgres://localhost/vault",
				KeyFilePath:                  "/etc/passvault/master.key",
				SessionSecret:                "secret",
				SessionTokenValidityDuration: 15 * time.Minute,
				ResetCodeValidityDuration:    12 * time.Hour,
			},
		},
		{
			name: "no flags keeps defaults",
			args: []string{"cmd"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				return c
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}
			config.LoadDefaults()

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
