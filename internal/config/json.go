package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/flagx"
	"github.com/dmitrijs2005/passvault/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "24h" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config.
type JsonConfig struct {
	BackendKind                  string         `json:"backend_kind"`
	DatabaseDSN                  string         `json:"database_dsn"`
	KeyFilePath                  string         `json:"key_file_path"`
	SessionSecret                string         `json:"session_secret"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	ResetCodeValidityDuration    timex.Duration `json:"reset_code_validity_duration"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no flag is given, nothing is
// loaded. Unreadable or invalid files panic: a half-applied config file is
// worse than a loud start-up failure.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.BackendKind != "" {
		config.BackendKind = dbx.Kind(c.BackendKind)
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.KeyFilePath != "" {
		config.KeyFilePath = c.KeyFilePath
	}
	if c.SessionSecret != "" {
		config.SessionSecret = c.SessionSecret
	}
	if c.SessionTokenValidityDuration.Duration != 0 {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.ResetCodeValidityDuration.Duration != 0 {
		config.ResetCodeValidityDuration = c.ResetCodeValidityDuration.Duration
	}
}
