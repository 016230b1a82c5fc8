package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/discoteque/identity/internal/flagx"
)

// JsonConfig is the DTO for reading JSON configuration files. Token validity
// is expressed in minutes, matching the flag form; after unmarshalling the
// value is converted into the runtime Config's time.Duration.
type JsonConfig struct {
	DatabaseDSN          string `json:"database_dsn"`
	SecretKey            string `json:"secret_key"`
	Issuer               string `json:"issuer"`
	Audience             string `json:"audience"`
	TokenValidityMinutes int    `json:"token_validity_minutes"`
}

// parseJson overlays values from the JSON file named by the -c or -config
// flags onto cfg. When no flag is given, nothing is loaded. An unreadable or
// invalid file panics: startup must not continue on broken configuration.
// Zero-valued fields in the file leave the existing value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	applyJson(cfg, c)
}

func applyJson(cfg *Config, c *JsonConfig) {
	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.Issuer != "" {
		cfg.Issuer = c.Issuer
	}
	if c.Audience != "" {
		cfg.Audience = c.Audience
	}
	if c.TokenValidityMinutes != 0 {
		cfg.TokenValidityDuration = time.Duration(c.TokenValidityMinutes) * time.Minute
	}
}
