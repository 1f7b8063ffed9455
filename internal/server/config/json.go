package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/flagx"
	"github.com/dmitrijs2005/opsapi/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Only fields
// present in the file override the running Config.
type JsonConfig struct {
	HTTPAddr              *string         `json:"http_addr"`
	GRPCHealthAddr        *string         `json:"grpc_health_addr"`
	DatabaseDriver        *string         `json:"database_driver"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	DefaultListLimit      *int            `json:"default_list_limit"`
	MaxListLimit          *int            `json:"max_list_limit"`
	LogBackend            *string         `json:"log_backend"`
	LogLevel              *string         `json:"log_level"`
	ShutdownTimeout       *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config in args, if any, and copies
// the fields it sets into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.TokenValidityDuration, c.TokenValidityDuration)
	setInt(&config.BcryptCost, c.BcryptCost)
	setInt(&config.DefaultListLimit, c.DefaultListLimit)
	setInt(&config.MaxListLimit, c.MaxListLimit)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = time.Duration(*v)
	}
}
