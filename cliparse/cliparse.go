// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// DefaultAgentAddress is the distinguished fallback agent: always authorized
// to verify collections regardless of registry contents. Documented
// exception, kept configurable so deployments can rotate it.
const DefaultAgentAddress = "0x009188c8eeC3d184735650CdeaF4A145C5FdfB44"

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	AgentAddress  string
	RatesFile     string
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ecoconnect", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets and tunables (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token signing secret (prefer env)")
	fs.StringVar(&cfg.AgentAddress, "agent-address", "", "Fallback agent address")
	fs.StringVar(&cfg.RatesFile, "rates", "", "Reward rate table YAML file (optional)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.AgentAddress == "" {
		cfg.AgentAddress = os.Getenv("AGENT_ADDRESS")
		if cfg.AgentAddress == "" {
			cfg.AgentAddress = DefaultAgentAddress
		}
	}

	if cfg.RatesFile == "" {
		cfg.RatesFile = os.Getenv("REWARD_RATES_FILE")
	}

	return cfg, nil
}
