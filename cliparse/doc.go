// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - SessionSecret: Secret for session token signing (required)
  - AgentAddress: Fallback agent address, always authorized
  - RatesFile: Optional reward rate table YAML file

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-session-secret  Session signing secret
	-agent-address   Fallback agent address
	-rates           Reward rate file

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	SESSION_SECRET    → -session-secret
	AGENT_ADDRESS     → -agent-address
	REWARD_RATES_FILE → -rates

CLI flags take precedence over environment variables. AGENT_ADDRESS falls
back to the built-in DefaultAgentAddress when unset.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
