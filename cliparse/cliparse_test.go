// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("SESSION_SECRET", "test-secret")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.AgentAddress != DefaultAgentAddress {
		t.Errorf("expected default agent address, got %s", cfg.AgentAddress)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-session-secret", "s1"})
	if err == nil {
		t.Error("expected error for missing database URL")
	}
}

func TestParseFlags_MissingSessionSecret(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db"})
	if err == nil {
		t.Error("expected error for missing session secret")
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db", "-session-secret", "s1", "-t", "mysql"})
	if err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestParseFlags_CustomAgentAddress(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-session-secret", "s1", "-agent-address", "0xabc"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AgentAddress != "0xabc" {
		t.Errorf("expected agent address 0xabc, got %s", cfg.AgentAddress)
	}
}
