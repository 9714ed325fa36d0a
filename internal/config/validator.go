package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion pins the .env layout this build reads. Bumped
// whenever a variable is added or renamed so stale env files fail fast
// instead of starting the service half configured.
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must all be present before the service starts. The
// database settings cover the ledger store; API_KEY guards every earning
// endpoint.
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// ValidateEnv verifies the schema version and that every required
// variable is set.
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set, update your .env file (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s, your .env file is outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and additionally flags values
// copied straight from .env.example. Those are startup warnings rather
// than errors so local development still works out of the box.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD is the example value, set a real password")
	}

	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY is the example value, generate one with: openssl rand -hex 32")
	}

	return warnings, nil
}
