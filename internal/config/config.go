package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wavesight/earnings-service/internal/rewards"
)

// Config holds the application configuration
type Config struct {
	Port           int
	LogLevel       string
	LogFormat      string
	Environment    string
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	LogDir         string
	APIKey         string // API key for authentication
	TrustedProxies []string

	// Event publisher retry behavior
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Connection pool tuning
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Earnings limits, overridable per deployment
	MaxSingleSubmission float64
	MaxDailyEarnings    float64
	MinCashout          float64
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "wavesight"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		APIKey:      getEnv("API_KEY", ""),
	}

	cfg.EventMaxRetries = getEnvAsInt("EVENT_MAX_RETRIES", 0)
	cfg.EventRetryDelay = getEnvAsDuration("EVENT_RETRY_DELAY", 0)
	cfg.EventDeadLetterPath = getEnv("EVENT_DEADLETTER_PATH", "")

	cfg.DBMaxConns = getEnvAsInt("DB_MAX_CONNS", 20)
	cfg.DBMaxConnIdleTime = getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)
	cfg.DBMaxConnLifetime = getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute)

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	cfg.MaxSingleSubmission, err = getEnvFloat(EnvMaxSingleSubmission, rewards.DefaultMaxSingleSubmission)
	if err != nil {
		return nil, err
	}
	cfg.MaxDailyEarnings, err = getEnvFloat(EnvMaxDailyEarnings, rewards.DefaultMaxDailyEarnings)
	if err != nil {
		return nil, err
	}
	cfg.MinCashout, err = getEnvFloat(EnvMinCashout, rewards.DefaultMinCashout)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// Ruleset builds the reward ruleset with this deployment's limit overrides.
func (c *Config) Ruleset() rewards.Ruleset {
	rules := rewards.DefaultRuleset()
	rules.MaxSingleSubmission = c.MaxSingleSubmission
	rules.MaxDailyEarnings = c.MaxDailyEarnings
	rules.MinCashout = c.MinCashout
	return rules
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer environment variable, falling back to the
// default on absence or garbage.
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a duration environment variable ("30s", "5m"),
// falling back to the default on absence or garbage.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvFloat parses a float environment variable, failing loudly on garbage
// so a typo'd limit never silently reverts to the default.
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return f, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
