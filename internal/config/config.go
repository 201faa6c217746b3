package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Vault       VaultConfig
	POS         POSConfig
	HRIS        HRISConfig
	Slack       SlackConfig
	Report      ReportConfig
	Recon       ReconConfig
	Environment EnvironmentConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration for the admin API
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type VaultConfig struct {
	Address    string
	Token      string
	Role       string
	MountPoint string
	SecretPath string
}

type POSConfig struct {
	Host        string
	AuthURL     string
	TimeoutSecs int
}

type HRISConfig struct {
	Host        string
	Tenant      string
	TimeoutSecs int
}

type SlackConfig struct {
	WebhookURL string
	Channel    string
}

type ReportConfig struct {
	OutputPath string
	BaseURL    string
}

// ReconConfig holds tunables for the reconciliation engine itself.
type ReconConfig struct {
	MaxConcurrentVenues int
	DefaultTimezone     string
	TraceEmployeeIDs    []string
}

// EnvironmentConfig is the resolved endpoint set for one deployment
// environment. It is computed once at startup from the environment
// selector; nothing downstream branches on the selector again.
type EnvironmentConfig struct {
	Name             string
	VaultAddress     string
	VaultMountPoint  string
	VaultSecretPath  string
	POSHost          string
	HRISHost         string
	ReportOutputPath string
}

// environments maps each recognized environment selector to its
// endpoint settings.
var environments = map[string]EnvironmentConfig{
	"prod": {
		Name:             "prod",
		VaultAddress:     "https://vault.venueops.io",
		VaultMountPoint:  "integrations",
		VaultSecretPath:  "sys-hris-api",
		POSHost:          "pos-sys-api.venueops.io",
		HRISHost:         "services1.hris.venueops.io",
		ReportOutputPath: "/var/reconciliation/reports",
	},
	"preprod": {
		Name:             "preprod",
		VaultAddress:     "https://vault.preprod.venueops.io",
		VaultMountPoint:  "integrations",
		VaultSecretPath:  "sys-hris-api",
		POSHost:          "pos-sys-api.preprod.venueops.io",
		HRISHost:         "impl-services1.hris.venueops.io",
		ReportOutputPath: "/var/reconciliation/reports",
	},
	"sandbox": {
		Name:             "sandbox",
		VaultAddress:     "https://vault.preprod.venueops.io",
		VaultMountPoint:  "integrations",
		VaultSecretPath:  "sys-hris-api",
		POSHost:          "pos-sys-api.preprod.venueops.io",
		HRISHost:         "impl-services1.hris.venueops.io",
		ReportOutputPath: "./reports",
	},
	"local": {
		Name:             "local",
		VaultAddress:     "https://vault.preprod.venueops.io",
		VaultMountPoint:  "integrations",
		VaultSecretPath:  "sys-hris-api",
		POSHost:          "pos-sys-api.preprod.venueops.io",
		HRISHost:         "services1.hris.venueops.io",
		ReportOutputPath: "./reports",
	},
}

// ResolveEnvironment returns the endpoint settings for the given
// environment selector.
func ResolveEnvironment(name string) (EnvironmentConfig, error) {
	env, ok := environments[name]
	if !ok {
		return EnvironmentConfig{}, fmt.Errorf("unrecognized environment %q (expected prod, preprod, sandbox or local)", name)
	}
	return env, nil
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	env, err := ResolveEnvironment(config.App.Env)
	if err != nil {
		return nil, err
	}
	config.Environment = env

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timecard_recon"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Vault = VaultConfig{
		Address:    getEnv("VAULT_ADDR", env.VaultAddress),
		Token:      getEnv("VAULT_TOKEN", ""),
		Role:       getEnv("VAULT_ROLE", "timecard-reconciliation"),
		MountPoint: getEnv("VAULT_MOUNT_POINT", env.VaultMountPoint),
		SecretPath: getEnv("VAULT_SECRET_PATH", env.VaultSecretPath),
	}

	posTimeout, err := strconv.Atoi(getEnv("POS_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid POS_TIMEOUT_SECONDS: %w", err)
	}

	config.POS = POSConfig{
		Host:        getEnv("POS_HOST", env.POSHost),
		AuthURL:     getEnv("POS_AUTH_URL", fmt.Sprintf("https://%s/authentication/v1/token", env.POSHost)),
		TimeoutSecs: posTimeout,
	}

	hrisTimeout, err := strconv.Atoi(getEnv("HRIS_TIMEOUT_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRIS_TIMEOUT_SECONDS: %w", err)
	}

	config.HRIS = HRISConfig{
		Host:        getEnv("HRIS_HOST", env.HRISHost),
		Tenant:      getEnv("HRIS_TENANT", "venueops"),
		TimeoutSecs: hrisTimeout,
	}

	config.Slack = SlackConfig{
		WebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		Channel:    getEnv("SLACK_CHANNEL", "#timecard-reconciliation"),
	}

	config.Report = ReportConfig{
		OutputPath: getEnv("REPORT_OUTPUT_PATH", env.ReportOutputPath),
		BaseURL:    getEnv("REPORT_BASE_URL", ""),
	}

	maxVenues, err := strconv.Atoi(getEnv("RECON_MAX_CONCURRENT_VENUES", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECON_MAX_CONCURRENT_VENUES: %w", err)
	}

	config.Recon = ReconConfig{
		MaxConcurrentVenues: maxVenues,
		DefaultTimezone:     getEnv("RECON_DEFAULT_TIMEZONE", "America/Chicago"),
		TraceEmployeeIDs:    getEnvSlice("RECON_TRACE_EMPLOYEE_IDS"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Recon.MaxConcurrentVenues < 1 {
		return fmt.Errorf("RECON_MAX_CONCURRENT_VENUES must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
