package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Closure is a recurring date on which the organization is closed and no shifts are generated
type Closure struct {
	RRule  string `yaml:"rrule" validate:"required"`
	Reason string `yaml:"reason,omitempty"`
}

// DatabaseConfig selects and locates the persistence backend
type DatabaseConfig struct {
	Driver     string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	URL        string `yaml:"url,omitempty" validate:"required_if=Driver postgres"`
	SQLitePath string `yaml:"sqlitePath,omitempty" validate:"required_if=Driver sqlite"`
}

// SchedulerConfig holds defaults for scheduling runs that callers may override per run
type SchedulerConfig struct {
	MaxHoursPerEmployee float64 `yaml:"maxHoursPerEmployee,omitempty" validate:"gte=0"`
	RespectAvailability *bool   `yaml:"respectAvailability,omitempty"`

	// Timezone is the IANA zone week dates and shift times are built in
	Timezone string `yaml:"timezone,omitempty"`
}

// ComplianceConfig holds the working-time limits. A zero limit disables its rule.
type ComplianceConfig struct {
	MaxShiftHours  float64 `yaml:"maxShiftHours" validate:"gte=0"`
	MaxDailyHours  float64 `yaml:"maxDailyHours" validate:"gte=0"`
	MaxWeeklyHours float64 `yaml:"maxWeeklyHours" validate:"gte=0"`
	MinRestHours   float64 `yaml:"minRestHours" validate:"gte=0,lte=24"`
}

// RedisConfig enables the run lock when Addr is set
type RedisConfig struct {
	Addr     string        `yaml:"addr,omitempty"`
	Password string        `yaml:"password,omitempty"`
	LockTTL  time.Duration `yaml:"lockTTL,omitempty" validate:"gte=0"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig    `yaml:"database"`
	Scheduler  SchedulerConfig   `yaml:"scheduler,omitempty"`
	Compliance *ComplianceConfig `yaml:"compliance,omitempty"`
	Closures   []Closure         `yaml:"closures,omitempty" validate:"dive"`
	Redis      RedisConfig       `yaml:"redis,omitempty"`
	Server     ServerConfig      `yaml:"server,omitempty"`
}

// DefaultServerAddr is used when server.addr is not set
const DefaultServerAddr = ":8080"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// RespectAvailability returns the configured default, true when unset
func (c *Config) RespectAvailability() bool {
	return c.Scheduler.RespectAvailability == nil || *c.Scheduler.RespectAvailability
}

// Location returns the configured scheduling time zone, UTC when unset
func (c *Config) Location() *time.Location {
	if c.Scheduler.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		// Validate has already rejected unknown zones
		return time.UTC
	}
	return loc
}

// LoadWithEnv loads scheduler_config.<env>.yaml.
// It looks for the config file in the current directory first, then in the user's home directory.
// A .env file in the current directory is loaded into the environment first if present.
func LoadWithEnv(env string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	configPath, err := findConfigFile(fmt.Sprintf("scheduler_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// DATABASE_URL, REDIS_ADDR and REDIS_PASSWORD override the file when set.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
}

// Validate validates the configuration struct, the time zone and closure rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Scheduler.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Scheduler.Timezone); err != nil {
			return fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Scheduler.Timezone, err)
		}
	}

	for i, closure := range cfg.Closures {
		if _, err := rrule.StrToRRule(closure.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closures[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
