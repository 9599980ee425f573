package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Server struct {
		Port       int
		CORSOrigin string
	}

	// Public base URL used in email links (no trailing slash)
	AppBaseURL string

	// IANA timezone the business operates in
	Timezone string

	// Database Configuration
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	// SMTP Configuration
	SMTP struct {
		Host      string
		Port      int
		User      string
		Password  string
		FromName  string
		FromEmail string
	}

	// Rate Limiting Configuration
	RateLimit struct {
		Requests      int
		WindowMinutes int
	}
}

// LoadConfig loads the configuration from environment variables and config files
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/slotify/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - that's ok, we'll use env vars and defaults
	}

	v.SetEnvPrefix("SLOTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.corsorigin", "http://localhost:3000")

	v.SetDefault("appbaseurl", "http://localhost:3000")
	v.SetDefault("timezone", "Europe/Paris")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "slotify")
	v.SetDefault("database.sslmode", "disable")

	// SMTP defaults
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.fromname", "Slotify")

	// Rate limiting defaults
	v.SetDefault("ratelimit.requests", 20)
	v.SetDefault("ratelimit.windowminutes", 1)
}

// DBConnString builds the lib/pq connection string.
func (c *Config) DBConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// Location resolves the configured business timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
