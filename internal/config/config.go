package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the API explorer.
type Config struct {
	// Base URLs for API endpoints (configurable for testing)
	JSONPlaceholderBaseURL string `mapstructure:"jsonplaceholder_base_url"`
	OpenMeteoBaseURL       string `mapstructure:"openmeteo_base_url"`
	CoinPaprikaBaseURL     string `mapstructure:"coinpaprika_base_url"`

	// Fetcher settings
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`

	// Where the sample POST response is written
	OutputFile string `mapstructure:"output_file"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// Optional, only read so that it can be reported; no lesson calls OpenWeatherMap.
	OpenWeatherAPIKey string `mapstructure:"openweather_api_key"`
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("apiexplorer", pflag.ContinueOnError)
	fs.Duration("timeout", 5*time.Second, "per-attempt request timeout")
	fs.Int("retries", 3, "maximum attempts per request")
	fs.Duration("retry-delay", time.Second, "fixed delay between attempts")
	fs.String("output", "post_response.json", "file the sample POST response is saved to")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "optional file receiving a copy of the logs")
	fs.String("config", "", "path to a config file")
	return fs
}

// Load reads configuration from defaults, an optional config file, environment
// variables and flags. Later sources take precedence.
//
// Environment variables:
//   - JSONPLACEHOLDER_BASE_URL, OPENMETEO_BASE_URL, COINPAPRIKA_BASE_URL
//   - REQUEST_TIMEOUT, MAX_ATTEMPTS, RETRY_DELAY
//   - OUTPUT_FILE, LOG_LEVEL, LOG_FILE
//   - OPENWEATHER_API_KEY (optional)
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("jsonplaceholder_base_url", "https://jsonplaceholder.typicode.com")
	v.SetDefault("openmeteo_base_url", "https://api.open-meteo.com/v1")
	v.SetDefault("coinpaprika_base_url", "https://api.coinpaprika.com/v1")
	v.SetDefault("request_timeout", 5*time.Second)
	v.SetDefault("max_attempts", 3)
	v.SetDefault("retry_delay", time.Second)
	v.SetDefault("output_file", "post_response.json")
	v.SetDefault("log_level", "info")

	v.SetConfigType("yaml")
	if path := flagString(fs, "config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.apiexplorer")
		// Read config file (ignore if not found)
		_ = v.ReadInConfig()
	}

	v.AutomaticEnv()
	for _, key := range []string{
		"jsonplaceholder_base_url",
		"openmeteo_base_url",
		"coinpaprika_base_url",
		"request_timeout",
		"max_attempts",
		"retry_delay",
		"output_file",
		"log_level",
		"log_file",
		"openweather_api_key",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if fs != nil {
		for flag, key := range map[string]string{
			"timeout":     "request_timeout",
			"retries":     "max_attempts",
			"retry-delay": "retry_delay",
			"output":      "output_file",
			"log-level":   "log_level",
			"log-file":    "log_file",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	var problems []string
	if c.MaxAttempts < 1 {
		problems = append(problems, "max_attempts must be at least 1")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "request_timeout must be positive")
	}
	if c.RetryDelay < 0 {
		problems = append(problems, "retry_delay must not be negative")
	}
	if c.JSONPlaceholderBaseURL == "" {
		problems = append(problems, "jsonplaceholder_base_url must not be empty")
	}
	if c.OpenMeteoBaseURL == "" {
		problems = append(problems, "openmeteo_base_url must not be empty")
	}
	if c.CoinPaprikaBaseURL == "" {
		problems = append(problems, "coinpaprika_base_url must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

func flagString(fs *pflag.FlagSet, name string) string {
	if fs == nil || fs.Lookup(name) == nil {
		return ""
	}
	s, _ := fs.GetString(name)
	return s
}
