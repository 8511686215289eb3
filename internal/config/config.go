package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		Enabled   bool   `yaml:"enabled"`
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Classifier struct {
		APIKey         string  `yaml:"api_key"`
		BaseURL        string  `yaml:"base_url"`
		Model          string  `yaml:"model"`
		Debug          bool    `yaml:"debug"`
		TimeoutSeconds int64   `yaml:"timeout_seconds"`
		Temperature    float32 `yaml:"temperature"`
	} `yaml:"classifier"`
	Storage struct {
		Driver          string `yaml:"driver"` // "memory", "dynamodb" or "postgres"
		Table           string `yaml:"table"`
		Region          string `yaml:"region"`
		AccessKeyID     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
		PostgresURL     string `yaml:"postgres_url"`
	} `yaml:"storage"`
}

// LoadConfig reads configuration from the specified YAML file. Secrets may be
// supplied through the environment instead of the file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.Classifier.APIKey = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		config.Storage.AccessKeyID = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		config.Storage.SecretAccessKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}
	if config.Classifier.Model == "" {
		config.Classifier.Model = "gpt-4o-mini"
	}
	if config.Classifier.TimeoutSeconds <= 0 {
		config.Classifier.TimeoutSeconds = 30
	}
	if config.Classifier.Temperature <= 0 {
		config.Classifier.Temperature = 0.1
	}
	if config.Storage.Driver == "" {
		config.Storage.Driver = "memory"
	}
	if config.Storage.Region == "" {
		config.Storage.Region = "ap-northeast-1"
	}
	if config.Storage.Table == "" {
		config.Storage.Table = "carp-connect-moderation"
	}
}

// MockMode reports whether the classifier should run against the local
// deterministic substitute instead of the live model. Evaluated once at
// startup; the chosen mode stays fixed for the process lifetime.
func (c *Config) MockMode() bool {
	return c.Classifier.Debug || c.Classifier.APIKey == ""
}
