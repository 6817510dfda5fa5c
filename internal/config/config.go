package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/vnme1/subscription-tracker/internal/subscription"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"subscription-tracker"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"subtracker"`
	}

	Server struct {
		Timeout       time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		UploadMaxSize int64         `envconfig:"UPLOAD_MAX_SIZE" default:"10485760"` // 10MB
	}

	Detector struct {
		MinOccurrence   int     `envconfig:"DETECTOR_MIN_OCCURRENCE" default:"2"`
		AmountTolerance float64 `envconfig:"DETECTOR_AMOUNT_TOLERANCE" default:"5.0"`
		MaxDayVariance  int     `envconfig:"DETECTOR_MAX_DAY_VARIANCE" default:"5"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// DetectorConfig maps the env settings onto the detection thresholds.
func (c *Config) DetectorConfig() subscription.Config {
	return subscription.Config{
		MinOccurrence:   c.Detector.MinOccurrence,
		AmountTolerance: c.Detector.AmountTolerance,
		MaxDayVariance:  c.Detector.MaxDayVariance,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
