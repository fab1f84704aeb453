// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// --------------------------------------------------------------------------
// Collection and table names, matching the migrations
// --------------------------------------------------------------------------

const (
	FightersCollection      = "fighters"
	FighterImagesCollection = "fighter_images"
	EventsCollection        = "events"
	FightsCollection        = "fights"
)

const (
	PromotionTable     = "promotion"
	FighterTable       = "fighter"
	FighterRecordTable = "fighterrecord"
	EventTable         = "event"
	EventFightTable    = "eventfight"
	TimeFormatTable    = "timeformat"
	RefereeTable       = "referee"
	WeightClassTable   = "weightclass"
	TitleTable         = "title"
	FightTable         = "fight"
	TitleFightTable    = "titlefight"
	FightStatTable     = "fightstat"
	BonusTable         = "bonus"
	FightBonusTable    = "fightbonus"
	JudgeTable         = "judge"
	ScorecardTable     = "scorecard"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Document store
	MongoURI      string `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" required:"true"`

	// Relational store
	PostgresURI      string        `envconfig:"POSTGRES_URI" required:"true"`
	PostgresDatabase string        `envconfig:"POSTGRES_DATABASE" required:"true"`
	DBPoolMinConns   int           `envconfig:"DB_POOL_MIN_CONNS" default:"2"`
	DBPoolMaxConns   int           `envconfig:"DB_POOL_MAX_CONNS" default:"10"`
	DBPoolMaxLife    time.Duration `envconfig:"DB_POOL_MAX_LIFE" default:"30m"`

	// API server
	APIHost     string `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort     int    `envconfig:"API_PORT" default:"8000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"` // development, staging, production
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// CORS
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Rate limiting
	RateLimitEnabled  bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`

	// Cache
	CacheEnabled bool `envconfig:"CACHE_ENABLED" default:"true"`

	// Pipeline
	PipelineSchedule string `envconfig:"PIPELINE_SCHEDULE"` // cron spec; empty disables scheduled runs
	PipelineWorkers  int    `envconfig:"PIPELINE_WORKERS" default:"4"`
}

// Load reads .env if present, then the environment. A missing required
// variable is an error.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	for _, v := range []struct{ key, value string }{
		{"MONGODB_URI", c.MongoURI},
		{"MONGODB_DATABASE", c.MongoDatabase},
		{"POSTGRES_URI", c.PostgresURI},
		{"POSTGRES_DATABASE", c.PostgresDatabase},
	} {
		if strings.TrimSpace(v.value) == "" {
			return nil, fmt.Errorf("load config: %s must not be empty", v.key)
		}
	}
	if c.PipelineWorkers < 1 {
		c.PipelineWorkers = 1
	}
	return &c, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PostgresURL is the server URI joined with the database name.
func (c *Config) PostgresURL() string {
	return strings.TrimRight(c.PostgresURI, "/") + "/" + c.PostgresDatabase
}

// MigrateURL is PostgresURL with the scheme the pgx/v5 migrate driver
// registers.
func (c *Config) MigrateURL() (string, error) {
	u, err := url.Parse(c.PostgresURL())
	if err != nil {
		return "", fmt.Errorf("parse postgres url: %w", err)
	}
	u.Scheme = "pgx5"
	return u.String(), nil
}
