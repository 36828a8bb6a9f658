package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryURL string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	OpenAI struct {
		APIKey  string        `env:"OPENAI_API_KEY"`
		BaseURL string        `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
		Model   string        `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
		Timeout time.Duration `env:"OPENAI_TIMEOUT" env-default:"20s"`
	}
	Twitter struct {
		BearerToken string        `env:"TWITTER_BEARER_TOKEN"`
		BaseURL     string        `env:"TWITTER_BASE_URL" env-default:"https://api.twitter.com/2"`
		Timeout     time.Duration `env:"TWITTER_TIMEOUT" env-default:"15s"`
	}
	Analytics struct {
		SweepEnabled  bool          `env:"ANALYTICS_SWEEP_ENABLED" env-default:"true"`
		SweepInterval time.Duration `env:"ANALYTICS_SWEEP_INTERVAL" env-default:"1h"`
	}
	Lifecycle struct {
		CatalogTimeout   time.Duration `env:"CATALOG_TIMEOUT" env-default:"5s"`
		GenerateTimeout  time.Duration `env:"GENERATE_TIMEOUT" env-default:"25s"`
		PublishTimeout   time.Duration `env:"PUBLISH_TIMEOUT" env-default:"20s"`
		CollectTimeout   time.Duration `env:"COLLECT_TIMEOUT" env-default:"10s"`
		VariationWorkers int           `env:"VARIATION_WORKERS" env-default:"3"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the postgres connection string in keyword format,
// used by the goose migration runner.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode)
}

// URL returns the postgres connection string in URL format for pgxpool.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name, c.Postgres.SslMode)
}
