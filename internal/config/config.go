package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service    Service
	Slack      Slack
	Store      Store
	GitHub     GitHub
	S3         S3
	Redis      Redis
	SQS        SQS
	ClickHouse ClickHouse
	Worker     Worker
	Dashboard  Dashboard
}

type Service struct {
	Environment     string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	HealthCheckPort string `envconfig:"SERVICE_HEALTH_CHECK_PORT" default:"8080"`
	RetailersFile   string `envconfig:"RETAILERS_FILE"`
	// Dispatch selects how confirmed launches leave the chat handler: "local" or "sqs".
	Dispatch string `envconfig:"SERVICE_DISPATCH" default:"local"`
}

type Slack struct {
	BotToken string `envconfig:"SLACK_BOT_TOKEN"`
	AppToken string `envconfig:"SLACK_APP_TOKEN"`
	Debug    bool   `envconfig:"SLACK_DEBUG" default:"false"`
}

type Store struct {
	// Backend is one of memory, github, s3, redis.
	Backend     string        `envconfig:"STORE_BACKEND" default:"github"`
	Path        string        `envconfig:"STORE_PATH" default:"launches.csv"`
	MaxAttempts int           `envconfig:"STORE_MAX_ATTEMPTS" default:"3"`
	Backoff     time.Duration `envconfig:"STORE_BACKOFF" default:"1s"`
}

type GitHub struct {
	Token      string `envconfig:"GITHUB_TOKEN"`
	Repository string `envconfig:"GITHUB_REPOSITORY" default:"satvik-adeptmind/launch-tracker"`
	Branch     string `envconfig:"GITHUB_BRANCH"`
	BaseURL    string `envconfig:"GITHUB_BASE_URL"`
}

type S3 struct {
	Bucket    string `envconfig:"S3_BUCKET"`
	Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	Endpoint  string `envconfig:"S3_ENDPOINT"`
	PathStyle bool   `envconfig:"S3_PATH_STYLE" default:"false"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"launchlog:"`
}

type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL"`
	Region   string `envconfig:"SQS_REGION" default:"us-east-1"`
}

// ClickHouse configures the optional reporting mirror. It is disabled while Host is empty.
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST"`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"default"`
	User            string `envconfig:"CLICKHOUSE_USER" default:"default"`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD"`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Enabled reports whether launches are mirrored to ClickHouse.
func (c ClickHouse) Enabled() bool {
	return c.Host != ""
}

type Worker struct {
	Concurrency     int    `envconfig:"WORKER_CONCURRENCY" default:"4"`
	MaxMessages     int32  `envconfig:"WORKER_MAX_MESSAGES" default:"10"`
	WaitTimeSeconds int32  `envconfig:"WORKER_WAIT_TIME_SEC" default:"20"`
	HealthCheckPort string `envconfig:"WORKER_HEALTH_CHECK_PORT" default:"8081"`
}

type Dashboard struct {
	Port     string        `envconfig:"DASHBOARD_PORT" default:"8090"`
	CacheTTL time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"30s"`
}

// Load reads the environment. Overrides run before validation.
func Load(overrides ...func(*Config)) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field requirements that struct tags cannot express.
// Store credentials are left to ValidateStore so processes that never open
// the log, such as the bot in sqs dispatch mode, do not need them.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "github", "s3", "redis":
	default:
		return fmt.Errorf("unsupported store backend: %s (supported: memory, github, s3, redis)", c.Store.Backend)
	}

	switch c.Service.Dispatch {
	case "local":
	case "sqs":
		if c.SQS.QueueURL == "" {
			return fmt.Errorf("SQS_QUEUE_URL is required for sqs dispatch")
		}
	default:
		return fmt.Errorf("unsupported dispatch mode: %s (supported: local, sqs)", c.Service.Dispatch)
	}

	if c.Store.MaxAttempts < 1 {
		return fmt.Errorf("STORE_MAX_ATTEMPTS must be at least 1, got %d", c.Store.MaxAttempts)
	}

	return nil
}

// ValidateStore checks the settings the selected store backend needs.
func (c *Config) ValidateStore() error {
	switch c.Store.Backend {
	case "memory":
	case "github":
		if c.GitHub.Token == "" {
			return fmt.Errorf("GITHUB_TOKEN is required for the github store backend")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 store backend")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store backend")
		}
	default:
		return fmt.Errorf("unsupported store backend: %s (supported: memory, github, s3, redis)", c.Store.Backend)
	}
	return nil
}
