package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"broadcast/internal/broadcast/metrics"
	"broadcast/internal/broadcast/tracing"
	"broadcast/internal/validator"
)

const (
	QueueBackendCouchbase = "couchbase"
	QueueBackendLocal     = "local"
)

// Config is the process configuration, read from the environment.
type Config struct {
	CouchbaseConnectionString string `env:"COUCHBASE_CONNECTION_STRING" envDefault:"couchbase://localhost" validate:"required"`
	CouchbaseUsername         string `env:"COUCHBASE_USERNAME" envDefault:"Administrator" validate:"required"`
	CouchbasePassword         string `env:"COUCHBASE_PASSWORD" envDefault:"password"`
	CouchbaseBucketName       string `env:"COUCHBASE_BUCKET_NAME" envDefault:"broadcast" validate:"required"`
	CouchbaseScopeName        string `env:"COUCHBASE_SCOPE_NAME" envDefault:"default" validate:"required"`

	QueueBackend      string `env:"QUEUE_BACKEND" envDefault:"couchbase" validate:"oneof=couchbase local"`
	LocalQueueSize    int    `env:"LOCAL_QUEUE_SIZE" envDefault:"1024" validate:"min=1"`
	LocalQueueWorkers int    `env:"LOCAL_QUEUE_WORKERS" envDefault:"4" validate:"min=1"`

	RelayBatchSize     int           `env:"RELAY_BATCH_SIZE" envDefault:"50" validate:"min=1"`
	RelayPollInterval  time.Duration `env:"RELAY_POLL_INTERVAL" envDefault:"100ms" validate:"gt=0"`
	RelaySubscriptions []string      `env:"RELAY_SUBSCRIPTIONS" envDefault:"gateway,audit" envSeparator:"," validate:"min=1,dive,required"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SenderCount           int    `env:"SENDER_COUNT" envDefault:"10" validate:"min=1"`
	MessagesPerSender     int    `env:"MESSAGES_PER_SENDER" envDefault:"10" validate:"min=1"`
	PublishMessagesPerSec int    `env:"PUBLISH_MESSAGES_PER_SEC" envDefault:"0" validate:"min=0"`
	Profile               string `env:"PROFILE"`

	Metrics metrics.ServerConfig
	Tracing tracing.Config
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := validator.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
