package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App      App      `yaml:"app"`
	HTTP     HTTP     `yaml:"http"`
	Log      Log      `yaml:"log"`
	Webhook  Webhook  `yaml:"webhook"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Kafka    Kafka    `yaml:"kafka"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"commercehub"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type HTTP struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Webhook struct {
	// Secret is the shared signing secret issued by the payment platform.
	Secret string `yaml:"secret" env:"WEBHOOK_SECRET" env-default:"whsec_dev"`
	// SignatureSkew bounds how far a signed timestamp may drift from server
	// time before the delivery is rejected as a replay.
	SignatureSkew time.Duration `yaml:"signature_skew" env:"WEBHOOK_SIGNATURE_SKEW" env-default:"5m"`
	// DedupTTL must stay below the platform's redelivery horizon.
	DedupTTL time.Duration `yaml:"dedup_ttl" env:"WEBHOOK_DEDUP_TTL" env-default:"24h"`
	// LockTTL is the upper bound a crashed worker can block retries of one event.
	LockTTL time.Duration `yaml:"lock_ttl" env:"WEBHOOK_LOCK_TTL" env-default:"30s"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"user"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"password"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB" env-default:"commercehub_db"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"notification-tasks"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"notifier-group-1"`
}

func New() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		// fallback to env vars if file not found
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else {
		// Allow env vars to override config file
		cleanenv.ReadEnv(cfg)
	}

	return cfg, nil
}
