package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DBDSN        string `envconfig:"DB_DSN" default:"hooks.db"`
	SnapshotFile string `envconfig:"SNAPSHOT_FILE" default:"./notifications.json"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:""`
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"notifications"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	// .env is optional; absence is the normal case outside local dev.
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
