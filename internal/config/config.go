package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ClientConfig struct {
	Env           string `yaml:"env"`
	Gateway       `yaml:"gateway"`
	SessionConfig `yaml:"session"`
	HTTPServer    `yaml:"http_server"`
	KafkaService  `yaml:"kafka-service"`
	SnapshotDB    `yaml:"snapshot_db"`
	ObjectStorage `yaml:"object_storage"`
	PolicyConfig  `yaml:"policy"`
	WatcherConfig `yaml:"watcher"`
}

type Gateway struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type SessionConfig struct {
	UserID string `yaml:"user_id"`
	Role   string `yaml:"role"`
	Token  string `yaml:"token" env:"ESCROW_GATEWAY_TOKEN"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type KafkaService struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	EscrowTopic  string `yaml:"escrow_topic" env-default:"escrow-events"`
	DisputeTopic string `yaml:"dispute_topic" env-default:"dispute-events"`
}

type SnapshotDB struct {
	Path string `yaml:"path" env-default:"escrow-client.db"`
}

type ObjectStorage struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" env:"OBJECT_STORAGE_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"OBJECT_STORAGE_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env-default:"dispute-evidence"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type PolicyConfig struct {
	RequireDepositBeforeReady bool `yaml:"require_deposit_before_ready"`
}

type WatcherConfig struct {
	Interval  time.Duration `yaml:"interval" env-default:"30s"`
	EscrowIDs []string      `yaml:"escrow_ids"`
}

func MustLoad() *ClientConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg ClientConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
