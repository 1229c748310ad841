package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Enabled reports whether a local order history database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != "" && d.DBName != ""
}

func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

// MockConfig configures the development backend started by serve-mock.
type MockConfig struct {
	Addr             string        `mapstructure:"addr"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	TokenTTL         time.Duration `mapstructure:"token_ttl"`
	ExtraRestaurants int           `mapstructure:"extra_restaurants"`
	Seed             int           `mapstructure:"seed"`
	RateLimit        float64       `mapstructure:"rate_limit"` // requests per second per client
	RateBurst        int           `mapstructure:"rate_burst"`
}

type Config struct {
	BackendURL string `mapstructure:"backend_url"`
	TokenFile  string `mapstructure:"token_file"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`

	Database DatabaseConfig `mapstructure:"database"`

	OutputDestination string             `mapstructure:"output_destination"` // "local" or "s3"
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
	ReceiptFolder     string             `mapstructure:"receipt_folder"`

	Mock MockConfig `mapstructure:"mock"`
}

// APIBase is the root every catalog endpoint hangs off.
func (cfg *Config) APIBase() string {
	return strings.TrimRight(cfg.BackendURL, "/") + "/api"
}

func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("backend_url", "http://localhost:8001")
	v.SetDefault("token_file", filepath.Join(home, ".foodstore", "token"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic", "order_placed")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("output_destination", "local")
	v.SetDefault("output_path", ".")
	v.SetDefault("output_folder", "exports")
	v.SetDefault("cloud_storage.provider", "s3")
	v.SetDefault("cloud_storage.bucket_name", "")
	v.SetDefault("cloud_storage.region", "")
	v.SetDefault("receipt_folder", "receipts")
	v.SetDefault("mock.addr", ":8001")
	v.SetDefault("mock.jwt_secret", "foodstore-dev-secret")
	v.SetDefault("mock.token_ttl", "30m")
	v.SetDefault("mock.extra_restaurants", 0)
	v.SetDefault("mock.seed", 42)
	v.SetDefault("mock.rate_limit", 20)
	v.SetDefault("mock.rate_burst", 40)
}

// LoadConfig reads configuration from the optional config file, a .env file
// in the working directory and the environment. A missing default config file
// is not an error; a missing explicit one is.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".foodstore")
		v.SetConfigType("yaml")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend_url", "FOODSTORE_BACKEND_URL", "BACKEND_URL"); err != nil {
		return nil, fmt.Errorf("error binding env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if config.BackendURL == "" {
		return nil, errors.New("backend_url must be set")
	}

	return &config, nil
}
