package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Snapshot store backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendR2       = "r2"
	BackendMirror   = "mirror"
)

// Config holds every runtime setting of the server.
type Config struct {
	ServerPort int    `mapstructure:"server_port"`
	LogLevel   string `mapstructure:"log_level"`

	StoreBackend   string        `mapstructure:"store_backend"`
	SnapshotPath   string        `mapstructure:"snapshot_path"`
	DatabaseURL    string        `mapstructure:"database_url"`
	BackupInterval time.Duration `mapstructure:"backup_interval"`
	BackupDir      string        `mapstructure:"backup_dir"`

	JWTSecretKey      string        `mapstructure:"jwt_secret_key"`
	JWTTTL            time.Duration `mapstructure:"jwt_ttl"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`

	R2 R2Config `mapstructure:",squash"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// RandomSeed fixes the random source; zero seeds from the clock.
	RandomSeed int64 `mapstructure:"random_seed"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type R2Config struct {
	AccountID       string `mapstructure:"r2_account_id"`
	AccessKeyID     string `mapstructure:"r2_access_key_id"`
	SecretAccessKey string `mapstructure:"r2_secret_access_key"`
	BucketName      string `mapstructure:"r2_bucket_name"`
	PublicBaseURL   string `mapstructure:"r2_public_base_url"`
	SnapshotKey     string `mapstructure:"r2_snapshot_key"`
}

func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.BucketName != ""
}

var keys = []string{
	"server_port", "log_level",
	"store_backend", "snapshot_path", "database_url", "backup_interval", "backup_dir",
	"jwt_secret_key", "jwt_ttl", "admin_username", "admin_password_hash",
	"r2_account_id", "r2_access_key_id", "r2_secret_access_key", "r2_bucket_name", "r2_public_base_url", "r2_snapshot_key",
	"redis_addr", "redis_password", "redis_db",
	"random_seed", "cors_allowed_origins",
}

// Load reads .env (if present), an optional config file, then environment variables,
// which take precedence. configPath may be empty.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("server_port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("store_backend", BackendFile)
	v.SetDefault("snapshot_path", "beach_volley_data.json")
	v.SetDefault("backup_interval", "0s")
	v.SetDefault("backup_dir", "backups")
	v.SetDefault("jwt_ttl", "12h")
	v.SetDefault("admin_username", "organizer")
	v.SetDefault("r2_snapshot_key", "snapshots/beach_volley_data.json")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cors_allowed_origins", []string{"*"})

	for _, key := range keys {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY environment variable is not set")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	switch c.StoreBackend {
	case BackendFile, BackendMirror:
		if c.SnapshotPath == "" {
			return errors.New("SNAPSHOT_PATH must not be empty")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL environment variable is not set")
		}
	case BackendR2:
		if !c.R2.Enabled() {
			return errors.New("R2_ACCOUNT_ID and R2_BUCKET_NAME are required for the r2 backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.BackupInterval < 0 {
		return fmt.Errorf("BACKUP_INTERVAL must not be negative, got %s", c.BackupInterval)
	}
	return nil
}
