package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"basha-backend/events"
	"basha-backend/logging"
	"basha-backend/storage"
)

type Config struct {
	Server   ServerConfig
	CORS     CORSConfig `mapstructure:"cors"`
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Session  SessionConfig
	JWT      JWTConfig `mapstructure:"jwt"`
	AI       AIConfig  `mapstructure:"ai"`
	Storage  storage.Config
	Events   events.Config
	Log      logging.Config
}

type ServerConfig struct {
	Host string
	Port int
	Mode string // gin mode: debug, release, test
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CORSConfig struct {
	Origins string
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // sqlite, mysql, postgres
	URL             string `mapstructure:"url"`
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string        `mapstructure:"sslmode"`
	FilePath        string        `mapstructure:"file_path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
	Seed            bool
}

// RedisConfig enables the shared cache tier, sessions and pub/sub when Address is set.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

type CacheConfig struct {
	Prefix    string
	TTL       time.Duration
	LocalSize int64 `mapstructure:"local_size"`
}

type SessionConfig struct {
	TTL        time.Duration
	ExploreTTL time.Duration `mapstructure:"explore_ttl"`
}

type JWTConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

type AIConfig struct {
	Endpoint string
	APIKey   string `mapstructure:"api_key"`
	Model    string
	Timeout  time.Duration
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	bindEnv(v)
	return v
}

// readConfig reads the config file if there is one and reports whether it was found.
func readConfig(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		return false, fmt.Errorf("read config: %w", err)
	}
	return true, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Load reads config.yaml from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if _, err := readConfig(v); err != nil {
		return nil, err
	}
	return decode(v)
}

// Watch calls onChange with the reloaded config whenever config.yaml under
// path is written. It reports false when there is no file to watch.
func Watch(path string, onChange func(*Config)) (bool, error) {
	v := newViper(path)
	found, err := readConfig(v)
	if err != nil || !found {
		return false, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			l := logging.L()
			l.Warn().Err(err).Str("file", e.Name).Msg("config reload failed")
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return true, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("cors.origins", "*")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file_path", "file::memory:?cache=shared")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.name", "basha")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.slow_threshold", time.Second)
	v.SetDefault("database.seed", true)

	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.prefix", "basha")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.local_size", 1000)

	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.explore_ttl", 2*time.Hour)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.issuer", "basha-backend")
	v.SetDefault("jwt.expiry", 24*time.Hour)

	v.SetDefault("ai.model", "text-gen-v1")
	v.SetDefault("ai.timeout", 10*time.Second)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local.base_path", "uploads")
	v.SetDefault("storage.local.url_prefix", "/uploads")
	v.SetDefault("storage.s3.region", "us-east-1")

	v.SetDefault("events.driver", "none")
	v.SetDefault("events.channel", events.DefaultChannel)
	v.SetDefault("events.exchange", events.DefaultChannel)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.service_name", "basha-backend")
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.mode", "GIN_MODE")
	_ = v.BindEnv("cors.origins", "CORS_ORIGINS")

	_ = v.BindEnv("database.driver", "DB_DRIVER")
	_ = v.BindEnv("database.url", "MYSQL_URL", "DATABASE_URL")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASS")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")
	_ = v.BindEnv("database.file_path", "DB_FILE_PATH")

	_ = v.BindEnv("redis.address", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	_ = v.BindEnv("ai.endpoint", "AI_ENDPOINT")
	_ = v.BindEnv("ai.api_key", "AI_API_KEY")

	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.s3.endpoint", "S3_ENDPOINT")
	_ = v.BindEnv("storage.s3.bucket", "S3_BUCKET")
	_ = v.BindEnv("storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	_ = v.BindEnv("storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	_ = v.BindEnv("storage.s3.use_path_style", "S3_USE_PATH_STYLE")
	_ = v.BindEnv("storage.s3.public_url", "S3_PUBLIC_URL")

	_ = v.BindEnv("events.driver", "EVENTS_DRIVER")
	_ = v.BindEnv("events.amqp_url", "AMQP_URL")

	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.pretty", "LOG_PRETTY")
}
