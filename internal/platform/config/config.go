package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix は環境変数による上書きに使う接頭辞です。
const EnvPrefix = "SHIFT_"

// ストレージドライバ
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Storage   StorageConfig   `yaml:"storage" envPrefix:"STORAGE_"`
	Database  DatabaseConfig  `yaml:"database" envPrefix:"DATABASE_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"LISTEN_ADDR"`
}

// StorageConfig は永続化先の選択です。
type StorageConfig struct {
	Driver     string `yaml:"driver" env:"DRIVER"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	FileDir    string `yaml:"file_dir" env:"FILE_DIR"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。storage.driver が postgres の場合のみ必須です。
type DatabaseConfig struct {
	Host               string        `yaml:"host" env:"HOST"`
	Port               int           `yaml:"port" env:"PORT"`
	User               string        `yaml:"user" env:"USER"`
	Password           string        `yaml:"password" env:"PASSWORD"`
	Name               string        `yaml:"name" env:"NAME"`
	SSLMode            string        `yaml:"ssl_mode" env:"SSL_MODE"`
	MaxOpenConns       int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns       int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time" env:"CONN_MAX_IDLE_TIME"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// TelemetryConfig はトレース送信先の設定です。空の場合トレースは無効です。
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"SERVICE_NAME"`
}

// Load は指定されたパスから設定ファイルを読み込み、SHIFT_ で始まる環境変数で上書きします。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// EffectivePath はフラグ値、CONFIG_PATH、既定値の順で設定ファイルのパスを決めます。
func EffectivePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "assets/local.yaml"
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	if err := c.Storage.validateAndNormalize(); err != nil {
		return err
	}

	if c.Storage.Driver == DriverPostgres {
		db := &c.Database
		if err := db.validateAndNormalize(); err != nil {
			return err
		}
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not supported", c.Log.Level)
	}

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "shift-scheduler"
	}

	return nil
}

func (s *StorageConfig) validateAndNormalize() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if s.Driver == "" {
		s.Driver = DriverPostgres
	}

	switch s.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("config: storage.sqlite_path must be set for the sqlite driver")
		}
	case DriverFile:
		if s.FileDir == "" {
			return fmt.Errorf("config: storage.file_dir must be set for the file driver")
		}
	default:
		return fmt.Errorf("config: storage.driver %q is not supported", s.Driver)
	}
	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。認証情報は URL エスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
