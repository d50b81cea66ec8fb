package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Salary   SalaryConfig   `yaml:"salary"`
}

// ServerConfig は HTTP リスナーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"LISTEN_ADDR"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host" env:"DB_HOST"`
	Port               int           `yaml:"port" env:"DB_PORT"`
	User               string        `yaml:"user" env:"DB_USER"`
	Password           string        `yaml:"password" env:"DB_PASSWORD"`
	Name               string        `yaml:"name" env:"DB_NAME"`
	SSLMode            string        `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	MaxOpenConns       int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns       int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime    time.Duration `yaml:"-" env:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-" env:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
}

// SalaryConfig は給与レポートの外部ソースに関する設定です。
type SalaryConfig struct {
	// Provider はソースの読み込み方式です。"dir"(ローカルディレクトリ) か "s3"。
	Provider string   `yaml:"provider" env:"SALARY_PROVIDER"`
	Sources  []string `yaml:"sources" env:"SALARY_SOURCES" envSeparator:","`
	Dir      string   `yaml:"dir" env:"SALARY_DIR"`
	Bucket   string   `yaml:"bucket" env:"SALARY_BUCKET"`
	Prefix   string   `yaml:"prefix" env:"SALARY_PREFIX"`
	Region   string   `yaml:"region" env:"SALARY_REGION"`
}

// Provider の取りうる値です。
const (
	ProviderDir = "dir"
	ProviderS3  = "s3"
)

const (
	defaultListenAddr = ":8080"
	defaultSalaryDir  = "assets/salary"
)

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FromEnv は環境変数のみから設定を構築します。設定ファイルを持たない
// Lambda ランタイムで使います。
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = defaultListenAddr
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	return c.Salary.validateAndNormalize()
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

func (s *SalaryConfig) validateAndNormalize() error {
	if s.Provider == "" {
		s.Provider = ProviderDir
	}

	switch s.Provider {
	case ProviderDir:
		if s.Dir == "" {
			s.Dir = defaultSalaryDir
		}
	case ProviderS3:
		if s.Bucket == "" {
			return fmt.Errorf("config: salary.bucket must be set for the s3 provider")
		}
	default:
		return fmt.Errorf("config: salary.provider must be %q or %q", ProviderDir, ProviderS3)
	}

	if len(s.Sources) == 0 {
		return fmt.Errorf("config: salary.sources must be set")
	}

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

// DSN は pgx 用の接続文字列を返します。
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}
