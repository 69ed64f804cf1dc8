package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Policy   PolicyConfig   `toml:"policy"`
	Security SecurityConfig `toml:"security"`
	Cache    CacheConfig    `toml:"cache"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	BasePath        string `toml:"base_path"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	Timezone        string `toml:"timezone"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	QueryTimeout    int    `toml:"query_timeout"`     // секунды, дедлайн одной операции
}

// DSN возвращает строку подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PolicyConfig значения штрафной политики по умолчанию
// Используются, если в таблице penalty_policies нет подходящей записи
type PolicyConfig struct {
	LateCancelWindowMinutes int `toml:"late_cancel_window_minutes"`
	CheckInGraceMinutes     int `toml:"check_in_grace_minutes"`
	CheckOutGraceMinutes    int `toml:"check_out_grace_minutes"`
	PenaltyPoints           int `toml:"penalty_points"`
	PenalizedThreshold      int `toml:"penalized_threshold"`
	// EarlyCheckInMinutes за сколько минут до начала слота открывается приход, 0 - без ограничения
	EarlyCheckInMinutes int `toml:"early_check_in_minutes"`
}

// SecurityConfig ключ шифрования полей (base64, 32 байта)
type SecurityConfig struct {
	FieldKey string `toml:"field_key"`
}

// CacheConfig настройки Redis кэша справочников
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
	Prefix   string `toml:"prefix"`
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Load загружает конфигурацию из TOML файла.
// Переменные окружения (в том числе из .env) переопределяют значения файла.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и допустимые значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("config: invalid server.timezone %q: %w", c.Server.Timezone, err)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database.host and database.dbname are required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("config: database.max_open_conns must be positive, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("config: database.query_timeout must be positive, got %d", c.Database.QueryTimeout)
	}
	if c.Security.FieldKey == "" {
		return errors.New("config: security.field_key is required")
	}
	p := c.Policy
	if p.LateCancelWindowMinutes < 0 || p.CheckInGraceMinutes < 0 || p.CheckOutGraceMinutes < 0 || p.PenaltyPoints < 0 ||
		p.EarlyCheckInMinutes < 0 {
		return errors.New("config: policy values must not be negative")
	}
	if p.PenalizedThreshold < 1 {
		return fmt.Errorf("config: policy.penalized_threshold must be at least 1, got %d", p.PenalizedThreshold)
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return errors.New("config: cache.addr is required when cache is enabled")
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return errors.New("config: events.url is required when events are enabled")
	}
	return nil
}

// Location возвращает часовой пояс, в котором трактуются даты и время слотов
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			BasePath:        "/api",
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			Timezone:        "UTC",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			QueryTimeout:    5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "instrument-reservation",
		},
		Policy: PolicyConfig{
			LateCancelWindowMinutes: 120,
			CheckInGraceMinutes:     15,
			CheckOutGraceMinutes:    15,
			PenaltyPoints:           1,
			PenalizedThreshold:      3,
		},
		Cache: CacheConfig{
			TTL:    300,
			Prefix: "irs",
		},
		Events: EventsConfig{
			Exchange: "instrument-reservation",
		},
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Security.FieldKey, "FIELD_KEY")
	setString(&c.Cache.Addr, "REDIS_ADDR")
	setString(&c.Cache.Password, "REDIS_PASSWORD")
	setString(&c.Events.URL, "RABBITMQ_URL")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	*dst = n
	return nil
}
