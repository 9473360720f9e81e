// Package config загружает конфигурацию сервиса из TOML файла и переменных окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	LockDriverLocal = "local"
	LockDriverRedis = "redis"
)

// ErrInvalidConfig возвращается Validate
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Redis     RedisConfig     `toml:"redis"`
	Locks     LocksConfig     `toml:"locks"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	CORS      CORSConfig      `toml:"cors"`
	Booking   BookingConfig   `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver   string `toml:"driver"`    // postgres | memory
	SeedFile string `toml:"seed_file"` // справочники для memory
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type LocksConfig struct {
	Driver     string `toml:"driver"` // local | redis
	TTLMs      int    `toml:"ttl_ms"`
	MaxRetries int    `toml:"max_retries"` // повторы при конфликте версии слотов
}

// TTL время жизни redis блокировки
func (l LocksConfig) TTL() time.Duration {
	return time.Duration(l.TTLMs) * time.Millisecond
}

type SchedulerConfig struct {
	Enabled bool   `toml:"enabled"`
	Spec    string `toml:"spec"` // cron выражение автопродвижения статусов
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type BookingConfig struct {
	Timezone             string `toml:"timezone"`
	HorizonDays          int    `toml:"horizon_days"`
	SameDayNoticeMinutes int    `toml:"same_day_notice_minutes"`
	ModifyCutoffMinutes  int    `toml:"modify_cutoff_minutes"`
	CancelCutoffMinutes  int    `toml:"cancel_cutoff_minutes"`
}

// Policy правила бронирования
func (b BookingConfig) Policy() domain.Policy {
	return domain.Policy{
		HorizonDays:          b.HorizonDays,
		SameDayNoticeMinutes: b.SameDayNoticeMinutes,
		ModifyCutoffMinutes:  b.ModifyCutoffMinutes,
		CancelCutoffMinutes:  b.CancelCutoffMinutes,
	}
}

// Location часовой пояс ресторана
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// Default значения для всего, что не задано в файле
func Default() *Config {
	policy := domain.DefaultPolicy()
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "reservations",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "reservation_service"},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Locks:   LocksConfig{Driver: LockDriverLocal, TTLMs: 5000, MaxRetries: 3},
		Scheduler: SchedulerConfig{
			Spec: "@every 1m",
		},
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Booking: BookingConfig{
			Timezone:             "UTC",
			HorizonDays:          policy.HorizonDays,
			SameDayNoticeMinutes: policy.SameDayNoticeMinutes,
			ModifyCutoffMinutes:  policy.ModifyCutoffMinutes,
			CancelCutoffMinutes:  policy.CancelCutoffMinutes,
		},
	}
}

// Load читает .env (если есть), TOML файл и переменные окружения, затем проверяет результат
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("STORAGE_DRIVER", &c.Storage.Driver)
	setString("LOCKS_DRIVER", &c.Locks.Driver)
	setString("LOG_LEVEL", &c.Logs.Level)
	setString("BOOKING_TIMEZONE", &c.Booking.Timezone)

	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	return setInt("HTTP_PORT", &c.Server.HTTPPort)
}

// Validate отклоняет несогласованные значения
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, v ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, v...))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		add("server.http_port must be in 1..65535")
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			add("database.host and database.dbname are required for postgres storage")
		}
	case StorageDriverMemory:
	default:
		add("storage.driver must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}
	switch c.Locks.Driver {
	case LockDriverLocal:
	case LockDriverRedis:
		if c.Redis.Addr == "" {
			add("redis.addr is required for redis locks")
		}
		if c.Locks.TTLMs <= 0 {
			add("locks.ttl_ms must be positive")
		}
	default:
		add("locks.driver must be %q or %q", LockDriverLocal, LockDriverRedis)
	}
	if c.Locks.MaxRetries < 1 {
		add("locks.max_retries must be at least 1")
	}
	if c.Scheduler.Enabled && strings.TrimSpace(c.Scheduler.Spec) == "" {
		add("scheduler.spec is required when the scheduler is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		add("ratelimit.rps and ratelimit.burst must be positive")
	}
	if _, err := c.Booking.Location(); err != nil {
		add("booking.timezone: %v", err)
	}
	if c.Booking.HorizonDays < 0 {
		add("booking.horizon_days must not be negative")
	}
	if c.Booking.SameDayNoticeMinutes < 0 || c.Booking.ModifyCutoffMinutes < 0 || c.Booking.CancelCutoffMinutes < 0 {
		add("booking minutes must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
