package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Драйверы хранилища
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config конфигурация сервиса.
// Значения читаются из TOML, затем переопределяются переменными окружения
type Config struct {
	Server        ServerConfig        `toml:"server" envPrefix:"SERVER_"`
	Database      DatabaseConfig      `toml:"database" envPrefix:"DATABASE_"`
	Logs          LogsConfig          `toml:"logs" envPrefix:"LOGS_"`
	Metrics       MetricsConfig       `toml:"metrics" envPrefix:"METRICS_"`
	Storage       StorageConfig       `toml:"storage" envPrefix:"STORAGE_"`
	Scheduling    SchedulingConfig    `toml:"scheduling" envPrefix:"SCHEDULING_"`
	Subscription  SubscriptionConfig  `toml:"subscription" envPrefix:"SUBSCRIPTION_"`
	Notifications NotificationsConfig `toml:"notifications" envPrefix:"NOTIFICATIONS_"`
}

// ServerConfig HTTP сервер; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"HOST"`
	Port            int    `toml:"port" env:"PORT"`
	User            string `toml:"user" env:"USER"`
	Password        string `toml:"password" env:"PASSWORD"`
	DBName          string `toml:"dbname" env:"NAME"`
	SSLMode         string `toml:"sslmode" env:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig логирование; пустой File - только stdout
type LogsConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	File  string `toml:"file" env:"FILE"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"ENABLED"`
	Path        string `toml:"path" env:"PATH"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME"`
}

// StorageConfig выбор хранилища: memory | postgres
type StorageConfig struct {
	Driver string `toml:"driver" env:"DRIVER"`
	// memory: создать салон id=1 и клиента id=1 при старте
	MemorySeed bool `toml:"memory_seed" env:"MEMORY_SEED"`
}

// SchedulingConfig параметры расчёта слотов и записи
type SchedulingConfig struct {
	SlotStepMinutes   int  `toml:"slot_step_minutes" env:"SLOT_STEP_MINUTES"`
	MaxRangeDays      int  `toml:"max_range_days" env:"MAX_RANGE_DAYS"`
	StaleWriteRetries *int `toml:"stale_write_retries" env:"STALE_WRITE_RETRIES"` // nil = 1
	// true включает завершение без подтверждения для всех салонов
	AllowUnconfirmedCompletion bool `toml:"allow_unconfirmed_completion" env:"ALLOW_UNCONFIRMED_COMPLETION"`
}

// Retries число повторов транзакции после устаревшей записи
func (s SchedulingConfig) Retries() int {
	if s.StaleWriteRetries == nil {
		return 1
	}
	return *s.StaleWriteRetries
}

// SubscriptionConfig сервис подписок; пустой URL - лимиты из салона
type SubscriptionConfig struct {
	URL     string `toml:"url" env:"URL"`
	Timeout int    `toml:"timeout" env:"TIMEOUT"`
}

// NotificationsConfig RabbitMQ; пустой URL - уведомления отключены
type NotificationsConfig struct {
	URL            string `toml:"url" env:"URL"`
	Queue          string `toml:"queue" env:"QUEUE"`
	PublishTimeout int    `toml:"publish_timeout" env:"PUBLISH_TIMEOUT"`
	BufferSize     int    `toml:"buffer_size" env:"BUFFER_SIZE"` // событий в очереди до отправки
}

// Load читает конфигурацию из файла и переменных окружения.
// Отсутствующий файл не ошибка: остаются значения по умолчанию и окружение
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, fmt.Errorf("parse env: %w", aggErr.Errors[0])
		}
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Host, "localhost")
	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "scheduling")

	setDefault(&c.Storage.Driver, StoragePostgres)

	setDefault(&c.Scheduling.SlotStepMinutes, 15)
	setDefault(&c.Scheduling.MaxRangeDays, 31)
	if c.Scheduling.StaleWriteRetries == nil {
		retries := 1
		c.Scheduling.StaleWriteRetries = &retries
	}

	setDefault(&c.Subscription.Timeout, 5)

	setDefault(&c.Notifications.Queue, "appointment-events")
	setDefault(&c.Notifications.PublishTimeout, 5)
	setDefault(&c.Notifications.BufferSize, 1000)
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port: invalid port %d", c.Server.HTTPPort)
	}
	if c.Scheduling.SlotStepMinutes <= 0 || c.Scheduling.SlotStepMinutes > 24*60 {
		return fmt.Errorf("scheduling.slot_step_minutes: must be in 1..1440, got %d", c.Scheduling.SlotStepMinutes)
	}
	if c.Scheduling.MaxRangeDays <= 0 {
		return fmt.Errorf("scheduling.max_range_days: must be positive, got %d", c.Scheduling.MaxRangeDays)
	}
	if c.Scheduling.Retries() < 0 {
		return fmt.Errorf("scheduling.stale_write_retries: must not be negative, got %d", c.Scheduling.Retries())
	}

	if c.Storage.Driver == StoragePostgres {
		if c.Database.DBName == "" {
			return errors.New("database.dbname: required for postgres storage")
		}
		if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
			return fmt.Errorf("database.max_idle_conns (%d) exceeds max_open_conns (%d)",
				c.Database.MaxIdleConns, c.Database.MaxOpenConns)
		}
	}
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
