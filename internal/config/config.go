package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// Режимы хранилища бронирований
const (
	GatewayPostgres = "postgres" // сервис сам хранит бронирования
	GatewayRemote   = "remote"   // бронирования хранит внешний REST API
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Gateway    GatewayConfig    `toml:"gateway"`
	TrainerAPI TrainerAPIConfig `toml:"trainer_api"`
	Redis      RedisConfig      `toml:"redis"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	Jobs       JobsConfig       `toml:"jobs"`
}

// ServerConfig HTTP сервер. Таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig PostgreSQL
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
	AutoMigrate     bool   `toml:"auto_migrate"`
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

type GatewayConfig struct {
	Mode string `toml:"mode"` // postgres | remote
}

// TrainerAPIConfig внешний API бронирований (режим remote)
type TrainerAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RedisConfig кэш рабочих часов. Пустой Addr выключает кэш
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
	KeyPrefix  string `toml:"key_prefix"`
}

// Enabled возвращает true, если кэш настроен
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// ScheduleConfig часовой пояс расписания и перерыв по умолчанию
type ScheduleConfig struct {
	Timezone          string `toml:"timezone"`
	DefaultBreakStart string `toml:"default_break_start"`
	DefaultBreakEnd   string `toml:"default_break_end"`
}

// Location загружает часовой пояс расписания
func (s ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// DefaultBreak окно перерыва для дней с перерывом без явного окна
func (s ScheduleConfig) DefaultBreak() (domain.BreakWindow, error) {
	start, err := types.NewTimeStringFromString(s.DefaultBreakStart)
	if err != nil {
		return domain.BreakWindow{}, fmt.Errorf("default_break_start: %w", err)
	}
	end, err := types.NewTimeStringFromString(s.DefaultBreakEnd)
	if err != nil {
		return domain.BreakWindow{}, fmt.Errorf("default_break_end: %w", err)
	}
	brk := domain.BreakWindow{Start: start, End: end}
	return brk, brk.Validate()
}

// JobsConfig фоновые задачи
type JobsConfig struct {
	AutoCompleteEnabled  bool   `toml:"auto_complete_enabled"`
	AutoCompleteSchedule string `toml:"auto_complete_schedule"`
	Timeout              int    `toml:"timeout"` // секунды на один запуск
}

// Load читает конфигурацию из toml-файла
//
// Секреты и переключатели можно переопределить переменными окружения,
// перед этим подгружается .env, если он есть.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// Файла .env может не быть
	_ = godotenv.Load(".env")

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "trainer_booking",
		},
		Gateway:    GatewayConfig{Mode: GatewayPostgres},
		TrainerAPI: TrainerAPIConfig{Timeout: 10},
		Redis: RedisConfig{
			TTLSeconds: 30,
			KeyPrefix:  "trainer-booking",
		},
		Schedule: ScheduleConfig{
			Timezone:          "Europe/Moscow",
			DefaultBreakStart: domain.DefaultBreak.Start.String(),
			DefaultBreakEnd:   domain.DefaultBreak.End.String(),
		},
		Jobs: JobsConfig{
			AutoCompleteEnabled:  true,
			AutoCompleteSchedule: "*/5 * * * *",
			Timeout:              30,
		},
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := os.LookupEnv("TRAINER_API_URL"); ok {
		c.TrainerAPI.URL = v
	}
	if v, ok := os.LookupEnv("GATEWAY_MODE"); ok {
		c.Gateway.Mode = v
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT: %v", ErrInvalidConfig, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Gateway.Mode {
	case GatewayPostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required in postgres mode", ErrInvalidConfig)
		}
	case GatewayRemote:
		if c.TrainerAPI.URL == "" {
			return fmt.Errorf("%w: trainer_api.url is required in remote mode", ErrInvalidConfig)
		}
		if c.TrainerAPI.Timeout <= 0 {
			return fmt.Errorf("%w: trainer_api.timeout must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: gateway.mode must be %q or %q, got %q",
			ErrInvalidConfig, GatewayPostgres, GatewayRemote, c.Gateway.Mode)
	}

	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Schedule.DefaultBreak(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
	}

	if c.Redis.Enabled() && c.Redis.TTLSeconds <= 0 {
		return fmt.Errorf("%w: redis.ttl_seconds must be positive", ErrInvalidConfig)
	}

	if c.Jobs.AutoCompleteEnabled && c.Jobs.AutoCompleteSchedule == "" {
		return fmt.Errorf("%w: jobs.auto_complete_schedule is required", ErrInvalidConfig)
	}

	return nil
}
