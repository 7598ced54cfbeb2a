package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Studio    StudioConfig    `toml:"studio"`
	Capacity  CapacityConfig  `toml:"capacity"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Redis     RedisConfig     `toml:"redis"`
	Mailer    MailerConfig    `toml:"mailer"`
	Auth      AuthConfig      `toml:"auth"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`     // секунды
	WriteTimeout    int      `toml:"write_timeout"`    // секунды
	IdleTimeout     int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	CORSOrigins     []string `toml:"cors_origins"`
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
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// StudioConfig сетка времени мастерской и правила бронирования
type StudioConfig struct {
	OpenTime                string `toml:"open_time"`
	CloseTime               string `toml:"close_time"`
	StepMinutes             int    `toml:"step_minutes"`
	ClassDurationMinutes    int    `toml:"class_duration_minutes"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
}

// CapacityConfig количество мест по техникам
type CapacityConfig struct {
	PottersWheel int `toml:"potters_wheel"`
	HandModeling int `toml:"hand_modeling"`
	Painting     int `toml:"painting"`
}

// ToDomain переводит секцию в domain.CapacityConfig
func (c CapacityConfig) ToDomain() domain.CapacityConfig {
	return domain.CapacityConfig{
		PottersWheel: c.PottersWheel,
		HandModeling: c.HandModeling,
		Painting:     c.Painting,
	}
}

type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	Requests      int  `toml:"requests"`
	WindowSeconds int  `toml:"window_seconds"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MailerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	Studio   string `toml:"studio"`
}

type AuthConfig struct {
	AdminIDs []int64 `toml:"admin_ids"`
}

// Load читает TOML файл, затем применяет переменные окружения.
// Файл .env в рабочей директории загружается, если он есть.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	capacity := domain.DefaultCapacity()
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{ServiceName: "ceramics_booking", Path: "/metrics"},
		Studio: StudioConfig{
			OpenTime:             "10:00",
			CloseTime:            "21:00",
			StepMinutes:          60,
			ClassDurationMinutes: domain.ProtectionWindowMinutes,
			AdvanceBookingDays:   90,
		},
		Capacity: CapacityConfig{
			PottersWheel: capacity.PottersWheel,
			HandModeling: capacity.HandModeling,
			Painting:     capacity.Painting,
		},
		RateLimit: RateLimitConfig{Requests: 20, WindowSeconds: 60},
		Redis:     RedisConfig{Addr: "localhost:6379"},
		Mailer:    MailerConfig{Port: 587, Studio: "Ceramics Studio"},
	}
}

// applyEnv переопределяет секреты и порт из окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Mailer.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("ADMIN_IDS"); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			return err
		}
		c.Auth.AdminIDs = ids
	}
	return nil
}

func parseIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: ADMIN_IDS contains %q", ErrInvalidConfig, p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	open, err := types.NewTimeStringFromString(c.Studio.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: studio.open_time: %v", ErrInvalidConfig, err)
	}
	closeAt, err := types.NewTimeStringFromString(c.Studio.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: studio.close_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeAt) {
		return fmt.Errorf("%w: studio.open_time must be before studio.close_time", ErrInvalidConfig)
	}
	if c.Studio.StepMinutes <= 0 || c.Studio.ClassDurationMinutes <= 0 {
		return fmt.Errorf("%w: studio step and class duration must be positive", ErrInvalidConfig)
	}
	if c.Studio.AdvanceBookingDays < 0 || c.Studio.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: studio.advance_booking_days=%d", ErrInvalidConfig, c.Studio.AdvanceBookingDays)
	}
	if c.Studio.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: studio.min_booking_notice_minutes=%d", ErrInvalidConfig, c.Studio.MinBookingNoticeMinutes)
	}

	if c.Capacity.PottersWheel <= 0 || c.Capacity.HandModeling <= 0 || c.Capacity.Painting <= 0 {
		return fmt.Errorf("%w: capacity values must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("%w: rate_limit requests and window_seconds must be positive", ErrInvalidConfig)
	}

	if c.Mailer.Enabled && (c.Mailer.Host == "" || c.Mailer.From == "") {
		return fmt.Errorf("%w: mailer.host and mailer.from are required", ErrInvalidConfig)
	}

	return nil
}
