package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server              Server        `toml:"server"`
	Database            Database      `toml:"database"`
	Logs                Logs          `toml:"logs"`
	Metrics             Metrics       `toml:"metrics"`
	Redis               Redis         `toml:"redis"`
	Scheduling          Scheduling    `toml:"scheduling"`
	PatientService      ServiceClient `toml:"patient_service"`
	StaffService        ServiceClient `toml:"staff_service"`
	MaintenanceService  ServiceClient `toml:"maintenance_service"`
	NotificationService ServiceClient `toml:"notification_service"`
}

// Server настройки HTTP-сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// Database настройки подключения к PostgreSQL
type Database struct {
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

// DSN возвращает строку подключения к PostgreSQL
func (d *Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`  // пустая строка = stdout
	Level string `toml:"level"` // debug|info|warn|error
}

// Metrics настройки Prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Redis настройки кеша календаря
type Redis struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	CalendarTTLSecs int    `toml:"calendar_ttl_seconds"`
}

// Scheduling бизнес-настройки планирования
type Scheduling struct {
	// Длительность слота по умолчанию, если клиент не указал свою
	DefaultSlotDurationMinutes int `toml:"default_slot_duration_minutes"`
	// Минимальное время до начала слота при бронировании на сегодня (0 = без ограничений)
	MinNoticeMinutes int `toml:"min_notice_minutes"`
	// На сколько дней вперёд можно бронировать (0 = без ограничений)
	AdvanceBookingDays int `toml:"advance_booking_days"`
	// Буфер конфликтов по врачу: расширяет проверяемый интервал в обе стороны
	// (0 = чистое пересечение полуоткрытых интервалов)
	ConflictBufferMinutes int `toml:"conflict_buffer_minutes"`
	// Разрешать ли no_show из статуса in_progress (по умолчанию только из scheduled)
	NoShowFromInProgress bool `toml:"no_show_from_in_progress"`
}

// ServiceClient настройки внешнего HTTP-клиента
type ServiceClient struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load читает конфигурацию из toml-файла.
// Перед чтением подхватывает .env (если есть); секреты БД и Redis
// можно переопределить переменными окружения.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Scheduling.DefaultSlotDurationMinutes < 0 ||
		c.Scheduling.MinNoticeMinutes < 0 ||
		c.Scheduling.AdvanceBookingDays < 0 ||
		c.Scheduling.ConflictBufferMinutes < 0 {
		return fmt.Errorf("config: scheduling values must not be negative")
	}
	return nil
}
