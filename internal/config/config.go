package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Sync      SyncConfig      `toml:"sync"`
	TextGen   TextGenConfig   `toml:"textgen"`
	MQTT      MQTTConfig      `toml:"mqtt"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Auth      AuthConfig      `toml:"auth"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища снапшота
type StorageConfig struct {
	Backend  string `toml:"backend"`   // file | postgres
	FilePath string `toml:"file_path"` // путь к JSON файлу для backend=file
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
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

// SyncConfig удалённое хранилище снапшота
type SyncConfig struct {
	Endpoint string `toml:"endpoint"`
	Token    string `toml:"token"`
	Timeout  int    `toml:"timeout"`
}

// TextGenConfig внешний сервис генерации текста подтверждений
type TextGenConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	Timeout  int    `toml:"timeout"`
}

type MQTTConfig struct {
	Enabled     bool   `toml:"enabled"`
	Broker      string `toml:"broker"`
	ClientID    string `toml:"client_id"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	TopicPrefix string `toml:"topic_prefix"`
	QoS         int    `toml:"qos"`
}

// SchedulerConfig фоновая очистка предварительных бронирований
type SchedulerConfig struct {
	ExpiryInterval int    `toml:"expiry_interval"` // секунды
	Actor          string `toml:"actor"`
}

type AuthConfig struct {
	Enabled           bool   `toml:"enabled"`
	Realm             string `toml:"realm"`
	BootstrapUser     string `toml:"bootstrap_user"`     // создается при пустом списке пользователей
	BootstrapPassword string `toml:"bootstrap_password"`
}

// Load читает .env (если есть), затем TOML файл, применяет значения по
// умолчанию и переопределения из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageFile
	}
	if c.Storage.Backend == StorageFile && c.Storage.FilePath == "" {
		c.Storage.FilePath = "data/snapshot.json"
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "field-scheduler"
	}

	if c.Sync.Timeout == 0 {
		c.Sync.Timeout = 10
	}
	if c.TextGen.Timeout == 0 {
		c.TextGen.Timeout = 15
	}

	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "field-scheduler"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "fieldscheduler"
	}

	if c.Scheduler.ExpiryInterval == 0 {
		c.Scheduler.ExpiryInterval = 60
	}
	if c.Scheduler.Actor == "" {
		c.Scheduler.Actor = "system"
	}

	if c.Auth.Realm == "" {
		c.Auth.Realm = "field-scheduler"
	}
	if c.Auth.BootstrapUser == "" {
		c.Auth.BootstrapUser = "admin"
	}
}

// applyEnv секреты и адреса из окружения имеют приоритет над файлом
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("FS_DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("FS_TEXTGEN_API_KEY"); ok {
		c.TextGen.APIKey = v
	}
	if v, ok := os.LookupEnv("FS_MQTT_PASSWORD"); ok {
		c.MQTT.Password = v
	}
	if v, ok := os.LookupEnv("FS_SYNC_ENDPOINT"); ok {
		c.Sync.Endpoint = v
	}
	if v, ok := os.LookupEnv("FS_SYNC_TOKEN"); ok {
		c.Sync.Token = v
	}
	if v, ok := os.LookupEnv("FS_ADMIN_PASSWORD"); ok {
		c.Auth.BootstrapPassword = v
	}
	if v, ok := os.LookupEnv("FS_HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: FS_HTTP_PORT: %v", ErrInvalidConfig, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch strings.ToLower(c.Storage.Backend) {
	case StorageFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("%w: storage.file_path is required for file backend", ErrInvalidConfig)
		}
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("%w: mqtt.broker is required when mqtt is enabled", ErrInvalidConfig)
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("%w: mqtt.qos must be 0, 1 or 2", ErrInvalidConfig)
	}
	if c.Scheduler.ExpiryInterval < 0 {
		return fmt.Errorf("%w: scheduler.expiry_interval must not be negative", ErrInvalidConfig)
	}
	return nil
}
