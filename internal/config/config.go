package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Sweeper   SweeperConfig
	Invoice   InvoiceConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds attachment storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds payment receipt delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// RedisConfig holds the shared cache connection.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds the sliding window limits.
type RateLimitConfig struct {
	Backend    string        `mapstructure:"backend"`
	AuthLimit  int           `mapstructure:"auth_limit"`
	AuthWindow time.Duration `mapstructure:"auth_window"`
	APILimit   int           `mapstructure:"api_limit"`
	APIWindow  time.Duration `mapstructure:"api_window"`
}

// SweeperConfig holds the background status refresh settings.
type SweeperConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// InvoiceConfig holds defaults applied to new tenants.
type InvoiceConfig struct {
	DefaultPrefix           string `mapstructure:"default_prefix"`
	FiscalYearStartMonth    int    `mapstructure:"fiscal_year_start_month"`
	DefaultPaymentTermsDays int    `mapstructure:"default_payment_terms_days"`
}

var defaults = map[string]interface{}{
	"server.port":             ":8080",
	"server.read_timeout":     "15s",
	"server.write_timeout":    "30s",
	"server.shutdown_timeout": "10s",
	"server.environment":      "development",

	"db.host":     "localhost",
	"db.port":     5432,
	"db.user":     "khata",
	"db.password": "khata_secret",
	"db.name":     "khata_db",
	"db.sslmode":  "disable",
	"db.max_open": 25,
	"db.max_idle": 10,

	"jwt.secret":         "change-me-in-production",
	"jwt.access_expiry":  "15m",
	"jwt.refresh_expiry": "168h",
	"jwt.issuer":         "khata",

	"s3.region":           "ap-south-1",
	"s3.bucket":           "khata-attachments",
	"s3.endpoint":         "",
	"s3.access_key":       "",
	"s3.secret_key":       "",
	"s3.max_file_size_mb": 10,
	"s3.presign_expiry":   900,

	"log.level":  "debug",
	"log.format": "console",
	"log.output": "stdout",

	"cors.allowed_origins": "http://localhost:3000,http://127.0.0.1:3000",

	"email.provider":     "noop",
	"email.region":       "ap-south-1",
	"email.from_address": "billing@khata.local",
	"email.from_name":    "Khata",

	"redis.addr":     "localhost:6379",
	"redis.password": "",
	"redis.db":       0,

	"ratelimit.backend":     "memory",
	"ratelimit.auth_limit":  10,
	"ratelimit.auth_window": "15m",
	"ratelimit.api_limit":   200,
	"ratelimit.api_window":  "1m",

	"sweeper.enabled":  true,
	"sweeper.interval": "1h",

	"invoice.default_prefix":             "INV/",
	"invoice.fiscal_year_start_month":    4,
	"invoice.default_payment_terms_days": 30,
}

// Load reads configuration from .env, an optional config.yaml and environment
// variables with the KHATA_ prefix, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("KHATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key, "KHATA_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Railway/Render set PORT. Use it unless KHATA_SERVER_PORT is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("KHATA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.RateLimit = RateLimitConfig{
		Backend:    v.GetString("ratelimit.backend"),
		AuthLimit:  v.GetInt("ratelimit.auth_limit"),
		AuthWindow: v.GetDuration("ratelimit.auth_window"),
		APILimit:   v.GetInt("ratelimit.api_limit"),
		APIWindow:  v.GetDuration("ratelimit.api_window"),
	}
	cfg.Sweeper = SweeperConfig{
		Enabled:  v.GetBool("sweeper.enabled"),
		Interval: v.GetDuration("sweeper.interval"),
	}
	cfg.Invoice = InvoiceConfig{
		DefaultPrefix:           v.GetString("invoice.default_prefix"),
		FiscalYearStartMonth:    v.GetInt("invoice.fiscal_year_start_month"),
		DefaultPaymentTermsDays: v.GetInt("invoice.default_payment_terms_days"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret must not be empty")
	}
	if c.Invoice.FiscalYearStartMonth < 1 || c.Invoice.FiscalYearStartMonth > 12 {
		return fmt.Errorf("config: invoice.fiscal_year_start_month %d out of range", c.Invoice.FiscalYearStartMonth)
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: unknown ratelimit.backend %q", c.RateLimit.Backend)
	}
	switch c.Email.Provider {
	case "noop", "ses":
	default:
		return fmt.Errorf("config: unknown email.provider %q", c.Email.Provider)
	}
	return nil
}
