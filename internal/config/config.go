package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultGeminiModel is used whenever the configured model identifier
// does not carry the recognized naming prefix.
const (
	GeminiModelPrefix  = "models/gemini"
	DefaultGeminiModel = "models/gemini-1.5-flash"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	OCR    OCRConfig
	Parser ParserConfig
	PDF    PDFConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          string        `mapstructure:"port"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	Environment   string        `mapstructure:"environment"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
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

// S3Config holds object storage settings. Empty credentials leave the
// storage backend unconfigured; calls into it then fail explicitly
// while extraction keeps serving.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Configured reports whether enough settings are present to reach the
// object store.
func (s *S3Config) Configured() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// OCRConfig holds text-extraction settings.
type OCRConfig struct {
	Provider    string `mapstructure:"provider"` // tesseract | vision
	Language    string `mapstructure:"language"`
	PSM         int    `mapstructure:"psm"`
	Binary      string `mapstructure:"binary"`
	APIKey      string `mapstructure:"api_key"` // cloud vision
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds structured-extraction settings.
type ParserConfig struct {
	Mode            string `mapstructure:"mode"` // live | mocked
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	FallbackOnError bool   `mapstructure:"fallback_on_error"`
}

// EffectiveModel returns the configured model identifier, defaulted
// when it does not start with the recognized prefix.
func (p *ParserConfig) EffectiveModel() string {
	if strings.HasPrefix(p.Model, GeminiModelPrefix) {
		return p.Model
	}
	return DefaultGeminiModel
}

// PDFConfig controls whether filled PDFs are generated and stored.
type PDFConfig struct {
	Store bool `mapstructure:"store"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the
// INKFERENCE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INKFERENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_file_size_mb", 20)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "inkference")
	v.SetDefault("db.password", "inkference_secret")
	v.SetDefault("db.name", "inkference_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// OCR defaults
	v.SetDefault("ocr.provider", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.psm", 6)
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.timeout_secs", 60)

	// Parser defaults
	v.SetDefault("parser.mode", "live")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.model", DefaultGeminiModel)
	v.SetDefault("parser.timeout_secs", 120)
	v.SetDefault("parser.fallback_on_error", true)

	// PDF defaults
	v.SetDefault("pdf.store", true)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "INKFERENCE_SERVER_PORT",
		"server.read_timeout":      "INKFERENCE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "INKFERENCE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "INKFERENCE_SERVER_ENVIRONMENT",
		"server.max_file_size_mb":  "INKFERENCE_SERVER_MAX_FILE_SIZE_MB",
		"db.host":                  "INKFERENCE_DB_HOST",
		"db.port":                  "INKFERENCE_DB_PORT",
		"db.user":                  "INKFERENCE_DB_USER",
		"db.password":              "INKFERENCE_DB_PASSWORD",
		"db.name":                  "INKFERENCE_DB_NAME",
		"db.sslmode":               "INKFERENCE_DB_SSLMODE",
		"db.max_open":              "INKFERENCE_DB_MAX_OPEN",
		"db.max_idle":              "INKFERENCE_DB_MAX_IDLE",
		"s3.region":                "INKFERENCE_S3_REGION",
		"s3.bucket":                "INKFERENCE_S3_BUCKET",
		"s3.endpoint":              "INKFERENCE_S3_ENDPOINT",
		"s3.access_key":            "INKFERENCE_S3_ACCESS_KEY",
		"s3.secret_key":            "INKFERENCE_S3_SECRET_KEY",
		"s3.presign_expiry":        "INKFERENCE_S3_PRESIGN_EXPIRY",
		"ocr.provider":             "INKFERENCE_OCR_PROVIDER",
		"ocr.language":             "INKFERENCE_OCR_LANGUAGE",
		"ocr.psm":                  "INKFERENCE_OCR_PSM",
		"ocr.binary":               "INKFERENCE_OCR_BINARY",
		"ocr.api_key":              "INKFERENCE_OCR_API_KEY",
		"ocr.timeout_secs":         "INKFERENCE_OCR_TIMEOUT_SECS",
		"parser.mode":              "INKFERENCE_PARSER_MODE",
		"parser.api_key":           "INKFERENCE_PARSER_API_KEY",
		"parser.model":             "INKFERENCE_PARSER_MODEL",
		"parser.timeout_secs":      "INKFERENCE_PARSER_TIMEOUT_SECS",
		"parser.fallback_on_error": "INKFERENCE_PARSER_FALLBACK_ON_ERROR",
		"pdf.store":                "INKFERENCE_PDF_STORE",
		"cors.allowed_origins":     "INKFERENCE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if origins := v.GetString("cors.allowed_origins"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.OCR.Provider {
	case "tesseract", "vision":
	default:
		return fmt.Errorf("unknown ocr provider: %s", c.OCR.Provider)
	}
	switch c.Parser.Mode {
	case "live", "mocked":
	default:
		return fmt.Errorf("unknown parser mode: %s", c.Parser.Mode)
	}
	return nil
}
