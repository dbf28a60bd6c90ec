// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Shopline ShoplineConfig
	Batch    BatchConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8000)
	Port int `env:"SERVER_PORT" default:"8000"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// ShoplineConfig holds settings for the Shopline Admin API client.
// The access token and store domain are not configuration: the operator
// supplies them with each upload.
type ShoplineConfig struct {
	// APIVersion is the Admin OpenAPI version segment of the base URL
	// (default: v20251201)
	APIVersion string `env:"SHOPLINE_API_VERSION" default:"v20251201"`

	// RequestTimeout bounds each create-order call (default: 30s)
	RequestTimeout time.Duration `env:"SHOPLINE_REQUEST_TIMEOUT" default:"30s"`
}

// BatchConfig holds batch submission settings.
type BatchConfig struct {
	// PacingInterval is the fixed delay after each row's submission.
	// One request is outstanding at a time; this throttle respects the
	// API's rate limits (default: 200ms)
	PacingInterval time.Duration `env:"BATCH_PACING_INTERVAL" default:"200ms"`

	// MaxConcurrent is the maximum number of batches running at once (default: 5)
	MaxConcurrent int `env:"BATCH_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long a submission waits for a batch slot (default: 30s)
	MaxWaitTime time.Duration `env:"BATCH_MAX_WAIT_TIME" default:"30s"`

	// MaxFileSize is the maximum allowed CSV upload size in bytes (default: 10MB)
	MaxFileSize int64 `env:"BATCH_MAX_FILE_SIZE" default:"10485760"`

	// UploadDir is where uploaded CSV files are stored (default: uploads)
	UploadDir string `env:"BATCH_UPLOAD_DIR" default:"uploads"`

	// ResultDir is where result artifacts are written (default: results)
	ResultDir string `env:"BATCH_RESULT_DIR" default:"results"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
