// Package config loads service configuration from RPG_FORGE_ environment
// variables
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

// Prefix is prepended to every variable name
const Prefix = "RPG_FORGE_"

// Config is the runtime configuration shared by every command
type Config struct {
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"GRPC_PORT" envDefault:"50051"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMAPIKey   string `env:"LLM_API_KEY"`
	LLMModel    string `env:"LLM_MODEL"`
	LLMBaseURL  string `env:"LLM_BASE_URL"`

	// FanOut requests record sections in parallel tool groups
	FanOut        bool          `env:"GENERATION_FAN_OUT" envDefault:"false"`
	RetryInterval time.Duration `env:"GENERATION_RETRY_INTERVAL" envDefault:"500ms"`

	SRDBaseURL  string        `env:"SRD_BASE_URL"`
	SRDCacheTTL time.Duration `env:"SRD_CACHE_TTL" envDefault:"24h"`

	JWTSecret string `env:"JWT_SECRET"`

	// OTelEndpoint enables tracing when set
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"180s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the parser cannot
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("HTTP_PORT", c.HTTPPort, 1, 65535, vb)
	errors.ValidateRange("GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRequired("REDIS_ADDR", c.RedisAddr, vb)
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		vb.Fieldf("LOG_LEVEL", "unknown level %q", c.LogLevel)
	}
	if c.RetryInterval < 0 {
		vb.Field("GENERATION_RETRY_INTERVAL", "must not be negative")
	}
	return vb.Build()
}

// Level returns the parsed log level
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
