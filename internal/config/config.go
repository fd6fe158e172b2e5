package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyAddr          = errors.New("server address is not specified")
	ErrInvalidBufferSize  = errors.New("websocket buffer size must be positive")
	ErrInvalidSessionCap  = errors.New("max sessions must not be negative")
	ErrInvalidCleanupTick = errors.New("cleanup period must be positive")
	ErrInvalidIdleTimeout = errors.New("idle timeout must be positive")
)

const (
	defaultAddr          = ":8080"
	defaultBufferSize    = 1024
	defaultMaxSessions   = 256
	defaultCleanupPeriod = 5 * time.Second
	defaultIdleTimeout   = 10 * time.Minute
	defaultLogLevel      = "info"
)

type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadBufferSize  int      `yaml:"read_buffer_size"`
	WriteBufferSize int      `yaml:"write_buffer_size"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

type HubConfig struct {
	MaxSessions   int           `yaml:"max_sessions"`
	CleanupPeriod time.Duration `yaml:"cleanup_period"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Hub    HubConfig    `yaml:"hub"`
	Log    LogConfig    `yaml:"log"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            defaultAddr,
			ReadBufferSize:  defaultBufferSize,
			WriteBufferSize: defaultBufferSize,
		},
		Hub: HubConfig{
			MaxSessions:   defaultMaxSessions,
			CleanupPeriod: defaultCleanupPeriod,
			IdleTimeout:   defaultIdleTimeout,
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// New reads the yaml file at cfgPath on top of Default. SERVER_PORT, when set,
// overrides the listen address.
func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, errors.WithMessage(err, "open config file")
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Addr = port
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrEmptyAddr
	}
	if c.Server.ReadBufferSize <= 0 || c.Server.WriteBufferSize <= 0 {
		return ErrInvalidBufferSize
	}
	if c.Hub.MaxSessions < 0 {
		return ErrInvalidSessionCap
	}
	if c.Hub.CleanupPeriod <= 0 {
		return ErrInvalidCleanupTick
	}
	if c.Hub.IdleTimeout <= 0 {
		return ErrInvalidIdleTimeout
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.WithMessage(err, "parse log level")
	}
	return nil
}

func (c LogConfig) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
