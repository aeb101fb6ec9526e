package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hugohenrick/emceep/pkg/notify"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. EMCEEP_HTTP_ADDR.
const EnvPrefix = "EMCEEP"

// Config holds the application configuration
type Config struct {
	DataPath string         `mapstructure:"data_path"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Executor ExecutorConfig `mapstructure:"executor"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
}

// HTTPConfig configura o servidor REST
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	Debug           bool          `mapstructure:"debug"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig configura o logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ArchiveConfig configura o arquivo SQLite do changelog
type ArchiveConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// MetricsConfig liga ou desliga o endpoint /metrics
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ExecutorConfig configura o executor de comandos de voz
type ExecutorConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

// TwilioConfig holds the SMS provider credentials.
type TwilioConfig struct {
	AccountSID  string `mapstructure:"account_sid"`
	AuthToken   string `mapstructure:"auth_token"`
	PhoneNumber string `mapstructure:"phone_number"`
}

// Notify converts the credentials for the notify package.
func (t TwilioConfig) Notify() notify.TwilioConfig {
	return notify.TwilioConfig{
		AccountSID: t.AccountSID,
		AuthToken:  t.AuthToken,
		FromNumber: t.PhoneNumber,
	}
}

// New returns a viper instance with defaults and environment bindings applied.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("data_path", "data/event.json")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.debug", false)
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("archive.enabled", true)
	v.SetDefault("archive.path", "data/changelog.db")
	v.SetDefault("archive.busy_timeout", 5*time.Second)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("executor.threshold", 0.5)

	v.SetDefault("twilio.account_sid", "")
	v.SetDefault("twilio.auth_token", "")
	v.SetDefault("twilio.phone_number", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// credenciais da Twilio usam os nomes sem prefixo
	_ = v.BindEnv("twilio.account_sid", EnvPrefix+"_TWILIO_ACCOUNT_SID", "TWILIO_ACCOUNT_SID")
	_ = v.BindEnv("twilio.auth_token", EnvPrefix+"_TWILIO_AUTH_TOKEN", "TWILIO_AUTH_TOKEN")
	_ = v.BindEnv("twilio.phone_number", EnvPrefix+"_TWILIO_PHONE_NUMBER", "TWILIO_PHONE_NUMBER")

	return v
}

// Load reads the optional config file at path into v and decodes it. An empty
// path looks for emceep.yaml in the working directory and ./config; a missing
// file there is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("emceep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case path == "" && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.New("config: data_path is required")
	}
	if c.Executor.Threshold < 0 || c.Executor.Threshold > 1 {
		return fmt.Errorf("config: executor.threshold must be within [0, 1], got %v", c.Executor.Threshold)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Archive.Enabled && strings.TrimSpace(c.Archive.Path) == "" {
		return errors.New("config: archive.path is required when the archive is enabled")
	}
	return nil
}
