package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. PANELDECK_LAYOUT_AXIS.
const EnvPrefix = "PANELDECK"

// ConfigEnv names an explicit config file path.
const ConfigEnv = "PANELDECK_CONFIG"

// Config holds application configuration.
type Config struct {
	Layout LayoutConfig
	Store  StoreConfig
	Log    LogConfig
	Trace  TraceConfig
}

// LayoutConfig holds panel group settings.
type LayoutConfig struct {
	Axis        string
	Floor       float64
	Sensitivity float64 // 0 = track the terminal extent along the axis
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Path string
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string
	Level string
}

// TraceConfig holds OpenTelemetry settings. An empty endpoint disables tracing.
type TraceConfig struct {
	Endpoint    string
	ServiceName string `mapstructure:"service_name"`
}

// Load reads configuration from $PANELDECK_CONFIG (or the default location)
// and env. A missing config file is not an error; a malformed one is.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(ConfigEnv))
}

// LoadFrom is Load with an explicit config file path. An empty path uses
// ~/.config/paneldeck/config.toml.
func LoadFrom(cfgPath string) (Config, error) {
	home, _ := os.UserHomeDir()
	v := viper.New()

	v.SetDefault("layout.axis", "horizontal")
	v.SetDefault("layout.floor", 0.1)
	v.SetDefault("layout.sensitivity", 0)
	v.SetDefault("store.path", "") // store.NewStore resolves PANELDECK_STATE, then ~/.paneldeck
	v.SetDefault("log.file", filepath.Join(home, ".paneldeck", "paneldeck.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("trace.endpoint", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	v.SetDefault("trace.service_name", "paneldeck")

	v.SetConfigType("toml")

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "paneldeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
