package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "SUNSHOP"
	configFileEnvName = "SUNSHOP_CONFIG_FILE"
)

type Config struct {
	Addr            string        `mapstructure:"addr"`
	DataDir         string        `mapstructure:"data_dir"`
	DatabaseDSN     string        `mapstructure:"database_dsn"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	MaxFailedLogins int           `mapstructure:"max_failed_logins"`
	EvictInterval   time.Duration `mapstructure:"evict_interval"`
	LogLevel        string        `mapstructure:"log_level"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	MetricsToken    string        `mapstructure:"metrics_token"`
}

// Load resolves configuration with flag > env > file > default precedence.
// args is the raw command line without the program name.
func Load(args []string) (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":3001")
	v.SetDefault("data_dir", "initial-data")
	v.SetDefault("database_dsn", "")
	v.SetDefault("session_ttl", 15*time.Minute)
	v.SetDefault("max_failed_logins", 3)
	v.SetDefault("evict_interval", time.Duration(0))
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_token", "")

	fs := pflag.NewFlagSet("sunshop", pflag.ContinueOnError)
	fs.String("addr", ":3001", "listen address")
	fs.String("data-dir", "initial-data", "directory with the seed json documents")
	fs.String("database-dsn", "", "optional postgres dsn for the catalog and user stores")
	fs.Duration("session-ttl", 15*time.Minute, "access token validity window")
	fs.Int("max-failed-logins", 3, "consecutive failed logins before lockout")
	fs.Duration("evict-interval", 0, "expired session sweep period, 0 disables")
	fs.String("log-level", "info", "zap log level")
	fs.Bool("metrics-enabled", false, "expose /metrics")
	fs.String("metrics-token", "", "bearer token guarding /metrics")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if f.Changed {
			v.Set(key, f.Value.String())
		}
	})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := os.Getenv(configFileEnvName); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
