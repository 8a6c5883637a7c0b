// Package config resolves settings from flags, STUDYMATE_* environment
// variables, and an optional studymate.yaml config file, in that priority
// order.
package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/store"
)

// Config is the resolved application configuration.
type Config struct {
	// Server is the backend base URL.
	Server string

	// Timeout bounds a single HTTP request. Zero leaves settling to the
	// transport.
	Timeout time.Duration

	// DBPath is the local study-log database file.
	DBPath string

	LogLevel string
	LogFile  string
}

// Load resolves the configuration for a command invocation.
func Load(cmd *cobra.Command) (Config, error) {
	v := viperForCmd(cmd)

	cfg := Config{
		Server:   v.GetString("server"),
		Timeout:  v.GetDuration("timeout"),
		DBPath:   v.GetString("db"),
		LogLevel: v.GetString("log-level"),
		LogFile:  v.GetString("log-file"),
	}

	if cfg.Server == "" {
		cfg.Server = api.DefaultBaseURL
	}
	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = p
	}
	return cfg, nil
}

// viperForCmd binds a command's flags and environment to a fresh viper
// instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("STUDYMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("studymate")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/studymate")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.WithError(err).Warn("error reading config file")
		}
	}

	return v
}
