package config

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config carries the server and filter-building settings.
type Config struct {
	Server    ServerConfig
	Filtering FilteringConfig
}

// ServerConfig controls the HTTP endpoint.
type ServerConfig struct {
	Addr           string
	Playground     bool
	AllowedOrigins []string
}

// FilteringConfig sets the combinator defaults applied to top-level filter
// types.
type FilteringConfig struct {
	AllowAnd bool
	AllowOr  bool
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			Playground:     true,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Filtering: FilteringConfig{AllowAnd: true, AllowOr: true},
	}
}

// Load reads config.yaml from configPath, with FILTERQL_* environment
// overrides (FILTERQL_SERVER_ADDR, FILTERQL_SERVER_PLAYGROUND, ...). A
// missing file is not an error; defaults and environment apply.
func Load(configPath string, log zerolog.Logger) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("FILTERQL")

	v.BindEnv("server.addr")
	v.BindEnv("server.playground")
	v.BindEnv("filtering.allowand")
	v.BindEnv("filtering.allowor")

	if err := v.ReadInConfig(); err != nil {
		log.Debug().Msg("no config.yaml found, using defaults and env vars")
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.playground") {
		cfg.Server.Playground = v.GetBool("server.playground")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("filtering.allowand") {
		cfg.Filtering.AllowAnd = v.GetBool("filtering.allowand")
	}
	if v.IsSet("filtering.allowor") {
		cfg.Filtering.AllowOr = v.GetBool("filtering.allowor")
	}

	return cfg, nil
}
