package config

import (
	"os"

	"github.com/rs/zerolog"
)

var Config = HMNConfig{
	Env:      Dev,
	LogLevel: zerolog.InfoLevel,
	Spoilers: SpoilerConfig{
		PlaintextPlaceholder: "spoiler",
	},
}

func init() {
	if env := os.Getenv("HMN_ENV"); env != "" {
		Config.Env = Environment(env)
	}
	if lvl, err := zerolog.ParseLevel(os.Getenv("HMN_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		Config.LogLevel = lvl
	}
}
