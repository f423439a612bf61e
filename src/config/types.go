package config

import "github.com/rs/zerolog"

type Environment string

const (
	Live Environment = "live"
	Beta             = "beta"
	Dev              = "dev"
)

type HMNConfig struct {
	Env      Environment
	LogLevel zerolog.Level
	Spoilers SpoilerConfig
}

type SpoilerConfig struct {
	// Text shown in place of a spoiler when rendering plaintext. A topic, if any, is appended as
	// "[spoiler: topic]".
	PlaintextPlaceholder string
}
