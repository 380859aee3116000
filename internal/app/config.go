package app

import (
	"errors"

	"github.com/vk/refidx/internal/config"
	"github.com/vk/refidx/internal/mapping"
)

// Config holds everything an App instance needs to run one command.
type Config struct {
	Command string // build, map-sc, map-bulk or map-atac

	LogFormat string
	LogLevel  string
	Quiet     bool

	ProfilePath string

	// Build carries the flag-provided build request; BuildFlagsSet
	// records which flags were set explicitly so that profile values
	// survive where a flag was left at its default.
	Build         *config.BuildRequest
	BuildFlagsSet map[string]bool

	MapSC   *mapping.SCRequest
	MapBulk *mapping.BulkRequest
	MapATAC *mapping.ATACRequest
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Command == "" {
		return nil, errors.New("Command is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
