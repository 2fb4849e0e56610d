package main

import (
	"fmt"
	"runtime"
	"strings"

	"arrangio/internal/partition"
)

const (
	program = "arrangio"
	version = "0.4.0"
)

// Config holds everything one run needs. It is filled from flags.
type Config struct {
	// Groups is the number of groups to create.
	Groups int
	// GroupsSet records whether -groups was given explicitly, in which case
	// it wins over the groups value of a setlist file.
	GroupsSet bool
	// Songs are LABEL:HHhMMmSSs tokens from -song.
	Songs []string
	// File is an optional setlist file (.json, .yaml, .yml or .hcl).
	File string

	Quiet       bool
	JSON        bool
	ShowVersion bool

	// Search tuning. None of these change the reported difference.
	Workers   int
	CacheSize int
	Symmetry  bool

	LogLevel  string
	LogFormat string
	// MetricsTextfile, when set, receives the run's metrics in the
	// Prometheus text format.
	MetricsTextfile string
}

// DefaultConfig returns the flag defaults.
func DefaultConfig() Config {
	return Config{
		Groups:    2,
		Workers:   runtime.GOMAXPROCS(0),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func (c Config) Validate() error {
	if c.Groups < 1 {
		return fmt.Errorf("groups must be > 0 (got %d)", c.Groups)
	}
	if len(c.Songs) == 0 && c.File == "" {
		return fmt.Errorf("at least one song is required (-song or -file)")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be > 0 (got %d)", c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}

func (c Config) solverConfig() partition.Config {
	return partition.Config{
		Workers:   c.Workers,
		CacheSize: c.CacheSize,
		Symmetry:  c.Symmetry,
	}
}
