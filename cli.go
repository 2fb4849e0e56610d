package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitUsage        = 2
	exitInvalidInput = 9
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// songList collects repeated -song flags. One value may hold several
// whitespace-separated tokens.
type songList []string

func (s *songList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, " ")
}

func (s *songList) Set(v string) error {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return errors.New("empty song")
	}
	*s = append(*s, fields...)
	return nil
}

const usage = `Usage: arrangio [flags] -s LABEL:HHhMMmSSs [-s LABEL:HHhMMmSSs ...]
       arrangio [flags] -f SETLIST

Arranges a set of songs in groups with similar total play time.

  LABEL:HHhMMmSSs  song label and play time, e.g. song01:3m27s (hours and
                   minutes are optional, seconds are required)
  SETLIST          .json, .yaml, .yml or .hcl file listing songs

Flags:
`

// parseArgs turns command-line arguments into a Config. The boolean is true
// when the program should stop without error, e.g. after -help.
func parseArgs(args []string, output io.Writer) (Config, bool, error) {
	cfg := DefaultConfig()
	var songs songList

	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
		fs.PrintDefaults()
	}

	fs.IntVar(&cfg.Groups, "groups", cfg.Groups, "number of groups to create")
	fs.IntVar(&cfg.Groups, "g", cfg.Groups, "shorthand for -groups")
	fs.Var(&songs, "song", "song information, e.g. label:00h03m27s (repeatable)")
	fs.Var(&songs, "s", "shorthand for -song")
	fs.StringVar(&cfg.File, "file", "", "setlist file to read songs (and groups) from")
	fs.StringVar(&cfg.File, "f", "", "shorthand for -file")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "quiet mode: no banner, errors-only logging")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print the version and exit")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "shorthand for -version")
	fs.BoolVar(&cfg.JSON, "json", false, "output the result as JSON")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines used to search in parallel")
	fs.IntVar(&cfg.CacheSize, "cache-size", 0, "memo cache bound in states (0 = unbounded, -1 = disabled)")
	fs.BoolVar(&cfg.Symmetry, "symmetry", false, "treat permuted groups as one search state")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "logging level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log output format: text or json")
	fs.StringVar(&cfg.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, true, nil
		}
		return Config{}, false, &ExitError{Code: exitUsage, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return Config{}, false, &ExitError{Code: exitUsage, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}

	cfg.Songs = songs
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "groups" || f.Name == "g" {
			cfg.GroupsSet = true
		}
	})

	if cfg.ShowVersion {
		return cfg, false, nil
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, false, &ExitError{Code: exitUsage, Message: err.Error()}
	}
	return cfg, false, nil
}
