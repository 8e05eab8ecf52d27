// Package config decodes the compiler's command-line flags, with a
// couple of settings also overridable via environment variables for
// CI/sandboxed use - the same split the teacher's own CLI used flag
// for, extended with github.com/xyproto/env/v2 the way xyproto-vibe67
// reads its own environment-driven settings.
package config

import (
	"flag"

	"github.com/xyproto/env/v2"
)

// Config holds one invocation's resolved settings.
type Config struct {
	// Source is the positional argument: path to the TinyBASIC program.
	Source string

	// Run executes the optimized binary, post-compile, and reports its
	// exit status.
	Run bool

	// Debug raises the pipeline's log level and enables -debug tracing.
	Debug bool

	// OutDir is the directory artifacts (dumps, dot files, binaries)
	// are written to.
	OutDir string
}

// Parse decodes args (normally os.Args[1:]) into a Config. Flags take
// precedence; TBC_OUTPUT_DIR and TBC_DEBUG supply defaults for users who'd
// rather set them once in their environment than repeat them on every
// invocation.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("tinybasic", flag.ContinueOnError)

	defaultOutDir := env.Str("TBC_OUTPUT_DIR", ".")
	defaultDebug := env.Bool("TBC_DEBUG")

	run := fs.Bool("run", false, "execute the optimized binary after compiling")
	fs.BoolVar(run, "r", false, "shorthand for -run")
	debug := fs.Bool("debug", defaultDebug, "enable pipeline debug logging")
	outDir := fs.String("out-dir", defaultOutDir, "directory to write compiler artifacts to")
	fs.StringVar(outDir, "o", defaultOutDir, "shorthand for -out-dir")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Run:    *run,
		Debug:  *debug,
		OutDir: *outDir,
	}

	if fs.NArg() >= 1 {
		cfg.Source = fs.Arg(0)
	}

	return cfg, nil
}
