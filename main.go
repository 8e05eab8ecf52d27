// This is the main-driver for our compiler.
package main

import (
	"fmt"
	"os"

	"github.com/skx/tinybasic/compiler"
	"github.com/skx/tinybasic/config"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing arguments: %s\n", err)
		os.Exit(1)
	}

	if cfg.Source == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [-r] [-debug] [-o dir] file.bas\n", os.Args[0])
		os.Exit(1)
	}

	comp := compiler.New(cfg.Source, cfg.OutDir)
	if cfg.Debug {
		comp.SetDebug(true)
	}

	if err := comp.Compile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling %s: %s\n", cfg.Source, err)
		os.Exit(1)
	}

	if cfg.Run {
		if err := comp.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %s\n", cfg.Source, err)
			os.Exit(1)
		}
	}
}
