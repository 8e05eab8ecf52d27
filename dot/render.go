package dot

import (
	"os/exec"

	"github.com/skx/tinybasic/logx"
)

// Render shells out to the `dot` binary to turn filename (a file already
// written with a Digraph's String()) into filename+".svg". Graphviz not
// being installed is not a compilation failure: it's logged and the
// pipeline continues, exactly as the tool-missing diagnostic in
// SPEC_FULL.md's error handling section requires.
func Render(filename string, logger *logx.Logger) {
	cmd := exec.Command("dot", "-Tsvg", "-O", filename)

	if err := cmd.Run(); err != nil {
		logger.Warn("dot rendering failed; Graphviz might not be installed",
			"file", filename, "error", err, "see", "https://graphviz.org/download/")
	}
}
