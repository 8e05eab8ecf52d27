// Package compiler ties the pipeline together: source text in, parse
// tree through codegen through the optimizer through the ELF emitter,
// artifacts out. The public API - New, SetDebug, Compile - mirrors the
// teacher's own compiler package's shape; everything it does past
// tokenizing is specific to this language.
package compiler

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/skx/tinybasic/asm"
	"github.com/skx/tinybasic/codegen"
	"github.com/skx/tinybasic/dot"
	"github.com/skx/tinybasic/elf"
	"github.com/skx/tinybasic/lexer"
	"github.com/skx/tinybasic/logx"
	"github.com/skx/tinybasic/parser"
	"github.com/skx/tinybasic/symtab"
)

// Compiler holds one compilation's state: the source path, the output
// directory every artifact is written under, and the debug flag that
// raises the logger's level.
type Compiler struct {
	path   string
	outDir string
	debug  bool
	logger *logx.Logger
}

// New creates a compiler for the program at path, writing its artifacts
// under outDir.
func New(path string, outDir string) *Compiler {
	return &Compiler{path: path, outDir: outDir, logger: logx.Default()}
}

// SetDebug changes the debug-flag for this compilation, raising the
// logger's level so every pipeline stage traces its work.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
	if val {
		logx.LevelVar.Set(slog.LevelDebug)
	}
}

// Compile runs the full pipeline: parse, emit the unoptimized
// dump/executable, optimize, emit the optimized dump/executable. Each
// output file is written and closed before the next stage starts; a
// write failure aborts immediately, per the resource model.
func (c *Compiler) Compile() error {
	src, err := os.ReadFile(c.path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", c.path)
	}

	tbl := symtab.New()
	p := parser.New(lexer.New(string(src)), tbl)
	tree, err := p.Parse()
	if err != nil {
		return errors.Wrap(err, "parsing")
	}
	c.logger.Debug("parsed source", "source", c.path, "lines", len(tree.Lines))

	// parse_tree.dot and ast.dot render the same pre-optimization tree -
	// see the design note on the missing parser-generator dependency.
	if err := c.writeDot("parse_tree.dot", tree.ToNode()); err != nil {
		return err
	}
	if err := c.writeDot("ast.dot", tree.ToNode()); err != nil {
		return err
	}

	unopt, err := codegen.New(tbl).Generate(tree)
	if err != nil {
		return errors.Wrap(err, "generating unoptimized assembly")
	}
	if err := c.writeFile("udump.asm", []byte(unopt.AsAsm())); err != nil {
		return err
	}
	if err := elf.WriteFile(c.artifactPath("udump.elf"), unopt); err != nil {
		return errors.Wrap(err, "writing unoptimized executable")
	}
	c.logger.Debug("wrote unoptimized artifacts", "entries", len(unopt.Entries))

	optTree := tree.Optimize()
	c.logger.Debug("optimized syntax tree", "lines", len(optTree.Lines))
	if err := c.writeDot("ost.dot", optTree.ToNode()); err != nil {
		return err
	}

	optProg, err := codegen.New(tbl).Generate(optTree)
	if err != nil {
		return errors.Wrap(err, "generating optimized assembly")
	}
	optProg = asm.Peephole(optProg)
	c.logger.Debug("ran peephole pass", "entries", len(optProg.Entries))

	if err := c.writeFile("dump.asm", []byte(optProg.AsAsm())); err != nil {
		return err
	}
	if err := elf.WriteFile(c.artifactPath("dump.elf"), optProg); err != nil {
		return errors.Wrap(err, "writing optimized executable")
	}

	c.logger.Debug("compilation finished", "source", c.path, "out", c.outDir)
	return nil
}

// Run executes the optimized binary as a child process, inheriting
// stdin/stdout/stderr, and reports its exit status - the -r/--run flag's
// behaviour.
func (c *Compiler) Run() error {
	return runChild(c.artifactPath("dump.elf"))
}

func (c *Compiler) artifactPath(name string) string {
	return filepath.Join(c.outDir, name)
}

func (c *Compiler) writeFile(name string, data []byte) error {
	if err := os.WriteFile(c.artifactPath(name), data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	return nil
}

func (c *Compiler) writeDot(name string, root *dot.Node) error {
	src := dot.New(root).String()
	if err := c.writeFile(name, []byte(src)); err != nil {
		return err
	}
	dot.Render(c.artifactPath(name), c.logger)
	return nil
}
