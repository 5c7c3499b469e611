// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pasparse checks the syntax of Pascal programs.
//
// Installation
//
// To install:
//
//	$ go install modernc.org/pascal/cmd/pasparse
//
// Dependencies
//
// Some external programs might be used, depending on what extension the
// input files have.
//
//	TANGLE(1)
//
//	NAME
//	       tangle - translate WEB to Pascal
//
//	SYNOPSIS
//	       tangle [options] webfile[.web] [changefile[.ch]]
//
// Used to convert a .web file, like tex.web, to a .p (Pascal) file which is
// then checked. Tangle binary is part of the Debian package 'texlive'.
//
// Invocation
//
// To run the command:
//
//	$ pasparse [options] input-file...
//
// Every input file is lexed and parsed. Diagnostics are written to stderr as
//
//	file(line,col) Severity: message
//
// The exit status is 1 if any diagnostic was reported or any input could not
// be processed.
//
// Options
//
//	--config file
//
// Read defaults for the options below from a TOML file. Options given on
// the command line take precedence. Recognized keys are color, ast, tokens,
// stats, with, source_context, context_width and tangle.
//
//	--ast
//
// Dump the syntax tree of every input.
//
//	--tokens
//
// Dump the tokens of every input.
//
//	--with
//
// List the record fields bound by with statements.
//
//	--stats
//
// Show a summary of processed inputs.
//
//	--context
//
// Show the source line and a caret below each diagnostic.
//
//	--color
//
// Colorize diagnostics.
//
//	-v, --verbose
//
// Log progress to stderr.
//
//	--stack
//
// Show dying stack traces.
package main // import "modernc.org/pascal/cmd/pasparse"

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"modernc.org/pascal"
)

// errDiagnostics is returned when the inputs were processed but at least one
// diagnostic was reported.
var errDiagnostics = errors.New("diagnostics reported")

func fatal(stack bool, args ...interface{}) {
	if stack {
		fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
	}
	fmt.Fprintln(os.Stderr, strings.TrimSpace(fmt.Sprint(args...)))
	os.Exit(1)
}

func main() {
	task := newTask(os.Stdout, os.Stderr)
	if err := task.command().Execute(); err != nil {
		if errors.Is(err, errDiagnostics) {
			os.Exit(1)
		}

		fatal(task.stack, err)
	}
}

type task struct {
	cfg        config
	cleanup    []func()
	configFile string // --config
	log        *slog.Logger
	stats      stats
	stderr     io.Writer
	stdout     io.Writer
	tempDir    string

	stack   bool // --stack
	verbose bool // -v
}

func newTask(stdout, stderr io.Writer) *task {
	return &task{
		cfg:    defaultConfig(),
		stderr: stderr,
		stdout: stdout,
	}
}

func (t *task) command() *cobra.Command {
	var flags config
	cmd := &cobra.Command{
		Use:           "pasparse [options] input-file...",
		Short:         "Check the syntax of Pascal programs",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if t.configFile != "" {
				cfg, err := loadConfig(t.configFile)
				if err != nil {
					return err
				}

				t.cfg = cfg
			}
			t.cfg.override(cmd.Flags().Changed, flags)
			return t.main(args)
		},
	}
	cmd.SetOut(t.stdout)
	cmd.SetErr(t.stderr)
	f := cmd.Flags()
	f.StringVar(&t.configFile, "config", "", "TOML file with option defaults")
	f.BoolVarP(&t.verbose, "verbose", "v", false, "log progress to stderr")
	f.BoolVar(&t.stack, "stack", false, "show dying stack traces")
	f.BoolVar(&flags.AST, "ast", false, "dump the syntax tree")
	f.BoolVar(&flags.Tokens, "tokens", false, "dump the tokens")
	f.BoolVar(&flags.With, "with", false, "list fields bound by with statements")
	f.BoolVar(&flags.Stats, "stats", false, "show a summary of processed inputs")
	f.BoolVar(&flags.Context, "context", false, "show the source line of each diagnostic")
	f.BoolVar(&flags.Color, "color", false, "colorize diagnostics")
	return cmd
}

func (t *task) main(files []string) error {
	defer func() {
		for _, v := range t.cleanup {
			v()
		}
	}()

	level := slog.LevelWarn
	if t.verbose {
		level = slog.LevelDebug
	}
	t.log = slog.New(slog.NewTextHandler(t.stderr, &slog.HandlerOptions{Level: level}))
	t.stats.start = time.Now()
	rep := newReporter(t.stderr, t.cfg)
	failed := false
	for _, fn := range files {
		if err := t.file(rep, fn); err != nil {
			t.log.Debug("failed", "file", fn, "err", err)
			fmt.Fprintln(t.stderr, err)
			failed = true
		}
	}
	if t.cfg.Stats {
		t.stats.print(t.stdout)
	}
	switch {
	case failed:
		return fmt.Errorf("some inputs could not be processed")
	case t.stats.diags != 0:
		return errDiagnostics
	}

	return nil
}

func (t *task) file(rep *reporter, fn string) error {
	src, name, err := t.source(fn)
	if err != nil {
		return err
	}

	t0 := time.Now()
	l := pascal.NewLexer(name, src)
	toks := l.Tokenize()
	t.log.Debug("lexed", "file", name, "tokens", len(toks), "errors", len(l.Errors()), "took", time.Since(t0))
	if t.cfg.Tokens {
		for _, v := range toks {
			fmt.Fprintf(t.stdout, "%s\n", v)
		}
	}

	t1 := time.Now()
	prog, perrs := pascal.NewParser(pascal.FilterErrors(toks)).ParseProgram()
	t.log.Debug("parsed", "file", name, "errors", len(perrs), "took", time.Since(t1))
	diags := append(l.Errors(), perrs...)
	diags.Sort()
	rep.source(name, src)
	for _, v := range diags {
		rep.report(v)
	}
	if t.cfg.AST {
		fmt.Fprintln(t.stdout, pascal.PrettyString(prog))
	}
	if t.cfg.With {
		for _, v := range pascal.ResolveWith(prog) {
			pos := v.Ref.Position()
			fmt.Fprintf(t.stdout, "%s(%d,%d) %s: %s.%s\n", pos.Filename, pos.Line, pos.Column, v.Ref.Name.Name(), recordString(v.Record), v.Field.Name())
		}
	}
	t.stats.add(src, toks, diags)
	return nil
}

// source returns the Pascal text of fn and the name used in positions. WEB
// inputs are first converted using tangle.
func (t *task) source(fn string) (src []byte, name string, err error) {
	if !strings.EqualFold(filepath.Ext(fn), ".web") {
		if src, err = os.ReadFile(fn); err != nil {
			return nil, "", err
		}

		return src, fn, nil
	}

	p, err := t.web2p(fn)
	if err != nil {
		return nil, "", err
	}

	if src, err = os.ReadFile(p); err != nil {
		return nil, "", fmt.Errorf("could not read tangled output file %q: %w", p, err)
	}

	return src, fn[:len(fn)-len(".web")] + ".p", nil
}

// web2p runs tangle on fn in a temporary directory and returns the path of
// the resulting Pascal file.
func (t *task) web2p(fn string) (string, error) {
	tangle, err := exec.LookPath(t.cfg.Tangle)
	if err != nil {
		return "", err
	}

	if t.tempDir == "" {
		tempDir, err := os.MkdirTemp("", "pasparse-")
		if err != nil {
			return "", err
		}

		t.tempDir = tempDir
		t.cleanup = append(t.cleanup, func() { os.RemoveAll(tempDir) })
	}

	b, err := os.ReadFile(fn)
	if err != nil {
		return "", err
	}

	base := filepath.Base(fn)
	if err := os.WriteFile(filepath.Join(t.tempDir, base), b, 0660); err != nil {
		return "", err
	}

	cmd := exec.Command(tangle, "-underline", base)
	cmd.Dir = t.tempDir
	t.log.Debug("tangle", "file", fn, "dir", t.tempDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s: %s\n%w", fn, out, err)
	}

	return filepath.Join(t.tempDir, base[:len(base)-len(".web")]+".p"), nil
}
