// Command layoutkit extracts tables and paragraphs from PDF files and page
// dumps.
//
// Usage:
//
//	layoutkit --file invoice.pdf                 # writes invoice.pdf.json and prints it
//	layoutkit --no-stdout a.pdf b.pdf c.pdf      # three documents in parallel
//	layoutkit --format=markdown --no-save doc.pdf
//	layoutkit --db results.db --line_minCols=3 doc.pdf
//
// Any option name of the config package may be given as --name=value and
// overrides the value from --config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/layoutkit"
	"github.com/tsawler/layoutkit/config"
	"github.com/tsawler/layoutkit/export"
	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "layoutkit:", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	files      []string
	out        string
	noSave     bool
	noStdout   bool
	debug      bool
	configPath string
	format     export.Format
	dbPath     string
	jobs       int
	overrides  map[string]string
}

// errUsage is returned after the usage text has been printed
var errUsage = errors.New("invalid arguments")

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	flagArgs, overrides := splitArgs(args)

	fs := flag.NewFlagSet("layoutkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "input PDF or page dump (more may follow as arguments)")
	out := fs.String("out", "", "output file (default: <input> plus the format extension)")
	noSave := fs.Bool("no-save", false, "do not write output files")
	noStdout := fs.Bool("no-stdout", false, "do not print output")
	debug := fs.Bool("debug", false, "log pipeline stages")
	configPath := fs.String("config", "", "YAML or JSON options file")
	formatName := fs.String("format", "json", "output format: json, jsonl, markdown, html, csv")
	dbPath := fs.String("db", "", "SQLite database to store components in")
	jobs := fs.Int("jobs", runtime.NumCPU(), "documents processed in parallel")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: layoutkit [flags] [--option=value ...] [file ...]")
		fs.PrintDefaults()
		fmt.Fprintln(stderr, "options:", strings.Join(config.Names(), ", "))
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, errUsage
	}

	f := &cliFlags{
		out:        *out,
		noSave:     *noSave,
		noStdout:   *noStdout,
		debug:      *debug,
		configPath: *configPath,
		dbPath:     *dbPath,
		jobs:       *jobs,
		overrides:  overrides,
	}
	if *file != "" {
		f.files = append(f.files, *file)
	}
	f.files = append(f.files, fs.Args()...)
	if len(f.files) == 0 {
		fs.Usage()
		return nil, errUsage
	}
	if f.out != "" && len(f.files) > 1 {
		return nil, fmt.Errorf("--out needs a single input, got %d", len(f.files))
	}
	if f.jobs < 1 {
		f.jobs = 1
	}
	var err error
	if f.format, err = export.ParseFormat(*formatName); err != nil {
		return nil, err
	}
	return f, nil
}

// splitArgs separates pipeline option overrides from command flags. An
// argument is an override when its name, without leading dashes, is a
// config option. A bare --name sets a boolean option to true.
func splitArgs(args []string) ([]string, map[string]string) {
	known := make(map[string]bool)
	for _, n := range config.Names() {
		known[n] = true
	}

	var rest []string
	overrides := make(map[string]string)
	for i, a := range args {
		if a == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if !strings.HasPrefix(a, "-") {
			rest = append(rest, a)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !known[name] {
			rest = append(rest, a)
			continue
		}
		if !hasValue {
			value = "true"
		}
		overrides[name] = value
	}
	return rest, overrides
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var st *store.Store
	if f.dbPath != "" {
		if st, err = store.Open(f.dbPath); err != nil {
			return err
		}
		defer st.Close()
	}

	exporter := export.NewExporterWithConfig(exportConfig(f.format))
	outputs := make([]string, len(f.files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.jobs)
	for i, file := range f.files {
		i, file := i, file
		g.Go(func() error {
			comps, err := extract(ctx, f, file, logger)
			if err != nil {
				return err
			}
			if st != nil {
				id, err := st.Save(ctx, file, comps)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				logger.Info("stored", "file", file, "document", id)
			}

			text, err := exporter.ExportToString(comps)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			if !f.noSave {
				path := outputPath(file, f.out, f.format)
				if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				logger.Info("saved", "file", file, "out", path, "components", len(comps))
			}
			outputs[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if !f.noStdout {
		for _, text := range outputs {
			if _, err := io.WriteString(stdout, text); err != nil {
				return err
			}
		}
	}
	return nil
}

func extract(ctx context.Context, f *cliFlags, file string, logger *slog.Logger) ([]model.Component, error) {
	ext := layoutkit.Open(file).Context(ctx).WithLogger(logger.With("file", file))
	if f.configPath != "" {
		ext = ext.WithConfigFile(f.configPath)
	}
	for name, value := range f.overrides {
		ext = ext.WithOption(name, value)
	}

	comps, warnings, err := ext.Components()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn(w.Message, "file", file)
	}
	return comps, nil
}

func exportConfig(format export.Format) export.Config {
	c := export.DefaultConfig()
	c.Format = format
	return c
}

// outputPath returns out when given, else the input path with the format
// extension appended.
func outputPath(input, out string, format export.Format) string {
	if out != "" {
		return out
	}
	return input + format.FileExtension()
}
