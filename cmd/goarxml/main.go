// Command goarxml is a CLI tool for loading, querying, and dumping the
// constants defined in AUTOSAR ARXML documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/goarxml/goarxml"
	"github.com/goarxml/goarxml/cmd/internal/cliutil"
	"github.com/goarxml/goarxml/config"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
	exitDiags = 2 // documents loaded but diagnostics reached fail_at
)

// exitCodeError carries a specific exit code through cobra.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

type cli struct {
	configPath string
	paths      []string
	schema     string
	logLevel   string
	verbose    int
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := rootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			if exitErr.code != exitDiags {
				printError("%v", exitErr.err)
			}
			return exitErr.code
		}
		printError("%v", err)
		return exitError
	}
	return exitOK
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:   "goarxml",
		Short: "ARXML constant parser and query tool",
		Long: `goarxml loads AUTOSAR ARXML documents and builds the value trees of
the constants (CONSTANT-SPECIFICATION) they define.

Both the 3.x literal dialect and the 4.x value-specification dialect
are supported; select one with --schema.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringArrayVarP(&c.paths, "path", "p", nil, "file, directory or ** glob to load (repeatable)")
	flags.StringVar(&c.schema, "schema", "", "schema version (3.x or 4.x)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.CountVarP(&c.verbose, "verbose", "v", "enable debug logging (-vv for trace)")

	cmd.AddCommand(
		c.loadCmd(),
		c.listCmd(),
		c.dumpCmd(),
		c.getCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				printVersion(cmd)
			},
		},
	)
	return cmd
}

// config loads the layered configuration and applies command-line overrides.
func (c *cli) config() (*config.Config, error) {
	loader := config.NewLoader(slog.New(slog.DiscardHandler))
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = loader.LoadFile(c.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	override := &config.Config{
		SchemaVersion: c.schema,
		Paths:         c.paths,
		LogLevel:      c.logLevel,
	}
	switch {
	case c.verbose >= 2:
		override.LogLevel = "trace"
	case c.verbose == 1:
		override.LogLevel = "debug"
	}
	cfg.Merge(override)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// Commands print their own summaries; only debug and trace go to stderr.
	if level >= slog.LevelInfo {
		return nil, nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})), nil
}

// buildSource composes a Source from the configured paths: directories
// are walked recursively, files are used as given.
func buildSource(cfg *config.Config) (goarxml.Source, error) {
	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	expanded, err := cliutil.ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	var (
		sources []goarxml.Source
		files   []string
	)
	for _, p := range expanded {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		src, err := goarxml.DirTree(p, goarxml.WithExtensions(cfg.Extensions...))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(files) > 0 {
		sources = append(sources, goarxml.Files(files...))
	}
	if len(sources) == 0 {
		return nil, goarxml.ErrNoSources
	}
	return goarxml.Multi(sources...), nil
}

// loadWorkspace runs goarxml.Load with the effective configuration.
// A workspace is returned together with a *goarxml.LoadError when the
// diagnostics reached fail_at.
func (c *cli) loadWorkspace(ctx context.Context) (*goarxml.Workspace, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	logger, err := setupLogger(cfg)
	if err != nil {
		return nil, err
	}
	src, err := buildSource(cfg)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.LoadOptions(logger)
	if err != nil {
		return nil, err
	}
	return goarxml.Load(ctx, src, opts...)
}

// mustLoad loads the workspace and turns a diagnostics failure into an
// error after printing the diagnostics to stderr.
func (c *cli) mustLoad(cmd *cobra.Command) (*goarxml.Workspace, error) {
	ws, err := c.loadWorkspace(cmd.Context())
	if err == nil {
		return ws, nil
	}
	if ws != nil && errors.Is(err, goarxml.ErrDiagnosticsFailed) {
		for _, d := range ws.Diagnostics {
			fmt.Fprintln(cmd.ErrOrStderr(), "  "+d.String())
		}
	}
	return nil, &exitCodeError{code: exitError, err: err}
}

func printVersion(cmd *cobra.Command) {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Fprintf(cmd.OutOrStdout(), "goarxml %s\n", version)
}

func printError(format string, args ...any) {
	cliutil.PrintError(format, args...)
}
