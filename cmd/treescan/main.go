package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/treescan/internal/config"
	"github.com/bamsammich/treescan/internal/engine"
	"github.com/bamsammich/treescan/internal/filter"
	"github.com/bamsammich/treescan/internal/logging"
	"github.com/bamsammich/treescan/internal/output"
	"github.com/bamsammich/treescan/internal/stats"
)

var version = "dev"

func main() {
	// A closed downstream pipe must surface as EPIPE from the write, so the
	// scan reports it and exits 1 instead of dying from the signal.
	signal.Ignore(syscall.SIGPIPE)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// excludeFlag is a custom pflag.Value that appends each --exclude-dir
// occurrence to a filter.Set, preserving CLI order.
type excludeFlag struct {
	set *filter.Set
}

func (*excludeFlag) String() string { return "" }
func (*excludeFlag) Type() string   { return "pattern" }

func (f *excludeFlag) Set(val string) error {
	f.set.Add(val)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

//nolint:revive // cognitive-complexity: root command wires every flag
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		root           string
		maxDepth       int
		followSymlinks bool
		excludeFrom    string
		outputPath     string
		compress       bool
		verbose        bool
		quiet          bool
		logFile        string
		showVersion    bool
	)

	cliExcludes := filter.NewSet()

	rootCmd := &cobra.Command{
		Use:   "treescan --root <path> [flags]",
		Short: "List every regular file under a directory with its mtime and size",
		Long: `treescan walks a directory tree depth-first and prints one line per
regular file: path, modification time (seconds since the epoch) and size in
bytes, separated by tabs. Unreadable entries are skipped silently.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(stdout, "treescan %s\n", version)
				return nil
			}

			logger, logCloser, err := logging.New(logging.Options{
				Verbose: verbose,
				Quiet:   quiet,
				LogFile: logFile,
				Stderr:  stderr,
			})
			if err != nil {
				return err
			}
			defer logCloser.Close()
			slog.SetDefault(logger)

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				logger.Warn("failed to load config", "path", config.Path(), "error", err)
			} else if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config %s: %w", config.Path(), err)
			}

			// Apply config defaults for flags not explicitly set on CLI.
			applyConfigDefaults(cmd, cfg.Defaults, &maxDepth, &followSymlinks, &compress)

			if root == "" {
				return errors.New("--root is required")
			}
			if maxDepth < 0 {
				return fmt.Errorf("invalid --max-depth %d: must be non-negative", maxDepth)
			}

			// Config patterns come first, then CLI patterns, then the pattern file.
			excludes := filter.NewSet(cfg.Defaults.ExcludeDirs...)
			for _, p := range cliExcludes.Patterns() {
				excludes.Add(p)
			}
			if excludeFrom != "" {
				if err := excludes.LoadFile(excludeFrom); err != nil {
					return fmt.Errorf("load exclude file: %w", err)
				}
			}

			w, err := output.Open(output.Options{
				Path:     outputPath,
				Compress: compress,
				Stdout:   stdout,
			})
			if err != nil {
				logger.Error("scan failed", "error", err)
				return &exitError{code: 1}
			}

			collector := stats.NewCollector()
			scanCfg := engine.Config{
				Root:           root,
				MaxDepth:       maxDepth,
				FollowSymlinks: followSymlinks,
				Exclude:        excludes,
				Stats:          collector,
			}

			logger.Debug("starting scan",
				"root", root,
				"max_depth", maxDepth,
				"follow_symlinks", followSymlinks,
				"exclude", excludes.Patterns(),
				"output", outputPath,
				"compress", compress,
			)

			scanErr := engine.NewScanner(scanCfg).Scan(w)
			closeErr := w.Close()
			if err := errors.Join(scanErr, closeErr); err != nil {
				logger.Error("scan failed", "error", err)
				return &exitError{code: 1}
			}

			logger.Debug("scan complete", "records", w.Count(), "stats", collector.Snapshot())
			return nil
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.Flags().StringVar(&root, "root", "", "directory to scan (required)")
	rootCmd.Flags().
		IntVar(&maxDepth, "max-depth", engine.DefaultMaxDepth, "maximum directory depth to descend")
	rootCmd.Flags().
		BoolVar(&followSymlinks, "follow-symlinks", false, "descend into symlinked directories and report symlinked files")
	rootCmd.Flags().
		Var(&excludeFlag{set: cliExcludes}, "exclude-dir", "prune directories whose name or root-relative path is PATTERN (repeatable)")
	rootCmd.Flags().
		StringVar(&excludeFrom, "exclude-from", "", "read exclusion patterns from FILE")
	rootCmd.Flags().
		StringVarP(&outputPath, "output", "o", "", "write records to FILE instead of stdout")
	rootCmd.Flags().BoolVar(&compress, "compress", false, "zstd-compress the output stream")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	rootCmd.AddCommand(newDocsCmd())

	return rootCmd
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	maxDepth *int,
	followSymlinks *bool,
	compress *bool,
) {
	if !cmd.Flags().Changed("max-depth") && defaults.MaxDepth != nil {
		*maxDepth = *defaults.MaxDepth
	}
	if !cmd.Flags().Changed("follow-symlinks") && defaults.FollowSymlinks != nil {
		*followSymlinks = *defaults.FollowSymlinks
	}
	if !cmd.Flags().Changed("compress") && defaults.Compress != nil {
		*compress = *defaults.Compress
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
