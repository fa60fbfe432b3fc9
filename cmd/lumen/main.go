// Command lumen runs the editor intelligence bridge against a workspace
// from the command line: connect to the configured analysis servers, open
// documents, and report diagnostics.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/lumen/internal/app"
	"github.com/dshills/lumen/internal/config"
	"github.com/dshills/lumen/internal/intel"
	"github.com/dshills/lumen/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "lumen",
		Short:         "Editor intelligence bridge",
		Long:          "Lumen connects analysis servers to an editing surface:\nhover, completion, navigation, and diagnostics for a workspace.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (TOML)")

	root.AddCommand(newCheckCmd(&configPath))
	root.AddCommand(newServersCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "lumen", version)
		},
	}
}

func newServersCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List configured analysis servers and their availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(cfg.Servers))
			for name := range cfg.Servers {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				srv := cfg.Servers[name]
				status := "missing"
				if _, err := exec.LookPath(srv.Command); err == nil {
					status = "available"
				}
				fmt.Fprintf(out, "%-28s %-10s %s\n", name, status, strings.Join(srv.Languages, ", "))
			}
			return nil
		},
	}
}

func newCheckCmd(configPath *string) *cobra.Command {
	var (
		wait    time.Duration
		maxOpen int
	)

	cmd := &cobra.Command{
		Use:   "check [workspace]",
		Short: "Run diagnostics over a workspace and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := "."
			if len(args) == 1 {
				workspace = args[0]
			}
			workspace, err := filepath.Abs(workspace)
			if err != nil {
				return err
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Config{
				Level: cfg.LogLevel,
				File:  cfg.LogFile,
				Quiet: true,
			})
			if err != nil {
				return err
			}
			defer logger.Close()

			return runCheck(cmd, cfg, logger, workspace, wait, maxOpen)
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 3*time.Second, "how long to wait for diagnostics to settle")
	cmd.Flags().IntVar(&maxOpen, "max-files", 200, "maximum number of files to open")
	return cmd
}

func runCheck(cmd *cobra.Command, cfg config.Config, logger *logging.Logger, workspace string, wait time.Duration, maxOpen int) error {
	surface := app.NewHeadlessSurface()
	a, err := app.New(cfg, surface, logger.Slog())
	if err != nil {
		return err
	}
	defer a.Shutdown()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.Start(ctx, workspace); err != nil {
		return err
	}

	paths := workspaceFiles(cfg, workspace, maxOpen)
	for _, path := range paths {
		surface.OpenResource(intel.PathToIdentifier(path))
		a.OpenDocument(ctx, path, nil)
	}
	a.RefreshDiagnostics(ctx)

	// Push diagnostics arrive as servers analyze; give them a window.
	time.Sleep(wait)

	out := cmd.OutOrStdout()
	total := 0
	for _, path := range paths {
		markers := surface.Markers(intel.PathToIdentifier(path))
		for _, m := range markers {
			fmt.Fprintf(out, "%s:%d:%d: %s: %s\n",
				path, m.StartLine, m.StartColumn, m.Severity, m.Message)
			total++
		}
	}

	sum := a.DiagnosticsSummary()
	fmt.Fprintf(out, "\n%d findings in %d files (%d errors, %d warnings)\n",
		total, sum.Files, sum.Errors, sum.Warnings)

	if sum.Errors > 0 {
		return fmt.Errorf("%d errors", sum.Errors)
	}
	return nil
}

// workspaceFiles collects files in covered languages, skipping the usual
// generated and vendored trees.
func workspaceFiles(cfg config.Config, root string, limit int) []string {
	var paths []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || len(paths) >= limit {
			return filepath.SkipAll
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor" || name == "target") {
				return filepath.SkipDir
			}
			return nil
		}
		language := intel.DetectLanguage(path)
		if language == "" {
			return nil
		}
		if _, _, ok := cfg.ServerForLanguage(language); ok {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}
