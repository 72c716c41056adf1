package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	serverrun "github.com/rzbill/ulid/internal/cmd/server"
	cfgpkg "github.com/rzbill/ulid/internal/config"
	pebblestore "github.com/rzbill/ulid/internal/storage/pebble"
	logpkg "github.com/rzbill/ulid/pkg/log"
	"github.com/rzbill/ulid/pkg/ulid"
	"github.com/spf13/cobra"
)

func main() {
	// Respect ULID_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("ULID_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(logpkg.WithLevel(parsed))

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ulid",
		Short: "ULID generation CLI",
		Long:  "Generates, inspects, and validates ULIDs, and runs the issuance server.",
	}

	// new
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Generate ULIDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("count")
			zero, _ := cmd.Flags().GetBool("zero")
			if n < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			for i := 0; i < n; i++ {
				var out fmt.Stringer
				var ok bool
				if zero {
					out, ok = ulid.TryNewZeroable()
				} else {
					out, ok = ulid.TryNew()
				}
				if !ok {
					return fmt.Errorf("no ULID available")
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	newCmd.Flags().IntP("count", "n", 1, "Number of ULIDs to generate")
	newCmd.Flags().Bool("zero", false, "Generate in the zero-allowed domain")
	rootCmd.AddCommand(newCmd)

	// inspect
	inspectCmd := &cobra.Command{
		Use:   "inspect <ulid>",
		Short: "Decode a ULID into its timestamp and randomness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := ulid.ParseZeroable(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ulid:       %s\n", z)
			fmt.Fprintf(out, "timestamp:  %d ms\n", z.Timestamp())
			fmt.Fprintf(out, "time:       %s\n", z.Time().Format(time.RFC3339Nano))
			fmt.Fprintf(out, "randomness: %s\n", z.Randomness())
			if z.IsZero() {
				fmt.Fprintln(out, "zero:       true")
			}
			return nil
		},
	}
	rootCmd.AddCommand(inspectCmd)

	// validate
	validateCmd := &cobra.Command{
		Use:   "validate <string>...",
		Short: "Check whether strings are valid ULIDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bad := 0
			for _, arg := range args {
				if err := ulid.Validate(arg); err != nil {
					fmt.Fprintf(out, "%s: %v\n", arg, err)
					bad++
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", arg)
			}
			if bad > 0 {
				return fmt.Errorf("%d invalid", bad)
			}
			return nil
		},
	}
	rootCmd.AddCommand(validateCmd)

	// canonicalize
	canonicalizeCmd := &cobra.Command{
		Use:   "canonicalize <string>...",
		Short: "Rewrite ULID strings into canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				c, err := ulid.Canonicalize(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	rootCmd.AddCommand(canonicalizeCmd)

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the ULID issuance server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("http") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("fsync") {
				cfg.Fsync = fsyncMode
			}
			if cmd.Flags().Changed("fsync-interval-ms") {
				cfg.FsyncIntervalMs = fsyncIntervalMs
			}
			mode, err := pebblestore.ParseFsyncMode(cfg.Fsync)
			if err != nil {
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if logLevel != "" {
				_ = os.Setenv("ULID_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("ULID_LOG_FORMAT", logFormat)
			}
			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       cfg.DataDir,
				HTTPAddr:      cfg.HTTPAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(cfg.FsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("config", "", "Path to JSON config file")
	serverStartCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", ":8080", "HTTP listen address")
	serverStartCmd.Flags().String("fsync", "always", "Fsync mode: always|interval|never")
	serverStartCmd.Flags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms (default 5)")
	serverStartCmd.Flags().String("log-level", os.Getenv("ULID_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("ULID_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	return rootCmd
}
