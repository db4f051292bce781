package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"console-bridge/internal/adapters/admin"
	"console-bridge/internal/adapters/schemafile"
	"console-bridge/internal/config"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bridge",
		Short:        "Run game server console commands from Discord",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newRunCommand(),
		newCheckCommand(),
		newReloadCommand(),
	)

	return cmd
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and the game server and serve commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBridge(cmd.Context())
		},
	}
}

func runBridge(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return err
	}
	InitLogger(cfg.LogLevel, cfg.LogFormat)

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			slog.Error("Application shutdown error", "error", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		slog.Error("Failed to start application", "error", err)
		return err
	}

	WaitForShutdown(func() { app.Reload(ctx) })
	return nil
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "check [schema-file]",
		Short:   "Validate a command schema file without connecting anywhere",
		Args:    cobra.MaximumNArgs(1),
		Example: `bridge check commands.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := os.Getenv("SCHEMA_PATH")
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = "commands.yml"
			}
			return checkSchema(cmd, path)
		},
	}
}

func checkSchema(cmd *cobra.Command, path string) error {
	snap, err := schemafile.NewSource(path).Load(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, w := range snap.Warnings() {
		fmt.Fprintf(out, "Warning: %v\n", w)
	}
	fmt.Fprintf(out, "%s: %d commands and %d role groups OK\n", path, snap.Len(), len(snap.Groups()))
	return nil
}

func newReloadCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "reload",
		Short:   "Ask a running bridge to reload its command schema",
		Args:    cobra.NoArgs,
		Example: `bridge reload --admin-addr 127.0.0.1:2112`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			report, err := admin.RequestReload(ctx, &http.Client{}, addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	defaultAddr := os.Getenv("ADMIN_ADDR")
	if defaultAddr == "" {
		defaultAddr = config.DefaultAdminAddr
	}
	cmd.Flags().StringVar(&addr, "admin-addr", defaultAddr, "Admin address of the running bridge")

	return cmd
}
