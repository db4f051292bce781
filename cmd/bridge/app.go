package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"console-bridge/internal/adapters/admin"
	"console-bridge/internal/adapters/discord"
	"console-bridge/internal/adapters/discord/commands"
	"console-bridge/internal/adapters/rcon"
	"console-bridge/internal/adapters/schemafile"
	"console-bridge/internal/config"
	"console-bridge/internal/core/schema"
	"console-bridge/internal/core/services/dispatch"
	"console-bridge/internal/core/services/reload"
	"console-bridge/internal/core/services/sink"
	"console-bridge/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

type App struct {
	config    *config.Config
	store     *schema.Store
	rcon      *rcon.Client
	sink      *sink.Queue
	engine    *dispatch.Engine
	reloader  *reload.Controller
	discord   *discordgo.Session
	publisher *commands.Publisher
	admin     *admin.Server
}

// NewApp loads the schema and wires every component. Nothing talks to
// Discord or the game server until Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	source := schemafile.NewSource(cfg.SchemaPath)
	snap, err := source.Load(ctx)
	if err != nil {
		slog.Error("Failed to load command schema", "path", cfg.SchemaPath, "error", err)
		return nil, err
	}
	for _, w := range snap.Warnings() {
		slog.Warn("Command schema warning", "warning", w)
	}
	metrics.CommandsLoaded.Set(float64(snap.Len()))
	slog.Info("Command schema loaded", "path", cfg.SchemaPath, "commands", snap.Len(), "groups", len(snap.Groups()))

	session, err := discord.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  cfg,
		store:   schema.NewStore(snap),
		rcon:    rcon.NewClient(cfg.RCONAddress, cfg.RCONPassword, cfg.RCONTimeout),
		discord: session,
	}

	a.sink = sink.NewQueue(a.rcon, sink.Options{
		Workers:       cfg.SinkWorkers,
		QueueSize:     cfg.SinkQueueSize,
		RatePerSecond: cfg.SinkRatePerSecond,
		Timeout:       cfg.RCONTimeout,
	})
	a.engine = dispatch.NewEngine(a.store, a.sink, cfg.CommandPrefix)
	a.reloader = reload.NewController(source, a.store, a)

	session.AddHandler(commands.ReadyHandler)
	session.AddHandler(commands.NewMessageHandler(a.engine, cfg.CommandPrefix).HandleFunc())
	session.AddHandler(commands.NewRouter(a.engine).HandleFunc())

	if cfg.AdminAddr != "" {
		a.admin = admin.NewServer(cfg.AdminAddr, a.reloader)
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	a.publisher = commands.NewPublisher(a.discord, a.discord.State.User.ID, a.config.DiscordGuildID)
	if err := a.publisher.Publish(ctx, a.store.Current()); err != nil {
		slog.Warn("Slash commands unavailable until the next successful reload", "error", err)
	}

	if a.admin != nil {
		a.admin.Start()
	}

	return nil
}

// Publish forwards to the Discord publisher once the session is open.
// Reloads before that only swap the registry.
func (a *App) Publish(ctx context.Context, snap *schema.Snapshot) error {
	if a.publisher == nil {
		return nil
	}
	return a.publisher.Publish(ctx, snap)
}

func (a *App) Reload(ctx context.Context) {
	report, err := a.reloader.Reload(ctx)
	if err != nil {
		slog.Error("Reload failed", "error", err)
		return
	}
	slog.Info("Reload finished", "report", report.String())
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.admin != nil {
		if err := a.admin.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server: %w", err))
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}

	if a.sink != nil {
		if err := a.sink.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("console sink: %w", err))
		}
	}

	if a.rcon != nil {
		if err := a.rcon.Close(); err != nil {
			errs = append(errs, fmt.Errorf("rcon: %w", err))
		}
	}

	return errors.Join(errs...)
}
