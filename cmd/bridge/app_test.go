package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"console-bridge/internal/config"
)

const appSchema = `
roleGroups:
  admins: ["111"]
commands:
  kick:
    description: Kick a player
    roles: [admins]
    format: "kick %s"
    fields:
      - name: player
`

func testConfig(t *testing.T, schema string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.yml")
	if err := os.WriteFile(path, []byte(schema), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return &config.Config{
		Token:         strings.Repeat("x", 60),
		CommandPrefix: "!",
		SchemaPath:    path,
		RCONAddress:   "127.0.0.1:1",
		RCONTimeout:   time.Second,
		SinkWorkers:   1,
		SinkQueueSize: 4,
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t, appSchema))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer app.Shutdown(context.Background())

	if _, ok := app.store.Current().Lookup("kick"); !ok {
		t.Error("expected kick to be loaded")
	}
	if app.engine == nil || app.sink == nil || app.reloader == nil || app.discord == nil {
		t.Error("expected all components to be wired")
	}
	if app.admin != nil {
		t.Error("admin server should be disabled without an address")
	}
}

func TestNewApp_AdminEnabled(t *testing.T) {
	cfg := testConfig(t, appSchema)
	cfg.AdminAddr = config.DefaultAdminAddr

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer app.Shutdown(context.Background())

	if app.admin == nil {
		t.Error("expected admin server when an address is configured")
	}
}

func TestNewApp_InvalidSchema(t *testing.T) {
	cfg := testConfig(t, "commands:\n  kick:\n    format: \"\"\n")

	if _, err := NewApp(context.Background(), cfg); err == nil {
		t.Fatal("expected schema error")
	}
}

func TestApp_ReloadBeforeRunSwapsRegistry(t *testing.T) {
	cfg := testConfig(t, appSchema)
	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer app.Shutdown(context.Background())

	updated := appSchema + `  say:
    description: Broadcast
    roles: [admins]
    format: "say %s"
    fields:
      - name: message
`
	if err := os.WriteFile(cfg.SchemaPath, []byte(updated), 0o600); err != nil {
		t.Fatalf("rewrite schema: %v", err)
	}

	app.Reload(context.Background())

	if _, ok := app.store.Current().Lookup("say"); !ok {
		t.Error("expected say after reload")
	}
}

func TestApp_ReloadFailureKeepsRegistry(t *testing.T) {
	cfg := testConfig(t, appSchema)
	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer app.Shutdown(context.Background())

	before := app.store.Current()
	os.WriteFile(cfg.SchemaPath, []byte("commands: [broken"), 0o600)

	app.Reload(context.Background())

	if app.store.Current() != before {
		t.Error("failed reload must keep the previous registry")
	}
}

func TestApp_Shutdown_NilComponents(t *testing.T) {
	app := &App{
		config: &config.Config{},
	}

	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed with nil components: %v", err)
	}
}

func TestApp_Shutdown_ClosesSink(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t, appSchema))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	if err := app.sink.Submit("list"); err == nil {
		t.Error("sink should reject commands after shutdown")
	}
}
