package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var validToken = strings.Repeat("x", 60)

func TestLoad_Success(t *testing.T) {
	setEnv(map[string]string{
		"DISCORD_TOKEN":        validToken,
		"DISCORD_GUILD_ID":     "123456",
		"COMMAND_PREFIX":       "mc.",
		"SCHEMA_PATH":          "/etc/bridge/commands.yml",
		"RCON_ADDRESS":         "minecraft:25575",
		"RCON_PASSWORD":        "hunter2",
		"RCON_TIMEOUT":         "5s",
		"SINK_WORKERS":         "2",
		"SINK_QUEUE_SIZE":      "128",
		"SINK_RATE_PER_SECOND": "2.5",
		"ADMIN_ADDR":           "127.0.0.1:9000",
		"LOG_LEVEL":            "DEBUG",
		"LOG_FORMAT":           "json",
	})
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "Token", validToken, cfg.Token)
	assertEqual(t, "DiscordGuildID", "123456", cfg.DiscordGuildID)
	assertEqual(t, "CommandPrefix", "mc.", cfg.CommandPrefix)
	assertEqual(t, "SchemaPath", "/etc/bridge/commands.yml", cfg.SchemaPath)
	assertEqual(t, "RCONAddress", "minecraft:25575", cfg.RCONAddress)
	assertEqual(t, "RCONPassword", "hunter2", cfg.RCONPassword)
	assertEqual(t, "RCONTimeout", 5*time.Second, cfg.RCONTimeout)
	assertEqual(t, "SinkWorkers", 2, cfg.SinkWorkers)
	assertEqual(t, "SinkQueueSize", 128, cfg.SinkQueueSize)
	assertEqual(t, "SinkRatePerSecond", 2.5, cfg.SinkRatePerSecond)
	assertEqual(t, "AdminAddr", "127.0.0.1:9000", cfg.AdminAddr)
	assertEqual(t, "LogLevel", "debug", cfg.LogLevel)
	assertEqual(t, "LogFormat", "json", cfg.LogFormat)
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(map[string]string{
		"DISCORD_TOKEN": validToken,
		"RCON_ADDRESS":  "localhost:25575",
	})
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "DiscordGuildID", "", cfg.DiscordGuildID)
	assertEqual(t, "CommandPrefix", "!", cfg.CommandPrefix)
	assertEqual(t, "SchemaPath", "commands.yml", cfg.SchemaPath)
	assertEqual(t, "RCONTimeout", 10*time.Second, cfg.RCONTimeout)
	assertEqual(t, "SinkWorkers", 1, cfg.SinkWorkers)
	assertEqual(t, "SinkQueueSize", 64, cfg.SinkQueueSize)
	assertEqual(t, "SinkRatePerSecond", 0.0, cfg.SinkRatePerSecond)
	assertEqual(t, "AdminAddr", "127.0.0.1:2112", cfg.AdminAddr)
	assertEqual(t, "LogLevel", "info", cfg.LogLevel)
	assertEqual(t, "LogFormat", "text", cfg.LogFormat)
}

func TestLoad_EmptyAdminAddrDisablesListener(t *testing.T) {
	setEnv(map[string]string{
		"DISCORD_TOKEN": validToken,
		"RCON_ADDRESS":  "localhost:25575",
		"ADMIN_ADDR":    "",
	})
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "AdminAddr", "", cfg.AdminAddr)
}

func TestEnvOptional(t *testing.T) {
	defer os.Unsetenv("BRIDGE_TEST_OPTIONAL")

	os.Unsetenv("BRIDGE_TEST_OPTIONAL")
	assertEqual(t, "unset", "fallback", envOptional("BRIDGE_TEST_OPTIONAL", "fallback"))

	os.Setenv("BRIDGE_TEST_OPTIONAL", "")
	assertEqual(t, "empty", "", envOptional("BRIDGE_TEST_OPTIONAL", "fallback"))

	os.Setenv("BRIDGE_TEST_OPTIONAL", " 0.0.0.0:9000 ")
	assertEqual(t, "set", "0.0.0.0:9000", envOptional("BRIDGE_TEST_OPTIONAL", "fallback"))
}

func TestLoad_MissingToken(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if cfg != nil {
		t.Error("config should be nil on error")
	}
	assertContains(t, err.Error(), "DISCORD_TOKEN is not set")
}

func TestLoad_MissingRCONAddress(t *testing.T) {
	setEnv(map[string]string{"DISCORD_TOKEN": validToken})
	defer clearEnv()

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing RCON address")
	}
	assertContains(t, err.Error(), "RCON_ADDRESS is not set")
}

func TestLoad_InvalidConfig(t *testing.T) {
	setEnv(map[string]string{
		"DISCORD_TOKEN": strings.Repeat("x", 30),
		"RCON_ADDRESS":  "localhost:25575",
		"SINK_WORKERS":  "200",
	})
	defer clearEnv()

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_SecretsTakePrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir := secretsDir
	secretsDir = tmpDir + "/"
	defer func() { secretsDir = originalDir }()

	os.WriteFile(tmpDir+"/discord_token", []byte(strings.Repeat("s", 60)+"\n"), 0600)
	os.WriteFile(tmpDir+"/rcon_password", []byte("from-secret\n"), 0600)

	setEnv(map[string]string{
		"DISCORD_TOKEN": validToken,
		"RCON_ADDRESS":  "localhost:25575",
		"RCON_PASSWORD": "from-env",
	})
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "Token", strings.Repeat("s", 60), cfg.Token)
	assertEqual(t, "RCONPassword", "from-secret", cfg.RCONPassword)
}

func TestReadSecret(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir := secretsDir
	secretsDir = tmpDir + "/"
	defer func() { secretsDir = originalDir }()

	t.Run("reads existing secret", func(t *testing.T) {
		os.WriteFile(tmpDir+"/test_secret", []byte("  secret-value  \n"), 0600)
		result := readSecret("test_secret")
		assertEqual(t, "secret", "secret-value", result)
	})

	t.Run("returns empty for missing secret", func(t *testing.T) {
		result := readSecret("nonexistent")
		assertEqual(t, "secret", "", result)
	})
}

func TestEnvString(t *testing.T) {
	tests := []struct {
		name     string
		envVal   string
		fallback string
		expected string
	}{
		{"env set", "custom", "default", "custom"},
		{"env empty", "", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_ENV_STRING"
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			}
			result := envString(key, tt.fallback)
			assertEqual(t, "result", tt.expected, result)
		})
	}
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		envVal   string
		fallback int
		expected int
	}{
		{"valid int", "42", 100, 42},
		{"invalid int", "abc", 100, 100},
		{"negative", "-10", 100, -10},
		{"zero", "0", 100, 0},
		{"empty", "", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_ENV_INT"
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			}
			result := envInt(key, tt.fallback)
			assertEqual(t, "result", tt.expected, result)
		})
	}
}

func TestEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		envVal   string
		fallback time.Duration
		expected time.Duration
	}{
		{"valid duration", "10m", time.Minute, 10 * time.Minute},
		{"complex duration", "1h30m", time.Minute, 90 * time.Minute},
		{"invalid duration", "invalid", time.Minute, time.Minute},
		{"empty", "", time.Minute, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_ENV_DURATION"
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			}
			result := envDuration(key, tt.fallback)
			assertEqual(t, "result", tt.expected, result)
		})
	}
}

func TestEnvFloat(t *testing.T) {
	tests := []struct {
		name     string
		envVal   string
		fallback float64
		expected float64
	}{
		{"integer", "3", 0, 3},
		{"fraction", "0.5", 0, 0.5},
		{"invalid", "fast", 1, 1},
		{"empty", "", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_ENV_FLOAT"
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			}
			result := envFloat(key, tt.fallback)
			assertEqual(t, "result", tt.expected, result)
		})
	}
}

func setEnv(vars map[string]string) {
	for k, v := range vars {
		os.Setenv(k, v)
	}
}

func clearEnv() {
	keys := []string{
		"DISCORD_TOKEN", "DISCORD_GUILD_ID", "COMMAND_PREFIX", "SCHEMA_PATH",
		"RCON_ADDRESS", "RCON_PASSWORD", "RCON_TIMEOUT",
		"SINK_WORKERS", "SINK_QUEUE_SIZE", "SINK_RATE_PER_SECOND",
		"ADMIN_ADDR", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, k := range keys {
		os.Unsetenv(k)
	}
}

func assertEqual[T comparable](t *testing.T, name string, expected, actual T) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", name, expected, actual)
	}
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected %q to contain %q", s, substr)
	}
}
