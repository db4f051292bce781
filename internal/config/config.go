package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token             string
	DiscordGuildID    string
	CommandPrefix     string
	SchemaPath        string
	RCONAddress       string
	RCONPassword      string
	RCONTimeout       time.Duration
	SinkWorkers       int
	SinkQueueSize     int
	SinkRatePerSecond float64
	AdminAddr         string
	LogLevel          string
	LogFormat         string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := secretOrEnv("discord_token", "DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	rconAddr := os.Getenv("RCON_ADDRESS")
	if rconAddr == "" {
		return nil, fmt.Errorf("RCON_ADDRESS is not set")
	}

	cfg := &Config{
		Token:             token,
		DiscordGuildID:    envString("DISCORD_GUILD_ID", ""),
		CommandPrefix:     envString("COMMAND_PREFIX", "!"),
		SchemaPath:        envString("SCHEMA_PATH", "commands.yml"),
		RCONAddress:       rconAddr,
		RCONPassword:      secretOrEnv("rcon_password", "RCON_PASSWORD"),
		RCONTimeout:       envDuration("RCON_TIMEOUT", 10*time.Second),
		SinkWorkers:       envInt("SINK_WORKERS", 1),
		SinkQueueSize:     envInt("SINK_QUEUE_SIZE", 64),
		SinkRatePerSecond: envFloat("SINK_RATE_PER_SECOND", 0),
		AdminAddr:         envOptional("ADMIN_ADDR", DefaultAdminAddr),
		LogLevel:          strings.ToLower(envString("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(envString("LOG_FORMAT", "text")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultAdminAddr keeps the unauthenticated admin endpoints off public
// interfaces unless configured otherwise.
const DefaultAdminAddr = "127.0.0.1:2112"

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func secretOrEnv(secret, key string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(key)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOptional is like envString, but a variable that is set to an empty
// value stays empty so it can switch a feature off.
func envOptional(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
