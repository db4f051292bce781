package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

const (
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	minRCONTimeout = 1 * time.Second
	maxRCONTimeout = 5 * time.Minute

	// more than one worker lets commands reach the console out of order
	minSinkWorkers = 1
	maxSinkWorkers = 16

	minSinkQueueSize = 1
	maxSinkQueueSize = 10000

	maxPrefixLength = 10
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks every setting and returns all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validatePrefix(); err != nil {
		errs = append(errs, err)
	}

	if c.SchemaPath == "" {
		errs = append(errs, fmt.Errorf("SCHEMA_PATH cannot be empty"))
	}

	if err := validateAddress("RCON_ADDRESS", c.RCONAddress); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateRCONTimeout(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateSink(); err != nil {
		errs = append(errs, err)
	}

	if c.AdminAddr != "" {
		if err := validateAddress("ADMIN_ADDR", c.AdminAddr); err != nil {
			errs = append(errs, err)
		}
	}

	if err := validateOneOf("LOG_LEVEL", c.LogLevel, logLevels); err != nil {
		errs = append(errs, err)
	}

	if err := validateOneOf("LOG_FORMAT", c.LogFormat, logFormats); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validatePrefix() error {
	if c.CommandPrefix == "" {
		return fmt.Errorf("COMMAND_PREFIX cannot be empty")
	}

	if strings.ContainsAny(c.CommandPrefix, " \t\n") {
		return fmt.Errorf("COMMAND_PREFIX cannot contain whitespace, got %q", c.CommandPrefix)
	}

	if len(c.CommandPrefix) > maxPrefixLength {
		return fmt.Errorf("COMMAND_PREFIX must be at most %d characters, got %d", maxPrefixLength, len(c.CommandPrefix))
	}

	return nil
}

func (c *Config) validateRCONTimeout() error {
	if c.RCONTimeout < minRCONTimeout || c.RCONTimeout > maxRCONTimeout {
		return fmt.Errorf(
			"RCON_TIMEOUT must be between %v and %v, got %v",
			minRCONTimeout, maxRCONTimeout, c.RCONTimeout,
		)
	}

	return nil
}

func (c *Config) validateSink() error {
	var errs []error

	if c.SinkWorkers < minSinkWorkers || c.SinkWorkers > maxSinkWorkers {
		errs = append(errs, fmt.Errorf(
			"SINK_WORKERS must be between %d and %d, got %d (hint: 1 keeps console order)",
			minSinkWorkers, maxSinkWorkers, c.SinkWorkers,
		))
	}

	if c.SinkQueueSize < minSinkQueueSize || c.SinkQueueSize > maxSinkQueueSize {
		errs = append(errs, fmt.Errorf(
			"SINK_QUEUE_SIZE must be between %d and %d, got %d",
			minSinkQueueSize, maxSinkQueueSize, c.SinkQueueSize,
		))
	}

	if c.SinkRatePerSecond < 0 {
		errs = append(errs, fmt.Errorf("SINK_RATE_PER_SECOND cannot be negative, got %v", c.SinkRatePerSecond))
	}

	return errors.Join(errs...)
}

func validateAddress(fieldName, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if _, port, err := net.SplitHostPort(addr); err != nil || port == "" {
		return fmt.Errorf("%s must be host:port, got %q", fieldName, addr)
	}

	return nil
}

func validateOneOf(fieldName, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", fieldName, strings.Join(allowed, ", "), value)
}
