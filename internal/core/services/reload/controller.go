package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"console-bridge/internal/core/ports"
	"console-bridge/internal/core/schema"
	"console-bridge/internal/metrics"
)

// Report describes the outcome of one successful load.
type Report struct {
	Commands   int
	Groups     int
	Warnings   []error
	PublishErr error
}

// String renders the report for the operator who asked for the reload.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reloaded %d commands and %d role groups.", r.Commands, r.Groups)
	for _, w := range r.Warnings {
		b.WriteString("\nWarning: ")
		b.WriteString(w.Error())
	}
	if r.PublishErr != nil {
		b.WriteString("\nFailed to publish slash commands: ")
		b.WriteString(r.PublishErr.Error())
	}
	return b.String()
}

type Controller struct {
	source    ports.SchemaSource
	store     *schema.Store
	publisher ports.CommandPublisher

	mu sync.Mutex
}

// NewController wires a reload pipeline. publisher may be nil when no
// front-end needs commands registered upfront.
func NewController(source ports.SchemaSource, store *schema.Store, publisher ports.CommandPublisher) *Controller {
	return &Controller{source: source, store: store, publisher: publisher}
}

// Reload loads a complete new snapshot and makes it active. On a load error
// the previous snapshot stays in place. A publish error is reported but does
// not undo the swap.
func (c *Controller) Reload(ctx context.Context) (Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.source.Load(ctx)
	if err != nil {
		metrics.Reloads.WithLabelValues("failure").Inc()
		slog.Error("Failed to reload command schema, keeping previous registry", "error", err)
		return Report{}, fmt.Errorf("load schema: %w", err)
	}
	if snap == nil {
		metrics.Reloads.WithLabelValues("failure").Inc()
		return Report{}, errors.New("load schema: source returned no snapshot")
	}

	c.store.Swap(snap)
	metrics.CommandsLoaded.Set(float64(snap.Len()))

	report := Report{
		Commands: snap.Len(),
		Groups:   len(snap.Groups()),
		Warnings: snap.Warnings(),
	}
	for _, w := range report.Warnings {
		slog.Warn("Command schema warning", "warning", w)
	}

	if c.publisher != nil {
		if err := c.publisher.Publish(ctx, snap); err != nil {
			slog.Error("Failed to publish commands after reload", "error", err)
			report.PublishErr = err
		}
	}

	status := "success"
	if report.PublishErr != nil {
		status = "publish_failure"
	}
	metrics.Reloads.WithLabelValues(status).Inc()
	slog.Info("Command schema reloaded", "commands", report.Commands, "groups", report.Groups, "warnings", len(report.Warnings))

	return report, nil
}
