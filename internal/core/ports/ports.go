package ports

import (
	"context"

	"console-bridge/internal/core/schema"
)

// CommandExecutor runs one console command on the game server.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// CommandSink accepts formatted console commands for asynchronous execution.
// Submit must not block on the game server.
type CommandSink interface {
	Submit(command string) error
}

// SchemaSource produces a fresh, fully validated snapshot.
type SchemaSource interface {
	Load(ctx context.Context) (*schema.Snapshot, error)
}

// CommandPublisher registers the snapshot's commands with the platform that
// needs them upfront.
type CommandPublisher interface {
	Publish(ctx context.Context, snap *schema.Snapshot) error
}
