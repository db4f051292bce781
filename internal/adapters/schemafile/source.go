package schemafile

import (
	"context"
	"fmt"
	"os"

	"console-bridge/internal/core/schema"
)

// Source reads the command schema from a YAML file on every Load, so edits
// on disk are picked up by the next reload.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Path() string {
	return s.path
}

func (s *Source) Load(ctx context.Context) (*schema.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", s.path, err)
	}

	doc, err := schema.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	snap, err := schema.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return snap, nil
}
