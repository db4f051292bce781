package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk shape of the command schema. Keys other than
// roleGroups and commands are ignored so the schema can live next to other
// settings in one file.
type Document struct {
	RoleGroups map[string][]string     `yaml:"roleGroups"`
	Commands   map[string]*CommandSpec `yaml:"commands"`
}

type CommandSpec struct {
	Description string      `yaml:"description"`
	Roles       []string    `yaml:"roles"`
	Format      string      `yaml:"format"`
	PingRole    string      `yaml:"pingroleonexecute"`
	Fields      []FieldSpec `yaml:"fields"`
}

type FieldSpec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &doc, nil
}
