package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type FieldType string

const (
	FieldString      FieldType = "STRING"
	FieldInteger     FieldType = "INTEGER"
	FieldBoolean     FieldType = "BOOLEAN"
	FieldUser        FieldType = "USER"
	FieldChannel     FieldType = "CHANNEL"
	FieldRole        FieldType = "ROLE"
	FieldMentionable FieldType = "MENTIONABLE"
	FieldNumber      FieldType = "NUMBER"
	FieldAttachment  FieldType = "ATTACHMENT"
)

var fieldTypes = map[FieldType]struct{}{
	FieldString:      {},
	FieldInteger:     {},
	FieldBoolean:     {},
	FieldUser:        {},
	FieldChannel:     {},
	FieldRole:        {},
	FieldMentionable: {},
	FieldNumber:      {},
	FieldAttachment:  {},
}

// ParseFieldType maps a schema type tag to a FieldType. Tags are
// case-insensitive and an empty tag means STRING.
func ParseFieldType(tag string) (FieldType, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return FieldString, nil
	}
	t := FieldType(strings.ToUpper(tag))
	if _, ok := fieldTypes[t]; !ok {
		return "", fmt.Errorf("unknown field type %q", tag)
	}
	return t, nil
}

type CommandField struct {
	Name        string
	Type        FieldType
	Description string
}

type CommandDescriptor struct {
	Name        string
	Description string
	Roles       []string
	Format      string
	Fields      []CommandField
	PingRole    string
}

type RoleGroup struct {
	Name    string
	RoleIDs []string
}

// Caller is the member context attached to an inbound command.
type Caller struct {
	ID      string
	Name    string
	RoleIDs []string
}

// Key normalizes command and group names for case-insensitive lookup.
// A Caser is stateful, so each call gets its own.
func Key(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}
