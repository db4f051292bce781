package schema

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"console-bridge/internal/core/domain"
	"console-bridge/internal/core/format"
)

// HelpCommand is reserved by both front-ends and never looked up in the schema.
const HelpCommand = "help"

// Discord limits
const (
	maxDescriptionLength = 100
	maxFields            = 25
)

// ErrConfigMissing marks a schema without a commands section. The load still
// succeeds with an empty registry.
var ErrConfigMissing = errors.New("no commands section found in schema")

var namePattern = regexp.MustCompile(`^[-_\p{L}\p{N}]{1,32}$`)

// Snapshot is one immutable version of the command registry.
type Snapshot struct {
	commands map[string]*domain.CommandDescriptor
	groups   map[string]*domain.RoleGroup
	ordered  []*domain.CommandDescriptor
	warnings []error
}

func Empty() *Snapshot {
	return &Snapshot{
		commands: map[string]*domain.CommandDescriptor{},
		groups:   map[string]*domain.RoleGroup{},
	}
}

// Build turns a parsed document into a snapshot. Every problem that would
// make a command unusable or unregistrable is returned at once; softer
// problems are kept as warnings on the snapshot.
func Build(doc *Document) (*Snapshot, error) {
	if doc == nil {
		doc = &Document{}
	}

	snap := Empty()
	var errs []error

	for _, name := range sortedKeys(doc.RoleGroups) {
		key := domain.Key(name)
		if _, dup := snap.groups[key]; dup {
			errs = append(errs, fmt.Errorf("role group %q: duplicate name (names are case-insensitive)", name))
			continue
		}
		ids := make([]string, len(doc.RoleGroups[name]))
		copy(ids, doc.RoleGroups[name])
		snap.groups[key] = &domain.RoleGroup{Name: key, RoleIDs: ids}
	}

	if doc.Commands == nil {
		snap.warnings = append(snap.warnings, ErrConfigMissing)
	}

	for _, name := range sortedKeys(doc.Commands) {
		key := domain.Key(name)
		if _, dup := snap.commands[key]; dup {
			errs = append(errs, fmt.Errorf("command %q: duplicate name (names are case-insensitive)", name))
			continue
		}

		desc, warns, err := buildDescriptor(key, doc.Commands[name])
		snap.warnings = append(snap.warnings, warns...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		snap.commands[key] = desc
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid command schema:\n  %w", errors.Join(errs...))
	}

	snap.ordered = make([]*domain.CommandDescriptor, 0, len(snap.commands))
	for _, key := range sortedKeys(snap.commands) {
		snap.ordered = append(snap.ordered, snap.commands[key])
	}

	return snap, nil
}

func buildDescriptor(name string, def *CommandSpec) (*domain.CommandDescriptor, []error, error) {
	if def == nil {
		return nil, nil, fmt.Errorf("command %q: empty definition", name)
	}

	var errs, warns []error

	if !namePattern.MatchString(name) {
		errs = append(errs, fmt.Errorf("command %q: name must be 1-32 letters, digits, '-' or '_'", name))
	}
	if name == HelpCommand {
		warns = append(warns, fmt.Errorf("command %q: shadowed by the built-in help command", name))
	}

	if strings.TrimSpace(def.Format) == "" {
		errs = append(errs, fmt.Errorf("command %q: format is required", name))
	}

	description := strings.TrimSpace(def.Description)
	if description == "" {
		description = "Run " + name + " on the server console"
		warns = append(warns, fmt.Errorf("command %q: no description, using %q", name, description))
	}
	if n := utf8.RuneCountInString(description); n > maxDescriptionLength {
		errs = append(errs, fmt.Errorf("command %q: description must be at most %d characters, got %d", name, maxDescriptionLength, n))
	}

	if len(def.Roles) == 0 {
		warns = append(warns, fmt.Errorf("command %q: no roles configured, nobody can run it", name))
	}

	if len(def.Fields) > maxFields {
		errs = append(errs, fmt.Errorf("command %q: at most %d fields are allowed, got %d", name, maxFields, len(def.Fields)))
	}

	fields := make([]domain.CommandField, 0, len(def.Fields))
	seen := make(map[string]bool, len(def.Fields))
	for i, f := range def.Fields {
		field, err := buildField(name, i, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[field.Name] {
			errs = append(errs, fmt.Errorf("command %q: field %q declared twice", name, field.Name))
			continue
		}
		seen[field.Name] = true
		fields = append(fields, field)
	}

	if arity := format.ExpectedArity(def.Format); arity != len(def.Fields) {
		warns = append(warns, fmt.Errorf("command %q: format has %d markers but %d fields are declared", name, arity, len(def.Fields)))
	}

	if len(errs) > 0 {
		return nil, warns, errors.Join(errs...)
	}

	roles := make([]string, len(def.Roles))
	copy(roles, def.Roles)

	return &domain.CommandDescriptor{
		Name:        name,
		Description: description,
		Roles:       roles,
		Format:      def.Format,
		Fields:      fields,
		PingRole:    strings.TrimSpace(def.PingRole),
	}, warns, nil
}

func buildField(command string, idx int, f FieldSpec) (domain.CommandField, error) {
	name := strings.TrimSpace(f.Name)
	if !namePattern.MatchString(name) || name != domain.Key(name) {
		return domain.CommandField{}, fmt.Errorf("command %q: field %d: name %q must be 1-32 lowercase letters, digits, '-' or '_'", command, idx, f.Name)
	}

	t, err := domain.ParseFieldType(f.Type)
	if err != nil {
		return domain.CommandField{}, fmt.Errorf("command %q: field %q: %w", command, name, err)
	}

	description := strings.TrimSpace(f.Description)
	if description == "" {
		description = name
	}
	if n := utf8.RuneCountInString(description); n > maxDescriptionLength {
		return domain.CommandField{}, fmt.Errorf("command %q: field %q: description must be at most %d characters, got %d", command, name, maxDescriptionLength, n)
	}

	return domain.CommandField{Name: name, Type: t, Description: description}, nil
}

// Lookup is case-insensitive; an unknown name is not an error.
func (s *Snapshot) Lookup(name string) (*domain.CommandDescriptor, bool) {
	d, ok := s.commands[domain.Key(name)]
	return d, ok
}

// List returns every descriptor ordered by name.
func (s *Snapshot) List() []*domain.CommandDescriptor {
	out := make([]*domain.CommandDescriptor, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s *Snapshot) Group(name string) (*domain.RoleGroup, bool) {
	g, ok := s.groups[domain.Key(name)]
	return g, ok
}

func (s *Snapshot) Groups() []*domain.RoleGroup {
	out := make([]*domain.RoleGroup, 0, len(s.groups))
	for _, key := range sortedKeys(s.groups) {
		out = append(out, s.groups[key])
	}
	return out
}

func (s *Snapshot) Len() int {
	return len(s.commands)
}

func (s *Snapshot) Warnings() []error {
	return s.warnings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
