package dispatch

import (
	"strings"

	"console-bridge/internal/core/domain"
	"console-bridge/internal/core/format"
)

type Frontend string

const (
	FrontendText  Frontend = "text"
	FrontendSlash Frontend = "slash"
)

// Input is what a front-end extracts from one inbound event.
type Input interface {
	Frontend() Frontend
	Name() string
	Caller() (*domain.Caller, bool)
	Args(d *domain.CommandDescriptor) []string
}

// Responder delivers replies for one inbound event. Failures are the
// transport's to log; the engine never retries.
type Responder interface {
	Reply(content string) error
	Mention(roleID string) error
}

type TextInput struct {
	name   string
	rest   string
	caller *domain.Caller
}

// ParseText strips prefix from content and splits the remainder into a
// lowercased command name and the raw argument text. ok is false when
// content does not start with prefix.
func ParseText(content, prefix string) (name, rest string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	body := strings.TrimSpace(content[len(prefix):])
	name, rest, _ = strings.Cut(body, " ")
	return domain.Key(name), rest, true
}

func NewTextInput(content, prefix string, caller *domain.Caller) (*TextInput, bool) {
	name, rest, ok := ParseText(content, prefix)
	if !ok {
		return nil, false
	}
	return &TextInput{name: name, rest: rest, caller: caller}, true
}

func (t *TextInput) Frontend() Frontend { return FrontendText }
func (t *TextInput) Name() string       { return t.name }

func (t *TextInput) Caller() (*domain.Caller, bool) {
	return t.caller, t.caller != nil
}

func (t *TextInput) Args(*domain.CommandDescriptor) []string {
	return format.SplitArgs(t.rest)
}

// Option is one named slash-command value already rendered as text.
type Option struct {
	Name  string
	Value string
}

type SlashInput struct {
	name    string
	options []Option
	caller  *domain.Caller
}

func NewSlashInput(name string, options []Option, caller *domain.Caller) *SlashInput {
	return &SlashInput{name: domain.Key(name), options: options, caller: caller}
}

func (s *SlashInput) Frontend() Frontend { return FrontendSlash }
func (s *SlashInput) Name() string       { return s.name }

func (s *SlashInput) Caller() (*domain.Caller, bool) {
	return s.caller, s.caller != nil
}

// Args orders option values by the descriptor's fields. Options that match
// no field follow in the order they arrived.
func (s *SlashInput) Args(d *domain.CommandDescriptor) []string {
	args := make([]string, 0, len(s.options))
	used := make([]bool, len(s.options))

	for _, f := range d.Fields {
		for i, opt := range s.options {
			if !used[i] && opt.Name == f.Name {
				args = append(args, opt.Value)
				used[i] = true
				break
			}
		}
	}
	for i, opt := range s.options {
		if !used[i] {
			args = append(args, opt.Value)
		}
	}
	return args
}
