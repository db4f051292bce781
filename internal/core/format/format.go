package format

import (
	"errors"
	"fmt"
	"strings"

	"console-bridge/internal/core/domain"
)

const marker = '%'

var ErrArityMismatch = errors.New("argument count does not match format")

type ArityError struct {
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d", ErrArityMismatch, e.Expected, e.Got)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArityMismatch
}

// ExpectedArity counts the substitution markers in a format template.
func ExpectedArity(template string) int {
	return strings.Count(template, string(marker))
}

// Format substitutes args into template in order. A marker is a '%'
// optionally followed by one ASCII letter verb ("%s", "%d"); the verb is
// consumed and the argument is inserted verbatim.
func Format(template string, args []string) (string, error) {
	if expected := ExpectedArity(template); expected != len(args) {
		return "", &ArityError{Expected: expected, Got: len(args)}
	}

	var b strings.Builder
	b.Grow(len(template))

	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != marker {
			b.WriteByte(c)
			continue
		}
		b.WriteString(args[next])
		next++
		if i+1 < len(template) && isVerb(template[i+1]) {
			i++
		}
	}

	return b.String(), nil
}

// SplitArgs tokenizes the argument text of a text command on single spaces.
// Empty text yields no arguments.
func SplitArgs(rest string) []string {
	if rest == "" {
		return nil
	}
	return strings.Split(rest, " ")
}

// Usage renders "/name <field> ..." from the declared fields.
func Usage(d *domain.CommandDescriptor) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(d.Name)
	for _, f := range d.Fields {
		b.WriteString(" <")
		b.WriteString(f.Name)
		b.WriteString(">")
	}
	return b.String()
}

func isVerb(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
