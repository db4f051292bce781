package roles

import (
	"reflect"
	"testing"

	"console-bridge/internal/core/domain"
)

type mapGroups map[string][]string

func (m mapGroups) Group(name string) (*domain.RoleGroup, bool) {
	ids, ok := m[domain.Key(name)]
	if !ok {
		return nil, false
	}
	return &domain.RoleGroup{Name: domain.Key(name), RoleIDs: ids}, true
}

var testGroups = mapGroups{
	"admins": {"111", "222"},
	"mods":   {"222", "333"},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected []string
	}{
		{"group expands", []string{"admins"}, []string{"111", "222"}},
		{"group is case-insensitive", []string{"ADMINS"}, []string{"111", "222"}},
		{"literal passes through", []string{"999"}, []string{"999"}},
		{"unknown name is literal", []string{"owners"}, []string{"owners"}},
		{"union collapses duplicates", []string{"admins", "mods", "111"}, []string{"111", "222", "333"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.tokens, testGroups).Sorted()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Resolve(%v) = %v, want %v", tt.tokens, got, tt.expected)
			}
		})
	}
}

func TestResolve_NilGroups(t *testing.T) {
	got := Resolve([]string{"admins"}, nil)
	if !got.Has("admins") || len(got) != 1 {
		t.Errorf("expected literal token with nil groups, got %v", got.Sorted())
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		member   []string
		required []string
		expected bool
	}{
		{"member in group", []string{"111"}, []string{"admins"}, true},
		{"member not in group", []string{"333"}, []string{"admins"}, false},
		{"literal match", []string{"444"}, []string{"444"}, true},
		{"one of many roles matches", []string{"x", "y", "333"}, []string{"mods"}, true},
		{"no member roles", nil, []string{"admins"}, false},
		{"empty required denies", []string{"111"}, nil, false},
		{"empty required denies everyone", []string{"111", "222", "333"}, []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.member, tt.required, testGroups); got != tt.expected {
				t.Errorf("Authorize(%v, %v) = %v, want %v", tt.member, tt.required, got, tt.expected)
			}
		})
	}
}

func TestPingTargets(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected []string
	}{
		{"group keeps order", "mods", []string{"222", "333"}},
		{"literal id", "555", []string{"555"}},
		{"empty token", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PingTargets(tt.token, testGroups)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("PingTargets(%q) = %v, want %v", tt.token, got, tt.expected)
			}
		})
	}
}

func TestMention(t *testing.T) {
	if got := Mention("123"); got != "<@&123>" {
		t.Errorf("unexpected mention: %q", got)
	}
}
