package roles

import (
	"sort"

	"console-bridge/internal/core/domain"
)

// GroupLookup finds a role group by name, case-insensitively.
type GroupLookup interface {
	Group(name string) (*domain.RoleGroup, bool)
}

type Set map[string]struct{}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Resolve expands group names to their role ids and keeps every other token
// as a literal role id.
func Resolve(tokens []string, groups GroupLookup) Set {
	ids := make(Set)
	for _, token := range tokens {
		if g, ok := lookup(groups, token); ok {
			for _, id := range g.RoleIDs {
				ids[id] = struct{}{}
			}
			continue
		}
		ids[token] = struct{}{}
	}
	return ids
}

// Authorize reports whether any member role is among the resolved required
// roles. No required roles means nobody is authorized.
func Authorize(memberRoleIDs []string, required []string, groups GroupLookup) bool {
	if len(required) == 0 {
		return false
	}
	allowed := Resolve(required, groups)
	for _, id := range memberRoleIDs {
		if allowed.Has(id) {
			return true
		}
	}
	return false
}

// PingTargets returns the role ids to mention for a ping token, in group
// order when the token names a group.
func PingTargets(token string, groups GroupLookup) []string {
	if token == "" {
		return nil
	}
	if g, ok := lookup(groups, token); ok {
		out := make([]string, len(g.RoleIDs))
		copy(out, g.RoleIDs)
		return out
	}
	return []string{token}
}

func Mention(roleID string) string {
	return "<@&" + roleID + ">"
}

func lookup(groups GroupLookup, name string) (*domain.RoleGroup, bool) {
	if groups == nil {
		return nil, false
	}
	return groups.Group(name)
}
