package core

import (
	"sort"
	"strings"
)

// ContextBundle maps a logical role name (e.g. "research", "analysis") to
// prior response content. Bundles are built up incrementally by a workflow and
// passed by value into each subsequent agent call; agents never mutate them.
// All deriving helpers return fresh copies so a bundle held by one phase can
// never be changed by another.
type ContextBundle map[string]string

// NewContextBundle returns an empty bundle.
func NewContextBundle() ContextBundle { return ContextBundle{} }

// With returns a copy of the bundle extended (or overwritten) with the given
// role/content pair. The receiver is left untouched.
func (b ContextBundle) With(role, content string) ContextBundle {
	out := b.Clone()
	out[role] = content
	return out
}

// Clone returns a shallow copy safe for independent mutation.
func (b ContextBundle) Clone() ContextBundle {
	out := make(ContextBundle, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Roles returns the bundle's role names in lexical order. Deterministic
// ordering keeps prompt construction stable across runs.
func (b ContextBundle) Roles() []string {
	roles := make([]string, 0, len(b))
	for k := range b {
		roles = append(roles, k)
	}
	sort.Strings(roles)
	return roles
}

// Render flattens the bundle into a "role: content" block, one entry per
// line group, in lexical role order. Empty bundles render to "".
func (b ContextBundle) Render() string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, role := range b.Roles() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(role)
		sb.WriteString(":\n")
		sb.WriteString(b[role])
	}
	return sb.String()
}
