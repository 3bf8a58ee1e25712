package docpath

import (
	"slices"
	"strings"
)

// Separator joins path segments in their string form.
const Separator = "."

// Path is an ordered sequence of field-name segments addressing a value inside
// a nested document. The zero value addresses the document root.
type Path []string

// Parse splits a dotted path into segments. Empty segments are dropped, so
// "a..b" and ".a.b." both parse to [a b].
func Parse(s string) Path {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, Separator)
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			p = append(p, part)
		}
	}
	return p
}

// Of builds a path from already split segments.
func Of(segments ...string) Path {
	return Path(slices.Clone(segments))
}

func (p Path) String() string {
	return strings.Join(p, Separator)
}

// IsZero reports whether p addresses the document root.
func (p Path) IsZero() bool {
	return len(p) == 0
}

// Last returns the final segment, or an empty string for the root path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path without its final segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Child returns a new path with seg appended. The receiver is never modified.
func (p Path) Child(seg ...string) Path {
	out := make(Path, 0, len(p)+len(seg))
	out = append(out, p...)
	return append(out, seg...)
}

// HasPrefix reports whether prefix is a leading sub-sequence of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return slices.Equal(p[:len(prefix)], prefix)
}

func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}
