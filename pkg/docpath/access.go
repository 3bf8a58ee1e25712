package docpath

import "strconv"

// Get returns the value stored at p inside doc.
// Map segments are looked up by key; when the current value is a slice the
// segment must be a valid index. The second result is false when any segment
// along the way is missing.
func Get(doc map[string]any, p Path) (any, bool) {
	if len(p) == 0 {
		return doc, doc != nil
	}
	var cur any = doc
	for _, seg := range p {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Exists reports whether a value (including nil) is stored at p.
func Exists(doc map[string]any, p Path) bool {
	_, ok := Get(doc, p)
	return ok
}

// Set stores v at p, creating intermediate maps as needed. A numeric segment
// following a slice addresses an existing element. Any other intermediate value
// is replaced by a fresh map. Setting the root path is a no-op.
func Set(doc map[string]any, p Path, v any) {
	if doc == nil || len(p) == 0 {
		return
	}
	head, rest := p[0], p[1:]
	if len(rest) == 0 {
		doc[head] = v
		return
	}
	switch n := doc[head].(type) {
	case map[string]any:
		Set(n, rest, v)
		return
	case []any:
		if idx, ok := index(rest[0], len(n)); ok {
			if len(rest) == 1 {
				n[idx] = v
				return
			}
			if m, ok := n[idx].(map[string]any); ok {
				Set(m, rest[1:], v)
				return
			}
		}
	}
	m := make(map[string]any)
	doc[head] = m
	Set(m, rest, v)
}

// Delete removes the value stored at p. It reports whether a value was removed.
func Delete(doc map[string]any, p Path) bool {
	if len(p) == 0 {
		return false
	}
	parent, ok := Get(doc, p.Parent())
	if !ok {
		return false
	}
	m, ok := parent.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := m[p.Last()]; !ok {
		return false
	}
	delete(m, p.Last())
	return true
}

func step(cur any, seg string) (any, bool) {
	switch c := cur.(type) {
	case map[string]any:
		v, ok := c[seg]
		return v, ok
	case []any:
		idx, ok := index(seg, len(c))
		if !ok {
			return nil, false
		}
		return c[idx], true
	case []map[string]any:
		idx, ok := index(seg, len(c))
		if !ok {
			return nil, false
		}
		return c[idx], true
	}
	return nil, false
}

func index(seg string, n int) (int, bool) {
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
