package kdml

import "strings"

// remarkMarker starts the free-text remark field appended to some
// definitions. Nothing after it is structural.
const remarkMarker = "RMK="

// TrimRemark cuts kdml at the first remark marker.
func TrimRemark(kdml string) string {
	if i := strings.Index(kdml, remarkMarker); i >= 0 {
		return kdml[:i]
	}
	return kdml
}

// Parse builds the sememe tree of a KDML definition. The synthetic root is
// labeled rootLabel; each ';'-separated clause contributes one subtree.
//
// Parse never fails. Unbalanced braces or quotes produce a best-effort tree
// whose shape may be wrong.
func Parse(kdml, rootLabel string) *Tree {
	t := NewTree(rootLabel)
	for _, clause := range strings.Split(TrimRemark(kdml), ";") {
		parseClause(t, clause)
	}
	return t
}

// span is the half-open byte range of an entity inside its clause.
type span struct {
	start, end int
}

func parseClause(t *Tree, s string) {
	var (
		spans    []span
		ids      []NodeID
		pointers []int
	)

	// Entities, left to right.
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '~', '?', '$':
			if c == '~' {
				pointers = append(pointers, len(ids))
			}
			spans = append(spans, span{i, i + 1})
			ids = append(ids, t.add(s[i:i+1], RoleNone))
		case '|':
			sp := tokenSpan(s, i)
			spans = append(spans, sp)
			ids = append(ids, t.add(s[sp.start:sp.end], RoleNone))
		}
	}
	if len(ids) == 0 {
		return
	}

	// Parents and roles.
	for i := range spans {
		anchor := anchorColumn(s, spans[i].start)
		parent := -1
		for j := i - 1; j >= 0; j-- {
			if spans[j].end == anchor {
				t.attach(ids[i], ids[j])
				parent = j
				break
			}
		}
		if i == 0 {
			continue
		}
		bound := spans[i-1].end
		if parent != -1 {
			bound = spans[parent].end
		}
		if role, ok := roleBefore(s, spans[i].start, bound); ok {
			t.nodes[ids[i]].Role = role
		}
	}

	// A pointer relabels its parent and leaves the tree.
	for _, p := range pointers {
		id := ids[p]
		if parent := t.Parent(id); parent != NoNode {
			t.nodes[parent].Role = t.nodes[id].Role
		}
		t.detach(id)
	}

	if len(pointers) > 0 && pointers[0] == 0 {
		// a clause led by a bare pointer has nothing to hang under the root
		return
	}
	t.attach(ids[0], t.Root())
}

// tokenSpan returns the span of the bilingual sememe token whose separator
// '|' sits at sep. The token starts after the nearest '{' or '"' on the left
// and ends before the nearest '}', ':' or '"' on the right.
func tokenSpan(s string, sep int) span {
	start := sep
	for start >= 0 && s[start] != '{' && s[start] != '"' {
		start--
	}
	end := sep
	for end < len(s) && s[end] != '}' && s[end] != ':' && s[end] != '"' {
		end++
	}
	return span{start + 1, end}
}

// anchorColumn scans left from pos to the ':' that opens the descriptor of
// the enclosing frame and returns its column, or 0 when there is none.
func anchorColumn(s string, pos int) int {
	var left, right, quotes int
	cursor := pos
	for {
		if s[cursor] == ':' && ((quotes%2 == 0 && left == right+1) || (quotes%2 == 1 && left == right)) {
			return cursor
		}
		if cursor == 0 {
			return 0
		}
		switch s[cursor] {
		case '{':
			left++
		case '}':
			right++
		case '"':
			quotes++
		}
		cursor--
	}
}

// roleBefore looks left of pos, down to and including bound, for text of the
// form ",role=" or ":role=". The first ',' or ':' met ends the search.
func roleBefore(s string, pos, bound int) (string, bool) {
	begin, end := -1, -1
	for j := pos - 1; j >= bound && j >= 0; j-- {
		if s[j] == '=' {
			end = j
		} else if s[j] == ',' || s[j] == ':' {
			begin = j
			break
		}
	}
	if end == -1 {
		return "", false
	}
	return s[begin+1 : end], true
}
