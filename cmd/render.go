package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kamusis/sememe-cli/internal/kdml"
	"github.com/kamusis/sememe-cli/internal/lexicon"
)

// renderTree prints t one node per line, indented by depth.
func renderTree(w io.Writer, t *kdml.Tree, indent string) {
	t.Walk(func(id kdml.NodeID, depth int) bool {
		fmt.Fprintf(w, "%s%s%s [%s]\n", indent, strings.Repeat("  ", depth), t.Label(id), t.Role(id))
		return true
	})
}

// senseTitle is "No.3 apple (noun) / 苹果 (noun)".
func senseTitle(s *lexicon.Sense) string {
	var b strings.Builder
	b.WriteString(s.String())
	b.WriteString(" ")
	b.WriteString(s.EnWord)
	if s.EnGrammar != "" {
		fmt.Fprintf(&b, " (%s)", s.EnGrammar)
	}
	b.WriteString(" / ")
	b.WriteString(s.ZhWord)
	if s.ZhGrammar != "" {
		fmt.Fprintf(&b, " (%s)", s.ZhGrammar)
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
