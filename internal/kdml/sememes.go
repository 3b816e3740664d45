package kdml

// Sememes returns the bilingual sememe tokens of kdml in order of first
// appearance, without duplicates. Placeholder markers are not sememes and
// are skipped. Tokens are returned verbatim.
func Sememes(kdml string) []string {
	s := TrimRemark(kdml)
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < len(s); i++ {
		if s[i] != '|' {
			continue
		}
		sp := tokenSpan(s, i)
		tok := s[sp.start:sp.end]
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
