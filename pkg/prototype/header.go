package prototype

import "strings"

const (
	// HeaderDelimiter separates the entity name from its parent list.
	HeaderDelimiter = ":"
	// ParentDelimiter separates parent names within the parent list.
	ParentDelimiter = ","
)

// ParseHeader splits a section header into an entity name and its ordered
// parent names.
//
// Only the first HeaderDelimiter is significant: "A: B, C" yields name "A" and
// parents [B C], while "A: B: C" yields parents ["B: C"]. Parent names are
// trimmed of surrounding whitespace and empty tokens are dropped. The name is
// returned exactly as written. Any input is accepted.
func ParseHeader(raw string) (name string, parents []string) {
	name, list, found := strings.Cut(raw, HeaderDelimiter)
	if !found {
		return raw, nil
	}
	for _, token := range strings.Split(list, ParentDelimiter) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		parents = append(parents, token)
	}
	return name, parents
}
