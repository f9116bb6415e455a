package parse

import (
	"regexp"
	"strings"
)

// TaggedLine is one (tag, value) pair of a flat-file entry. Sub is set for
// indented sub-tags such as the AUTHORS line of a reference.
type TaggedLine struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
	Sub   bool   `json:"sub,omitempty"`
}

// subTagIndent is the column where KEGG starts field content. Indented
// tokens that begin before it are sub-tags such as "  AUTHORS".
const subTagIndent = 12

var tagRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// TaggedLines flattens flat-file text into tagged lines, keeping the
// sub-tags that [ParseFlatFile] folds into their parent field. Continuation
// lines without a tag are joined to the previous value with a space. The
// terminator line is dropped.
func TaggedLines(text string) []TaggedLine {
	var out []TaggedLine
	for _, line := range splitBlock(text) {
		if strings.HasPrefix(line, Terminator) {
			continue
		}
		line = strings.TrimRight(line, " \t")
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}

		indent := len(line) - len(trimmed)
		token, rest := trimmed, ""
		if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
			token, rest = trimmed[:i], strings.TrimSpace(trimmed[i+1:])
		}

		switch {
		case indent == 0:
			out = append(out, TaggedLine{Tag: token, Value: rest})
		case indent < subTagIndent && tagRe.MatchString(token):
			out = append(out, TaggedLine{Tag: token, Value: rest, Sub: true})
		case len(out) > 0:
			last := &out[len(out)-1]
			if last.Value == "" {
				last.Value = trimmed
			} else {
				last.Value += " " + trimmed
			}
		}
	}
	return out
}

// Reference is one bibliographic reference of an entry.
type Reference struct {
	ID     string              `json:"id"`
	Fields map[string][]string `json:"fields"`
	Order  []string            `json:"order"` // first-seen order of Fields keys
}

// Map returns the reference as a generic mapping: "id" holds the ID and
// every other tag holds its list of values.
func (r Reference) Map() map[string]any {
	out := make(map[string]any, len(r.Fields)+1)
	out["id"] = r.ID
	for k, v := range r.Fields {
		out[k] = v
	}
	return out
}

// ReferenceLines keeps the REFERENCE lines of an entry and the sub-tags
// that follow each of them. Any other top-level tag closes the block, so
// fields such as REL_PATHWAY after the last reference are left out.
func ReferenceLines(lines []TaggedLine) []TaggedLine {
	var (
		out []TaggedLine
		in  bool
	)
	for _, l := range lines {
		switch {
		case !l.Sub && l.Tag == "REFERENCE":
			in = true
			out = append(out, l)
		case !l.Sub:
			in = false
		case in:
			out = append(out, l)
		}
	}
	return out
}

// ParseReferences groups tagged lines into references. Every REFERENCE tag
// starts a new reference whose ID is the tag's value, flushing the previous
// one; other tags append their value to the current reference.
//
// Lines before the first REFERENCE are ignored rather than collected into a
// reference without an ID. Callers holding a whole entry should filter it
// with [ReferenceLines] first.
func ParseReferences(lines []TaggedLine) []Reference {
	var (
		refs    []Reference
		current *Reference
	)
	flush := func() {
		if current != nil {
			refs = append(refs, *current)
		}
	}

	for _, l := range lines {
		if l.Tag == "REFERENCE" {
			flush()
			current = &Reference{ID: l.Value, Fields: make(map[string][]string)}
			continue
		}
		if current == nil {
			continue
		}
		if _, ok := current.Fields[l.Tag]; !ok {
			current.Order = append(current.Order, l.Tag)
		}
		current.Fields[l.Tag] = append(current.Fields[l.Tag], l.Value)
	}
	flush()
	return refs
}
