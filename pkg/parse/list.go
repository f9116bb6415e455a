package parse

import (
	"strconv"
	"strings"

	kerrors "github.com/keggrest/kegg/pkg/errors"
)

// ParseList reduces tab-separated lines to a [Mapping].
//
// valueColumn is the 1-based column holding the value. nameColumn is the
// 1-based column holding the key, or 0 when lines have no key column. When
// the key column is missing from a line or empty, the key is the ordinal
// position of the entry ("0", "1", ...).
//
// ParseList is lenient: lines with fewer than valueColumn fields are
// skipped. KEGG prints such lines only as trailers.
func ParseList(text string, valueColumn, nameColumn int) (*Mapping, error) {
	if valueColumn < 1 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "value column must be >= 1, got %d", valueColumn)
	}
	if nameColumn < 0 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "name column must be >= 0, got %d", nameColumn)
	}

	m := NewMapping()
	for _, line := range splitLines(text) {
		f := strings.Split(line, "\t")
		if len(f) < valueColumn {
			continue
		}
		value := f[valueColumn-1]

		var name string
		if nameColumn > 0 && len(f) >= nameColumn {
			name = f[nameColumn-1]
		}
		if name == "" {
			name = strconv.Itoa(m.Len())
		}
		m.Set(name, value)
	}
	return m, nil
}

// ParseKeyValue splits every line once at its first wide gap. The trimmed
// left part is the key and the trimmed right part is the value, so
//
//	ENTRY       A00000            Enzyme
//
// yields "ENTRY" -> "A00000            Enzyme".
//
// Lines without a wide gap, and lines whose left part is empty (indented
// continuation lines), are skipped. A repeated key keeps the last value.
func ParseKeyValue(text string) *Mapping {
	m := NewMapping()
	for _, line := range splitLines(text) {
		loc := wideGap.FindStringIndex(line)
		if loc == nil {
			continue
		}
		key := strings.TrimSpace(line[:loc[0]])
		if key == "" {
			continue
		}
		m.Set(key, strings.TrimSpace(line[loc[1]:]))
	}
	return m
}

// SplitWide splits text on wide gaps after trimming it.
func SplitWide(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	return wideGap.Split(text, -1)
}

// Kind tells which payload of a [Result] is populated.
type Kind int

const (
	KindList Kind = iota
	KindKeyValue
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindKeyValue:
		return "key_value"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Result is the outcome of [ParseListOrKeyValue]. Exactly one of List and
// KeyValue is set, as indicated by Kind.
type Result struct {
	Kind     Kind     `json:"kind"`
	List     []string `json:"list,omitempty"`
	KeyValue *Mapping `json:"key_value,omitempty"`
}

// MarshalJSON encodes Kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

// ParseListOrKeyValue parses text as key/value pairs if it contains any
// wide gap, and otherwise as a flat list of wide-gap separated tokens.
func ParseListOrKeyValue(text string) Result {
	if wideGap.MatchString(text) {
		return Result{Kind: KindKeyValue, KeyValue: ParseKeyValue(text)}
	}
	return Result{Kind: KindList, List: SplitWide(text)}
}
