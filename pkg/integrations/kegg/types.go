package kegg

import (
	"strings"

	"github.com/keggrest/kegg/pkg/parse"
)

// Link is one row of a link or conv response.
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func linksFromMatrix(m parse.Matrix) []Link {
	links := make([]Link, 0, m.Rows())
	for _, row := range m {
		links = append(links, Link{From: row[0], To: row[1]})
	}
	return links
}

// Entry is one entry of a get response.
//
// Record holds every top-level field. ID, Kind and Names are read from the
// ENTRY and NAME fields when present; References holds the REFERENCE
// blocks with their AUTHORS, TITLE and JOURNAL sub-fields.
type Entry struct {
	ID         string            `json:"id,omitempty"`
	Kind       string            `json:"kind,omitempty"`
	Names      []string          `json:"names,omitempty"`
	Record     parse.Record      `json:"record"`
	References []parse.Reference `json:"references,omitempty"`
}

// newEntry builds an Entry from the raw text of a single entry.
func newEntry(text string) (Entry, error) {
	rec, err := parse.ParseFlatFile(text)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Record:     rec,
		Names:      parse.Names(rec.Get("NAME")),
		References: parse.ParseReferences(parse.ReferenceLines(parse.TaggedLines(text))),
	}
	if line := rec.First("ENTRY"); line != "" {
		id, kind, err := parse.ParseEntryLine(line)
		if err != nil {
			// ENTRY lines without a kind column carry the bare identifier.
			id, kind = strings.Fields(line)[0], ""
		}
		e.ID, e.Kind = id, kind
	}
	return e, nil
}

// parseEntries parses a multi-entry get response.
func parseEntries(text string) ([]Entry, error) {
	chunks := parse.SplitEntries(text)
	entries := make([]Entry, 0, len(chunks))
	for _, chunk := range chunks {
		e, err := newEntry(chunk)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
