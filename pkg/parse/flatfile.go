package parse

import (
	"strings"

	kerrors "github.com/keggrest/kegg/pkg/errors"
)

const (
	// Terminator is the line that ends a flat-file entry.
	Terminator = "///"

	// EndOfEntry is the content recorded under [Terminator] once an entry
	// has been closed.
	EndOfEntry = "End of Entry"
)

// Record is one flat-file entry: each top-level tag mapped to its content
// lines, with continuation lines appended in order.
type Record struct {
	Fields map[string][]string `json:"fields"`
	Tags   []string            `json:"tags"` // first-seen order of Fields keys
}

func newRecord() Record {
	return Record{Fields: make(map[string][]string)}
}

// Get returns the content lines of tag.
func (r Record) Get(tag string) []string { return r.Fields[tag] }

// First returns the first content line of tag, or "".
func (r Record) First(tag string) string {
	if v := r.Fields[tag]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether tag appeared in the entry.
func (r Record) Has(tag string) bool {
	_, ok := r.Fields[tag]
	return ok
}

// Terminated reports whether the entry ended with a "///" line.
func (r Record) Terminated() bool {
	return r.First(Terminator) == EndOfEntry
}

func (r *Record) open(tag string) {
	if _, ok := r.Fields[tag]; !ok {
		r.Tags = append(r.Tags, tag)
		r.Fields[tag] = []string{}
	}
}

func (r *Record) add(tag, line string) {
	r.Fields[tag] = append(r.Fields[tag], line)
}

func (r *Record) terminate() {
	r.open(Terminator)
	r.Fields[Terminator] = []string{EndOfEntry}
}

func (r Record) empty() bool { return len(r.Tags) == 0 }

// flatParser accumulates one record at a time.
type flatParser struct {
	rec     Record
	current string
	lineNo  int
}

func (p *flatParser) reset() {
	p.rec = newRecord()
	p.current = ""
}

// feed consumes one line and reports whether it was a terminator.
func (p *flatParser) feed(line string) (bool, error) {
	p.lineNo++
	if strings.HasPrefix(line, Terminator) {
		p.rec.terminate()
		p.current = ""
		return true, nil
	}

	line = strings.TrimRight(line, " \t")
	if line == "" {
		return false, nil
	}

	if isIndented(line) {
		if p.current == "" {
			return false, kerrors.New(kerrors.ErrCodeFormat,
				"flat file line %d: continuation line before any field", p.lineNo)
		}
		p.rec.add(p.current, strings.TrimSpace(line))
		return false, nil
	}

	tag, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		tag, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	p.current = tag
	p.rec.open(tag)
	if rest != "" {
		p.rec.add(tag, rest)
	}
	return false, nil
}

// ParseFlatFile parses a single flat-file entry.
//
// A line without leading whitespace starts a field: its first token is the
// tag and the rest of the line is the first content line. An indented line
// is appended, trimmed, to the current field. A tag that appears again at
// the top level (REFERENCE, for instance) appends to the existing field.
//
// A line starting with "///" closes the entry and records [EndOfEntry]
// under [Terminator]. Content after the terminator fails with
// [kerrors.ErrCodeFormat]; use [ParseFlatFiles] for multi-entry responses.
func ParseFlatFile(text string) (Record, error) {
	p := &flatParser{}
	p.reset()

	lines := splitBlock(text)
	for i, line := range lines {
		done, err := p.feed(line)
		if err != nil {
			return Record{}, err
		}
		if done {
			for _, rest := range lines[i+1:] {
				if strings.TrimSpace(rest) != "" {
					return Record{}, kerrors.New(kerrors.ErrCodeFormat,
						"flat file line %d: content after %q; use ParseFlatFiles for multiple entries", i+2, Terminator)
				}
			}
			break
		}
	}
	return p.rec, nil
}

// ParseFlatFiles parses a response holding any number of entries, as
// returned by a get request for several identifiers. Each terminator closes
// the current entry and resets all parser state. A trailing entry without a
// terminator is returned with Terminated() == false.
func ParseFlatFiles(text string) ([]Record, error) {
	p := &flatParser{}
	p.reset()

	var recs []Record
	for _, line := range splitBlock(text) {
		done, err := p.feed(line)
		if err != nil {
			return nil, err
		}
		if done {
			recs = append(recs, p.rec)
			p.reset()
		}
	}
	if !p.rec.empty() {
		recs = append(recs, p.rec)
	}
	return recs, nil
}

// SplitEntries splits a multi-entry response into the raw text of each
// entry, terminator line included. It cuts where [ParseFlatFiles] does, so
// the i-th chunk is the source of the i-th record.
func SplitEntries(text string) []string {
	var (
		chunks []string
		cur    []string
		blank  = true
	)
	for _, line := range splitBlock(text) {
		cur = append(cur, line)
		if strings.HasPrefix(line, Terminator) {
			chunks = append(chunks, strings.Join(cur, "\n"))
			cur, blank = nil, true
			continue
		}
		if strings.TrimSpace(line) != "" {
			blank = false
		}
	}
	if !blank {
		chunks = append(chunks, strings.Join(cur, "\n"))
	}
	return chunks
}
