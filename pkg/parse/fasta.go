package parse

import "strings"

// Sequence is one FASTA record.
type Sequence struct {
	Header   string `json:"header"`
	Residues string `json:"residues"`
}

// ID returns the first token of the header ("hsa:10458").
func (s Sequence) ID() string {
	id, _, _ := strings.Cut(s.Header, " ")
	return id
}

// ParseFASTA parses aaseq/ntseq output. A line beginning with '>' starts a
// record; other lines are concatenated into its residues. Lines before the
// first header are ignored.
func ParseFASTA(text string) []Sequence {
	var (
		seqs    []Sequence
		current *Sequence
		b       strings.Builder
	)
	flush := func() {
		if current != nil {
			current.Residues = b.String()
			seqs = append(seqs, *current)
			b.Reset()
		}
	}

	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			flush()
			current = &Sequence{Header: strings.TrimSpace(line[1:])}
			continue
		}
		if current != nil {
			b.WriteString(line)
		}
	}
	flush()
	return seqs
}
