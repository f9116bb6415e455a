package parse

import (
	"strings"

	kerrors "github.com/keggrest/kegg/pkg/errors"
)

// Organism is one row of the KEGG organism catalogue (/list/organism).
type Organism struct {
	TNumber   string `json:"t_number"`  // Genome identifier (e.g. "T01001")
	Code      string `json:"organism"`  // Three or four letter code (e.g. "hsa")
	Species   string `json:"species"`   // Scientific and common name
	Phylogeny string `json:"phylogeny"` // Semicolon-separated lineage
}

// ParseOrganisms parses the tab-separated organism list. Every line must
// have at least four fields; a shorter line fails the whole parse with
// [kerrors.ErrCodeFormat]. Additional trailing fields are ignored.
func ParseOrganisms(text string) ([]Organism, error) {
	lines := splitLines(text)
	orgs := make([]Organism, 0, len(lines))
	for i, line := range lines {
		f := strings.Split(line, "\t")
		if len(f) < 4 {
			return nil, kerrors.New(kerrors.ErrCodeFormat,
				"organism line %d: expected 4 fields, got %d", i+1, len(f))
		}
		orgs = append(orgs, Organism{
			TNumber:   f[0],
			Code:      f[1],
			Species:   f[2],
			Phylogeny: f[3],
		})
	}
	return orgs, nil
}
