package parse

import (
	"regexp"
	"strings"

	kerrors "github.com/keggrest/kegg/pkg/errors"
)

var entryGap = regexp.MustCompile(`\s{3,}`)

// ParseEntryLine splits the content of an ENTRY field into the identifier
// and the entry kind, e.g. "C00001                      Compound" or
// "10458             CDS       T01001".
func ParseEntryLine(line string) (id, kind string, err error) {
	segs := entryGap.Split(strings.TrimSpace(line), -1)
	if len(segs) < 2 || segs[0] == "" {
		return "", "", kerrors.New(kerrors.ErrCodeFormat, "malformed ENTRY line: %q", line)
	}
	return segs[0], segs[1], nil
}

// Names cleans NAME field lines, which KEGG separates with trailing
// semicolons.
func Names(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if n := strings.TrimSpace(strings.Trim(strings.TrimSpace(l), ";")); n != "" {
			out = append(out, n)
		}
	}
	return out
}
