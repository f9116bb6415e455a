package parse

import (
	"strings"

	kerrors "github.com/keggrest/kegg/pkg/errors"
)

// Matrix is a rectangular table of fields in row-major order.
type Matrix [][]string

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Column returns a copy of column i.
func (m Matrix) Column(i int) []string {
	out := make([]string, 0, len(m))
	for _, row := range m {
		out = append(out, row[i])
	}
	return out
}

// ParseMatrix splits text into lines and each line into tab-separated
// fields, flattens all fields and reshapes them into rows of ncol columns.
//
// The total field count must be an exact multiple of ncol; otherwise
// ParseMatrix fails with [kerrors.ErrCodeShape] instead of truncating or
// padding. Whitespace-only text yields an empty matrix.
func ParseMatrix(text string, ncol int) (Matrix, error) {
	if ncol < 1 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "column count must be positive, got %d", ncol)
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return Matrix{}, nil
	}

	var fields []string
	for _, line := range lines {
		fields = append(fields, strings.Split(line, "\t")...)
	}
	if len(fields)%ncol != 0 {
		return nil, kerrors.New(kerrors.ErrCodeShape,
			"cannot reshape %d fields into %d columns", len(fields), ncol)
	}

	m := make(Matrix, 0, len(fields)/ncol)
	for i := 0; i < len(fields); i += ncol {
		m = append(m, fields[i:i+ncol:i+ncol])
	}
	return m, nil
}
