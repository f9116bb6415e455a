package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxEntries is the number of entries KEGG accepts in a single get request.
const maxEntries = 10

// validateSegment checks a single URL path segment supplied by the caller.
// It rejects values that would change the shape of the request path:
//   - No empty values
//   - No control characters or null bytes
//   - No slashes or backslashes
//   - Maximum length of 256 characters
func validateSegment(code Code, what, s string) error {
	if strings.TrimSpace(s) == "" {
		return New(code, "%s cannot be empty", what)
	}
	if len(s) > 256 {
		return New(code, "%s too long (max 256 characters)", what)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(code, "%s contains invalid control characters", what)
		}
	}
	if strings.ContainsAny(s, `/\`) {
		return New(code, "%s cannot contain path separators: %q", what, s)
	}
	return nil
}

// databaseRegex matches KEGG database names, organism codes and T numbers
// (e.g. "pathway", "hsa", "T01001", "vg", "ncbi-geneid").
var databaseRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateDatabase validates a database name or organism code.
func ValidateDatabase(db string) error {
	if err := validateSegment(ErrCodeInvalidDatabase, "database", db); err != nil {
		return err
	}
	if !databaseRegex.MatchString(db) {
		return New(ErrCodeInvalidDatabase, "invalid database name: %q", db)
	}
	return nil
}

// entryRegex matches a KEGG entry identifier with an optional database
// prefix ("C00001", "cpd:C00001", "hsa:10458", "path:map00010").
var entryRegex = regexp.MustCompile(`^([A-Za-z0-9_.-]+:)?[A-Za-z0-9_.-]+$`)

// ValidateEntryID validates a single entry identifier.
func ValidateEntryID(id string) error {
	if err := validateSegment(ErrCodeInvalidEntry, "entry", id); err != nil {
		return err
	}
	if !entryRegex.MatchString(id) {
		return New(ErrCodeInvalidEntry, "invalid entry identifier: %q", id)
	}
	return nil
}

// ValidateEntryIDs validates the identifiers of a get request.
// KEGG limits get to 10 entries per request.
func ValidateEntryIDs(ids []string) error {
	if len(ids) == 0 {
		return New(ErrCodeInvalidEntry, "at least one entry is required")
	}
	if len(ids) > maxEntries {
		return New(ErrCodeInvalidEntry, "too many entries: %d (max %d)", len(ids), maxEntries)
	}
	for _, id := range ids {
		if err := ValidateEntryID(id); err != nil {
			return err
		}
	}
	return nil
}

// ValidateQuery validates a free-text find query. Spaces, '+' and ':' are
// allowed because the fetcher percent-encodes them.
func ValidateQuery(q string) error {
	return validateSegment(ErrCodeInvalidInput, "query", q)
}

// ValidateOption checks that opt is one of allowed. An empty option is valid.
func ValidateOption(opt string, allowed ...string) error {
	if opt == "" {
		return nil
	}
	for _, a := range allowed {
		if opt == a {
			return nil
		}
	}
	return New(ErrCodeInvalidOption, "unsupported option %q (want one of %s)", opt, strings.Join(allowed, ", "))
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
