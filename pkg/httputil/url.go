package httputil

import "strings"

var pathReplacer = strings.NewReplacer(
	" ", "%20",
	"#", "%23",
	":", "%3a",
)

// CleanURL percent-encodes spaces, '#' and ':' in the path and query of
// rawURL. The "scheme://host:port" prefix is left untouched, so only the
// colons that belong to KEGG identifiers are encoded.
func CleanURL(rawURL string) string {
	prefix, rest := splitAuthority(rawURL)
	return prefix + pathReplacer.Replace(rest)
}

// splitAuthority splits rawURL after its authority. URLs without a scheme
// separator have no prefix.
func splitAuthority(rawURL string) (prefix, rest string) {
	i := strings.Index(rawURL, "://")
	if i < 0 {
		return "", rawURL
	}
	start := i + len("://")
	if j := strings.IndexByte(rawURL[start:], '/'); j >= 0 {
		return rawURL[:start+j], rawURL[start+j:]
	}
	return rawURL, ""
}

// JoinPath joins path segments onto base with single slashes. Segments are
// not escaped; pass the result through [CleanURL] before requesting it.
func JoinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}
