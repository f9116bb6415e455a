package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyHash returns the hex SHA-256 of key. The file cache names entries by
// it because cleaned KEGG URLs contain '/', '%' and '+'.
func KeyHash(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
