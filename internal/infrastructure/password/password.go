package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash returns the hex SHA-256 digest of a password. Good enough for the
// demo server's seeded accounts; a real deployment would use a KDF.
func Hash(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether pw matches a stored hash in constant time.
func Verify(storedHash, pw string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(Hash(pw))) == 1
}
