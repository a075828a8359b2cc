package config

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// fingerprintDomain separates configuration fingerprints from any other
// sha256 use. Version suffix enables future algorithm migration.
const fingerprintDomain = "bedrock/container-config/v1"

// Fingerprint derives the cache key for an ordered configuration source
// list. Format: SHA256(domain + 0x00 + NFC(source) + 0x00 per source).
//
// The NUL separators keep element boundaries unambiguous, so ["a","b"] and
// ["ab"] hash differently. Order is significant and duplicates are kept:
// equal lists always produce equal fingerprints, and any reordering produces
// a different one.
func Fingerprint(sources []string) string {
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	for _, source := range sources {
		h.Write(norm.NFC.Bytes([]byte(source)))
		h.Write([]byte{0x00})
	}
	return hex.EncodeToString(h.Sum(nil))
}
