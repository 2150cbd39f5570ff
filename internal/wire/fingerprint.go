package wire

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/eqsat/internal/eg"
)

// fingerprintDomain prefixes the hash input. The version suffix enables
// future algorithm migration.
const fingerprintDomain = "eqsat/graph/v1"

// Fingerprint computes a content hash of a snapshot: SHA-256 with domain
// separation over the canonical byte encoding, with symbol names NFC
// normalized so visually identical symbols hash alike.
//
// Snapshots taken from equal graph states produce equal fingerprints, so
// clients can detect a saturation fixpoint by comparing fingerprints
// before and after a rewrite pass.
func Fingerprint(s eg.Snapshot) string {
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(appendSnapshot(nil, s, true))
	return hex.EncodeToString(h.Sum(nil))
}

func normalizeSymbol(name string) string {
	return norm.NFC.String(name)
}
