// Package uesid generates deterministic UES identifiers of the form
// PREFIX-HHHHHHHH, an 8-hex-digest derived from (prefix, alpha_id, beta_id)
// (§2.5, invariant 1 in §3: pure, stable across processes).
package uesid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Generate returns the deterministic UES id for the given prefix and source
// id pair. Same inputs always yield the same output, in this process or any
// other, because it is a pure hash with no seed or clock dependency.
func Generate(prefix string, alphaID, betaID int) string {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", prefix, alphaID, betaID)))
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(digest[:])[:8])
}
