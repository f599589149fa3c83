package symbol

import "github.com/minio/highwayhash"

// fingerprintKey is fixed so FQN fingerprints are stable across runs,
// exactly as the teacher's inspector/graph.Hash uses a fixed key — this is
// a tiebreaker for deterministic ordering (spec.md §8 round-trip laws), not
// a security hash.
var fingerprintKey = []byte("llmcc-fqn-fingerprint-key-000001")

// Fingerprint returns a stable 64-bit digest of an FQN, available as a
// deterministic tie-break key. The ranker does not consult it: rank orders
// equal composite scores by ascending name.
func Fingerprint(fqn string) uint64 {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		// fingerprintKey is a fixed 32-byte constant; New64 only fails on a
		// key of the wrong length, which would be a programmer error.
		panic("symbol: invalid highwayhash key: " + err.Error())
	}
	_, _ = hash.Write([]byte(fqn))
	return hash.Sum64()
}
