package corpus

import (
	"strings"

	"github.com/google/uuid"

	"chronocorpus/internal/util"
)

// IDFunc produces a record id from the identity parts of the record. The
// parts are ignored by the random generator and hashed by the stable one.
type IDFunc func(parts ...string) string

// RandomIDs generates a fresh UUID per record. Rebuilt corpora are not
// diffable across runs under this scheme.
func RandomIDs() IDFunc {
	return func(...string) string { return uuid.NewString() }
}

// StableIDs derives ids from the record identity, so rebuilding the same
// inputs yields the same corpus byte for byte.
func StableIDs() IDFunc {
	return func(parts ...string) string {
		return util.SHA256Hex([]byte(strings.Join(parts, "::")))[:32]
	}
}

// IDs returns the stable generator when stable is set, random otherwise.
func IDs(stable bool) IDFunc {
	if stable {
		return StableIDs()
	}
	return RandomIDs()
}
