package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex digits, enough to cite in a report
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// DatasetHash identifies the exact masses a run was fitted against
type DatasetHash Hash

func (h DatasetHash) String() string { return Hash(h).String() }

// ComputeDatasetHash hashes name/mass pairs independent of map order.
// Masses are rendered with %g at full precision so any change in a digit changes the hash.
func ComputeDatasetHash(anchor string, masses map[string]float64) DatasetHash {
	keys := make([]string, 0, len(masses))
	for k := range masses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	data.WriteString("anchor:")
	data.WriteString(anchor)
	for _, key := range keys {
		data.WriteString(fmt.Sprintf("|%s=%.17g", key, masses[key]))
	}

	return DatasetHash(NewHash([]byte(data.String())))
}
