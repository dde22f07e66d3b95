package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash returns the hex SHA-256 digest of data. Snapshots are identified
// by content, not by path: two byte-identical snapshot files share every
// cached artifact no matter where they live on disk.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// descriptionDigest folds the snapshot hash and the extraction options
// into one digest. Option variants (weights on/off, params on/off) of
// the same snapshot must never share an entry.
func descriptionDigest(snapshotHash string, opts DescriptionKeyOpts) string {
	payload := fmt.Sprintf("%s|weights=%t|params=%t", snapshotHash, opts.Weights, opts.Params)
	return Hash([]byte(payload))
}
