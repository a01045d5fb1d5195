// Package cache stores rendered figure artifacts between runs.
//
// [FileCache] backs the CLI and keeps entries as JSON files under the user
// cache directory. [MemoryCache] keeps entries in process memory and
// [NullCache] never stores anything. Keys are produced by a [Keyer] so that every
// option influencing the encoded bytes is part of the key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// ArtifactKeyOpts holds every render setting that changes an encoded
// artifact. Zero values mean "taken from the document".
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	CellWidth    float64 `json:"cell_width,omitempty"`
	CellHeight   float64 `json:"cell_height,omitempty"`
	AxisInterval float64 `json:"axis_interval,omitempty"`
	DPI          int     `json:"dpi,omitempty"`
	Layout       string  `json:"layout,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one encoded artifact of the document
	// whose source hashes to docHash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "prefix:<sha256>" over the JSON encoding of parts.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts) // strings and plain option structs always encode
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
