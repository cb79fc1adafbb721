// Package hash includes all hashing utilities used by the simulation for
// deriving block roots.
package hash

import (
	"github.com/minio/sha256-simd"
)

// Hash defines a function that returns the sha256 checksum of the data passed in.
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}
