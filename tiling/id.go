package tiling

import (
	"fmt"
	"math/rand/v2"
)

// TileID identifies a tile within a single tree. IDs are random 64-bit
// values, unique per tree, and carry no meaning beyond lookup.
// The zero value is reserved and never identifies a tile.
type TileID uint64

// NewTileID generates a fresh random identifier.
func NewTileID() TileID {
	for {
		if id := TileID(rand.Uint64()); id != 0 {
			return id
		}
	}
}

// IsZero reports whether the id is the reserved zero value.
func (id TileID) IsZero() bool {
	return id == 0
}

// String formats the low 32 bits as hex, which is plenty for log output.
func (id TileID) String() string {
	return fmt.Sprintf("%08X", uint32(id))
}
