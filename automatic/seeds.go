package automatic

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// NewMasterSeed returns a random seed for a self-play run.
func NewMasterSeed() string {
	return base64.RawURLEncoding.EncodeToString(frand.Bytes(16))
}

// GameSeed derives the 32-byte seed for game index of a run, so that any
// single game of a run can be replayed on its own.
func GameSeed(master string, index int) [32]byte {
	var seed [32]byte
	for k := 0; k < 4; k++ {
		h := xxhash.Sum64String(fmt.Sprintf("%s/%d/%d", master, index, k))
		binary.LittleEndian.PutUint64(seed[8*k:], h)
	}
	return seed
}
