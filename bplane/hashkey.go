package bplane

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"

	"github.com/grailbio/bplane/georect"
)

// hashKey returns farm.Hash64 of a 16-byte key built from r: the four
// canonical coordinates packed little-endian, the same 4-word Rect the
// original hashed with IHash4WordKeyHash.
func hashKey(r georect.Rect) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(r.XBot))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(r.YBot))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(r.XTop))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(r.YTop))
	return farm.Hash64(buf[:])
}
