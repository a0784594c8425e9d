package probability

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// EntropySeed reads a seed from crypto/rand, falling back to the clock if the
// system source is unavailable.
func EntropySeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return splitmix64(uint64(time.Now().UnixNano()))
	}
	return binary.LittleEndian.Uint64(b[:])
}

// StreamSeed derives an independent seed for stream id from a root seed.
func StreamSeed(root uint64, stream int) uint64 {
	return splitmix64(root + uint64(stream+1)*0x9e3779b97f4a7c15)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
