package prng

import (
	"encoding/binary"
	"math/bits"
)

// PCG32 constants used to stretch a 64-bit seed into a 256-bit key.
const (
	pcgMultiplier = 6364136223846793005
	pcgIncrement  = 11634580027462260723
)

// KeySize is the ChaCha key length in bytes.
const KeySize = 32

// ExpandSeed turns a 64-bit seed into a ChaCha key. The state is advanced
// before each output word so low Hamming weight seeds are mixed first.
func ExpandSeed(seed uint64) [KeySize]byte {
	var key [KeySize]byte
	state := seed
	for off := 0; off < KeySize; off += 4 {
		state = state*pcgMultiplier + pcgIncrement
		binary.LittleEndian.PutUint32(key[off:], pcgOutput(state))
	}
	return key
}

// pcgOutput is the XSH-RR output permutation.
func pcgOutput(state uint64) uint32 {
	xorshifted := uint32(((state >> 18) ^ state) >> 27)
	rot := uint32(state >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}
