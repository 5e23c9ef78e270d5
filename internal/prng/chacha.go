package prng

import (
	"encoding/binary"
	"math/bits"
)

// BlockWords is the number of 32-bit words a ChaCha block produces.
const BlockWords = 16

// "expand 32-byte k"
var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// chachaCore is the ChaCha block function with a configurable round count.
// Words 12 and 13 hold a 64-bit block counter, words 14 and 15 a 64-bit
// stream id that is always zero here.
type chachaCore struct {
	state  [BlockWords]uint32
	rounds int
}

func newChachaCore(key [KeySize]byte, rounds int) *chachaCore {
	c := &chachaCore{rounds: rounds}
	copy(c.state[:4], sigma[:])
	for i := 0; i < 8; i++ {
		c.state[4+i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	return c
}

func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d = bits.RotateLeft32(d^a, 16)
	c += d
	b = bits.RotateLeft32(b^c, 12)
	a += b
	d = bits.RotateLeft32(d^a, 8)
	c += d
	b = bits.RotateLeft32(b^c, 7)
	return a, b, c, d
}

// fill writes the next keystream block into out and advances the counter.
func (c *chachaCore) fill(out *[BlockWords]uint32) {
	x := c.state
	for i := 0; i < c.rounds; i += 2 {
		x[0], x[4], x[8], x[12] = quarterRound(x[0], x[4], x[8], x[12])
		x[1], x[5], x[9], x[13] = quarterRound(x[1], x[5], x[9], x[13])
		x[2], x[6], x[10], x[14] = quarterRound(x[2], x[6], x[10], x[14])
		x[3], x[7], x[11], x[15] = quarterRound(x[3], x[7], x[11], x[15])

		x[0], x[5], x[10], x[15] = quarterRound(x[0], x[5], x[10], x[15])
		x[1], x[6], x[11], x[12] = quarterRound(x[1], x[6], x[11], x[12])
		x[2], x[7], x[8], x[13] = quarterRound(x[2], x[7], x[8], x[13])
		x[3], x[4], x[9], x[14] = quarterRound(x[3], x[4], x[9], x[14])
	}
	for i := range x {
		out[i] = x[i] + c.state[i]
	}

	c.state[12]++
	if c.state[12] == 0 {
		c.state[13]++
	}
}
