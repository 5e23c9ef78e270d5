package prng

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// xcryptoBlocks produces ChaCha20 keystream blocks through x/crypto. With an
// all-zero 96-bit nonce its block layout matches chachaCore at 20 rounds for
// the first 2^32 blocks, which is far beyond any ticket pool.
type xcryptoBlocks struct {
	cipher *chacha20.Cipher
	zero   [BlockWords * 4]byte
	buf    [BlockWords * 4]byte
}

func newXCryptoBlocks(key [KeySize]byte) (*xcryptoBlocks, error) {
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise chacha20 cipher: %w", err)
	}
	return &xcryptoBlocks{cipher: c}, nil
}

func (x *xcryptoBlocks) fill(out *[BlockWords]uint32) {
	x.cipher.XORKeyStream(x.buf[:], x.zero[:])
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(x.buf[i*4:])
	}
}
