package prng

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 7539 A.1, test vector #1: all-zero key, nonce and counter.
const zeroKeyBlock = "76b8e0ada0f13d90405d6ae55386bd28bdd219b8a08ded1aa836efcc8b770dc7" +
	"da41597c5157488d7724e03fb8d84a376a43b8f41518a11cc387b669b2ee6586"

func TestChachaCoreKnownAnswer(t *testing.T) {
	core := newChachaCore([KeySize]byte{}, 20)
	var out [BlockWords]uint32
	core.fill(&out)

	got := make([]byte, BlockWords*4)
	for i, w := range out {
		binary.LittleEndian.PutUint32(got[i*4:], w)
	}
	assert.Equal(t, zeroKeyBlock, hex.EncodeToString(got))
}

func TestChachaCoreMatchesXCrypto(t *testing.T) {
	key := ExpandSeed(0xfeedface)
	core := newChachaCore(key, 20)
	x, err := newXCryptoBlocks(key)
	require.NoError(t, err)

	for block := 0; block < 8; block++ {
		var a, b [BlockWords]uint32
		core.fill(&a)
		x.fill(&b)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("block %d differs (-core +xcrypto):\n%s", block, diff)
		}
	}
}

func TestExpandSeed(t *testing.T) {
	k0 := ExpandSeed(0)
	k1 := ExpandSeed(1)

	assert.Equal(t, "ecf273f981b5cd4587f0467306ad6cadd0d0a3e33317e767f29bea72d78a7dfe", hex.EncodeToString(k0[:]))
	assert.Equal(t, "ead81d725d26104e899c3bf842ce782ebad303da9997d2c2120256ac7366fb1b", hex.EncodeToString(k1[:]))
	assert.Equal(t, k1, ExpandSeed(1))
}

func TestNewFirstWords(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		want []uint32
	}{
		{ChaCha8, []uint32{0x8ca40db1, 0x67094cea, 0xfc0e8e6b, 0x149406d8}},
		{ChaCha12, []uint32{0xd3301861, 0xf9681a64, 0xcc0d694a, 0xb0f4d125}},
		{ChaCha20, []uint32{0x5044379a, 0x9e636045, 0xa1b770c6, 0x272b497d}},
	}
	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			src, err := New(tt.alg, 1)
			require.NoError(t, err)

			got := make([]uint32, len(tt.want))
			for i := range got {
				got[i] = src.Uint32()
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected words (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewUnknownAlgorithm(t *testing.T) {
	_, err := New("mt19937", 1)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAlgorithm, alg)

	alg, err = ParseAlgorithm(" ChaCha20 ")
	require.NoError(t, err)
	assert.Equal(t, ChaCha20, alg)

	_, err = ParseAlgorithm("pcg64")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

// countingBlocks emits 0, 1, 2, ... so word boundaries are visible.
type countingBlocks struct{ next uint32 }

func (c *countingBlocks) fill(out *[BlockWords]uint32) {
	for i := range out {
		out[i] = c.next
		c.next++
	}
}

func TestUint64SpansBlockBoundary(t *testing.T) {
	w := &wordStream{blocks: &countingBlocks{}, idx: BlockWords}
	for i := 0; i < BlockWords-1; i++ {
		w.Uint32()
	}
	// word 15 is the low half, word 16 (first of the next block) the high half
	assert.Equal(t, uint64(16)<<32|15, w.Uint64())
	assert.Equal(t, uint32(17), w.Uint32())
}

// scripted replays fixed words.
type scripted struct {
	words []uint32
	pos   int
}

func (s *scripted) Uint32() uint32 {
	v := s.words[s.pos]
	s.pos++
	return v
}

func (s *scripted) Uint64() uint64 {
	lo := uint64(s.Uint32())
	return uint64(s.Uint32())<<32 | lo
}

func TestUint32nRejectsOutsideZone(t *testing.T) {
	// for n=3 the zone is 0xBFFFFFFF; 0xFFFFFFFF*3 leaves lo=0xFFFFFFFD
	src := &scripted{words: []uint32{0xFFFFFFFF, 0x80000000}}
	assert.Equal(t, uint32(1), Uint32n(src, 3))
	assert.Equal(t, 2, src.pos)
}

func TestShuffleOrder(t *testing.T) {
	src := &scripted{words: []uint32{0, 0, 0}}
	items := []string{"a", "b", "c", "d"}
	Shuffle(src, len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	assert.Equal(t, []string{"b", "c", "d", "a"}, items)
}

func TestShuffleGolden(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		seed uint64
		want []int
	}{
		{ChaCha12, 1, []int{0, 4, 9, 2, 5, 6, 1, 3, 7, 8}},
		{ChaCha12, 0xdeadbeef, []int{1, 9, 2, 3, 6, 0, 4, 7, 5, 8}},
		{ChaCha20, 1, []int{6, 5, 7, 8, 4, 2, 9, 0, 1, 3}},
	}
	for _, tt := range tests {
		src, err := New(tt.alg, tt.seed)
		require.NoError(t, err)

		items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		Shuffle(src, len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		assert.Equal(t, tt.want, items, "%s seed %#x", tt.alg, tt.seed)
	}
}

func TestIndexStaysInRange(t *testing.T) {
	src, err := New(DefaultAlgorithm, 42)
	require.NoError(t, err)
	for n := 1; n < 200; n++ {
		v := Index(src, n)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, n)
	}
}
