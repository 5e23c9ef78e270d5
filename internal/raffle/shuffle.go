package raffle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ArowuTest/bridgetunes-raffle/internal/prng"
)

// ParseSeed parses a hexadecimal 64-bit seed. A leading 0x is accepted.
func ParseSeed(s string) (uint64, error) {
	digits := strings.TrimSpace(s)
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	if digits == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidSeed)
	}
	seed, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidSeed, s, err)
	}
	return seed, nil
}

// FormatSeed renders a seed the way it is published, e.g. 0x1f.
func FormatSeed(seed uint64) string {
	return "0x" + strconv.FormatUint(seed, 16)
}

// Shuffle permutes the pool in place using the named generator seeded from
// seed. The same pool, seed and algorithm always give the same order.
func Shuffle(pool []Ticket, seed uint64, alg prng.Algorithm) error {
	src, err := prng.New(alg, seed)
	if err != nil {
		return err
	}
	prng.Shuffle(src, len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return nil
}
