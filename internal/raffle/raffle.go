// Package raffle draws tiered winners from a weighted, seeded ticket pool.
//
// The pipeline runs strictly forward: BuildPool expands participants into
// tickets, Shuffle permutes them with a named deterministic generator and
// Draw walks the permuted pool tier by tier. Identical participants, seed
// and algorithm always reproduce identical winners.
package raffle

import (
	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/prng"
)

// Options configures one run.
type Options struct {
	Seed      uint64
	Algorithm prng.Algorithm
	Tiers     Tiers
}

// Run builds the pool, shuffles it and draws every tier.
func Run(participants []models.Participant, opts Options) (*Result, error) {
	alg := opts.Algorithm
	if alg == "" {
		alg = prng.DefaultAlgorithm
	}

	pool := BuildPool(participants)
	if err := Shuffle(pool, opts.Seed, alg); err != nil {
		return nil, err
	}
	res, err := Draw(pool, opts.Tiers)
	if err != nil {
		return nil, err
	}
	res.Stats.Participants = len(participants)
	return res, nil
}
