package report

import (
	"fmt"
	"strings"

	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
)

// TokenCounts is how many placeholders of each kind a template holds.
type TokenCounts struct {
	GrandPrize  int
	Consolation int
	Vouchers    map[string]int
}

// Count tallies the placeholders for tiers in template.
func Count(template string, tiers raffle.Tiers, layout Layout) TokenCounts {
	c := TokenCounts{
		GrandPrize:  countToken(template, layout.GrandPrizeToken),
		Consolation: countToken(template, layout.ConsolationToken),
		Vouchers:    make(map[string]int, len(tiers.VoucherGroups)),
	}
	for _, g := range tiers.VoucherGroups {
		c.Vouchers[g.Name] = countToken(template, layout.VoucherToken(g.Name))
	}
	return c
}

func countToken(s, token string) int {
	if token == "" {
		return 0
	}
	return strings.Count(s, token)
}

// Mismatches describes every tier whose slot count differs from what the
// template can hold. Voucher groups expect exactly one token each.
func (c TokenCounts) Mismatches(tiers raffle.Tiers) []string {
	var out []string
	if c.GrandPrize != tiers.GrandPrizes {
		out = append(out, fmt.Sprintf("template has %d grand prize slots for %d winners", c.GrandPrize, tiers.GrandPrizes))
	}
	if c.Consolation != tiers.Consolation {
		out = append(out, fmt.Sprintf("template has %d consolation slots for %d winners", c.Consolation, tiers.Consolation))
	}
	for _, g := range tiers.VoucherGroups {
		if n := c.Vouchers[g.Name]; n != 1 {
			out = append(out, fmt.Sprintf("template has %d %s tokens, want 1", n, g.Name))
		}
	}
	return out
}
