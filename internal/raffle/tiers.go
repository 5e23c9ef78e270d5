package raffle

import "fmt"

// VoucherGroupSpec is a named share of the voucher tier.
type VoucherGroupSpec struct {
	Name  string
	Count int
}

// Tiers fixes how many distinct winners each tier needs.
type Tiers struct {
	GrandPrizes   int
	Consolation   int
	VoucherGroups []VoucherGroupSpec
}

// DefaultTiers is the prize table of the published draw: 3 grand prizes,
// 19 consolation prizes and 405 vouchers split 49/356.
func DefaultTiers() Tiers {
	return Tiers{
		GrandPrizes: 3,
		Consolation: 19,
		VoucherGroups: []VoucherGroupSpec{
			{Name: "GF10", Count: 49},
			{Name: "FP5", Count: 356},
		},
	}
}

// Vouchers is the total voucher count over all groups.
func (t Tiers) Vouchers() int {
	n := 0
	for _, g := range t.VoucherGroups {
		n += g.Count
	}
	return n
}

// Total is the number of distinct winners a complete draw produces.
func (t Tiers) Total() int {
	return t.GrandPrizes + t.Consolation + t.Vouchers()
}

// Validate rejects negative counts and unnamed or duplicate voucher groups.
func (t Tiers) Validate() error {
	if t.GrandPrizes < 0 || t.Consolation < 0 {
		return fmt.Errorf("%w: negative prize count", ErrInvalidTiers)
	}
	seen := make(map[string]bool, len(t.VoucherGroups))
	for _, g := range t.VoucherGroups {
		if g.Name == "" {
			return fmt.Errorf("%w: voucher group without a name", ErrInvalidTiers)
		}
		if g.Count < 0 {
			return fmt.Errorf("%w: voucher group %s has negative count", ErrInvalidTiers, g.Name)
		}
		if seen[g.Name] {
			return fmt.Errorf("%w: duplicate voucher group %s", ErrInvalidTiers, g.Name)
		}
		seen[g.Name] = true
	}
	return nil
}
