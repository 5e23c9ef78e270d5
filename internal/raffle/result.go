package raffle

import "fmt"

// Stats records how the pool was consumed during a draw.
type Stats struct {
	Participants int
	TotalTickets int
	Drawn        int // tickets popped from either queue
	Burned       int // tickets whose owner had already won
	Skipped      int // consolation tickets routed to the skipped queue
}

// VoucherGroup holds one named share of the voucher winners in draw order.
type VoucherGroup struct {
	Name    string
	Winners []uint32
}

// Result is the outcome of a complete draw. The groups are disjoint and each
// lists winners in the order they were drawn.
type Result struct {
	GrandPrize  []uint32
	Consolation []uint32
	Vouchers    []VoucherGroup
	Stats       Stats
}

// VoucherWinners flattens the voucher groups in draw order.
func (r *Result) VoucherWinners() []uint32 {
	var ids []uint32
	for _, g := range r.Vouchers {
		ids = append(ids, g.Winners...)
	}
	return ids
}

// Winners lists every winner, grand prizes first, then consolation, then vouchers.
func (r *Result) Winners() []uint32 {
	ids := make([]uint32, 0, len(r.GrandPrize)+len(r.Consolation))
	ids = append(ids, r.GrandPrize...)
	ids = append(ids, r.Consolation...)
	return append(ids, r.VoucherWinners()...)
}

// verify checks the result against the tier table and the winners set built
// while drawing.
func (r *Result) verify(tiers Tiers, winners map[uint32]struct{}) error {
	if len(r.GrandPrize) != tiers.GrandPrizes {
		return fmt.Errorf("%w: %d grand prize winners, want %d", ErrInvariantViolation, len(r.GrandPrize), tiers.GrandPrizes)
	}
	if len(r.Consolation) != tiers.Consolation {
		return fmt.Errorf("%w: %d consolation winners, want %d", ErrInvariantViolation, len(r.Consolation), tiers.Consolation)
	}
	for i, g := range r.Vouchers {
		if len(g.Winners) != tiers.VoucherGroups[i].Count {
			return fmt.Errorf("%w: voucher group %s has %d winners, want %d", ErrInvariantViolation, g.Name, len(g.Winners), tiers.VoucherGroups[i].Count)
		}
	}

	seen := make(map[uint32]struct{}, len(winners))
	for _, id := range r.Winners() {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: participant #%d won more than once", ErrInvariantViolation, id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != len(winners) || len(seen) != tiers.Total() {
		return fmt.Errorf("%w: %d distinct winners, winners set holds %d, want %d", ErrInvariantViolation, len(seen), len(winners), tiers.Total())
	}
	return nil
}
