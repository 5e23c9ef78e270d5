package raffle

import (
	"fmt"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
)

// Tier names used in errors and logs.
const (
	TierGrandPrize  = "grand prize"
	TierConsolation = "consolation"
	TierVoucher     = "voucher"
)

// ticketQueue is consumed from the front; popped tickets are gone for good.
type ticketQueue struct {
	items []Ticket
	head  int
}

func (q *ticketQueue) pop() (Ticket, bool) {
	if q.head >= len(q.items) {
		return Ticket{}, false
	}
	t := q.items[q.head]
	q.head++
	return t, true
}

func (q *ticketQueue) push(t Ticket) {
	q.items = append(q.items, t)
}

func (q *ticketQueue) len() int {
	return len(q.items) - q.head
}

// drawState is owned by a single Draw call.
type drawState struct {
	main    *ticketQueue
	skipped *ticketQueue
	winners map[uint32]struct{}
	stats   Stats
}

func anyone(*models.Participant) bool { return true }

func consolationEligible(p *models.Participant) bool { return p.EligibleForConsolation() }

// next pops tickets from src until it finds an owner who has not won yet and
// passes eligible. Tickets of existing winners are burned. Owners failing
// eligible are not marked; their ticket moves to the skipped queue. The
// accepted owner is added to the winners set.
func (s *drawState) next(src *ticketQueue, eligible func(*models.Participant) bool) (*models.Participant, bool) {
	for {
		t, ok := src.pop()
		if !ok {
			return nil, false
		}
		s.stats.Drawn++

		p := t.Owner
		if _, won := s.winners[p.ID]; won {
			s.stats.Burned++
			continue
		}
		if !eligible(p) {
			s.skipped.push(t)
			s.stats.Skipped++
			continue
		}
		s.winners[p.ID] = struct{}{}
		return p, true
	}
}

// fill draws n winners from src.
func (s *drawState) fill(tier string, src *ticketQueue, n int, eligible func(*models.Participant) bool) ([]uint32, error) {
	ids := make([]uint32, 0, n)
	for len(ids) < n {
		p, ok := s.next(src, eligible)
		if !ok {
			return nil, &TierError{Tier: tier, Required: n, Drawn: len(ids), Err: ErrPoolExhausted}
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// fillVouchers replays the skipped queue before touching the main pool. The
// consolation eligibility filter does not apply here.
func (s *drawState) fillVouchers(n int) ([]uint32, error) {
	ids := make([]uint32, 0, n)
	for len(ids) < n && s.skipped.len() > 0 {
		p, ok := s.next(s.skipped, anyone)
		if !ok {
			break
		}
		ids = append(ids, p.ID)
	}
	for len(ids) < n {
		p, ok := s.next(s.main, anyone)
		if !ok {
			return nil, &TierError{Tier: TierVoucher, Required: n, Drawn: len(ids), Err: ErrPoolExhausted}
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// Draw pulls winners tier by tier from an already shuffled pool: grand
// prizes, then consolation prizes, then vouchers. Any tier that cannot be
// filled aborts the whole draw.
func Draw(pool []Ticket, tiers Tiers) (*Result, error) {
	if err := tiers.Validate(); err != nil {
		return nil, err
	}

	s := &drawState{
		main:    &ticketQueue{items: pool},
		skipped: &ticketQueue{},
		winners: make(map[uint32]struct{}, tiers.Total()),
		stats:   Stats{TotalTickets: len(pool)},
	}

	grand, err := s.fill(TierGrandPrize, s.main, tiers.GrandPrizes, anyone)
	if err != nil {
		return nil, err
	}
	consolation, err := s.fill(TierConsolation, s.main, tiers.Consolation, consolationEligible)
	if err != nil {
		return nil, err
	}
	vouchers, err := s.fillVouchers(tiers.Vouchers())
	if err != nil {
		return nil, err
	}

	res := &Result{
		GrandPrize:  grand,
		Consolation: consolation,
		Vouchers:    make([]VoucherGroup, 0, len(tiers.VoucherGroups)),
		Stats:       s.stats,
	}
	off := 0
	for _, g := range tiers.VoucherGroups {
		res.Vouchers = append(res.Vouchers, VoucherGroup{Name: g.Name, Winners: vouchers[off : off+g.Count]})
		off += g.Count
	}

	if err := res.verify(tiers, s.winners); err != nil {
		return nil, fmt.Errorf("draw produced an inconsistent result: %w", err)
	}
	return res, nil
}
