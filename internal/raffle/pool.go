package raffle

import "github.com/ArowuTest/bridgetunes-raffle/internal/models"

// Ticket is one weighted entry in the pool. Tickets of the same owner are
// interchangeable.
type Ticket struct {
	Owner *models.Participant
}

// BuildPool expands every participant into one ticket per ticket held,
// keeping input order. A participant with zero tickets contributes nothing.
func BuildPool(participants []models.Participant) []Ticket {
	total := 0
	for i := range participants {
		total += int(participants[i].Tickets)
	}

	pool := make([]Ticket, 0, total)
	for i := range participants {
		p := &participants[i]
		for n := uint32(0); n < p.Tickets; n++ {
			pool = append(pool, Ticket{Owner: p})
		}
	}
	return pool
}
