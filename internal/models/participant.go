package models

import "time"

// Participant is one row of the raffle input. It is never mutated once loaded.
type Participant struct {
	ID         uint32    `bson:"participantId" json:"id"`
	Tickets    uint32    `bson:"tickets" json:"tickets"`
	Submitted  bool      `bson:"submitted" json:"submitted"`
	WonPrize   bool      `bson:"wonPrize" json:"wonPrize"`
	ImportedAt time.Time `bson:"importedAt,omitempty" json:"importedAt,omitempty"`
}

// EligibleForConsolation reports whether the participant may win a
// consolation prize: they submitted and have not won before.
func (p Participant) EligibleForConsolation() bool {
	return p.Submitted && !p.WonPrize
}
