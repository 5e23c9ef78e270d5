package raffle

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
)

// ParticipantDigest is the SHA-256 of the participant rows in input order,
// one "id,tickets,submitted,wonPrize" line each. Publishing it with the seed
// lets anyone confirm they are replaying the same input.
func ParticipantDigest(participants []models.Participant) string {
	h := sha256.New()
	var line []byte
	for i := range participants {
		p := &participants[i]
		line = line[:0]
		line = strconv.AppendUint(line, uint64(p.ID), 10)
		line = append(line, ',')
		line = strconv.AppendUint(line, uint64(p.Tickets), 10)
		line = append(line, ',')
		line = strconv.AppendBool(line, p.Submitted)
		line = append(line, ',')
		line = strconv.AppendBool(line, p.WonPrize)
		line = append(line, '\n')
		h.Write(line)
	}
	return hex.EncodeToString(h.Sum(nil))
}
