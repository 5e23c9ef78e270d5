package raffle

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Manifest is the audit record published next to a report.
type Manifest struct {
	Seed              string          `yaml:"seed"`
	Algorithm         string          `yaml:"algorithm"`
	ParticipantDigest string          `yaml:"participant_digest"`
	Participants      int             `yaml:"participants"`
	Tickets           int             `yaml:"tickets"`
	TicketsDrawn      int             `yaml:"tickets_drawn"`
	TicketsBurned     int             `yaml:"tickets_burned"`
	TicketsSkipped    int             `yaml:"tickets_skipped"`
	GrandPrize        []uint32        `yaml:"grand_prize"`
	Consolation       []uint32        `yaml:"consolation"`
	Vouchers          []ManifestGroup `yaml:"vouchers"`
}

// ManifestGroup is a voucher group inside a manifest.
type ManifestGroup struct {
	Name    string   `yaml:"name"`
	Winners []uint32 `yaml:"winners,flow"`
}

// NewManifest captures a result together with its inputs.
func NewManifest(seed uint64, alg, digest string, res *Result) *Manifest {
	m := &Manifest{
		Seed:              FormatSeed(seed),
		Algorithm:         alg,
		ParticipantDigest: digest,
		Participants:      res.Stats.Participants,
		Tickets:           res.Stats.TotalTickets,
		TicketsDrawn:      res.Stats.Drawn,
		TicketsBurned:     res.Stats.Burned,
		TicketsSkipped:    res.Stats.Skipped,
		GrandPrize:        res.GrandPrize,
		Consolation:       res.Consolation,
	}
	for _, g := range res.Vouchers {
		m.Vouchers = append(m.Vouchers, ManifestGroup{Name: g.Name, Winners: g.Winners})
	}
	return m
}

// WriteYAML encodes the manifest.
func (m *Manifest) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return enc.Close()
}

// ReadManifest decodes a manifest written by WriteYAML.
func ReadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// Mismatches compares the winners in m with a freshly drawn result and
// describes every difference. An empty slice means the draw was reproduced.
func (m *Manifest) Mismatches(digest string, res *Result) []string {
	var diffs []string
	if m.ParticipantDigest != digest {
		diffs = append(diffs, fmt.Sprintf("participant digest %s, manifest has %s", digest, m.ParticipantDigest))
	}
	if !equalIDs(m.GrandPrize, res.GrandPrize) {
		diffs = append(diffs, "grand prize winners differ")
	}
	if !equalIDs(m.Consolation, res.Consolation) {
		diffs = append(diffs, "consolation winners differ")
	}
	if len(m.Vouchers) != len(res.Vouchers) {
		return append(diffs, fmt.Sprintf("%d voucher groups, manifest has %d", len(res.Vouchers), len(m.Vouchers)))
	}
	for i, g := range res.Vouchers {
		if m.Vouchers[i].Name != g.Name || !equalIDs(m.Vouchers[i].Winners, g.Winners) {
			diffs = append(diffs, fmt.Sprintf("voucher group %s differs", g.Name))
		}
	}
	return diffs
}

func equalIDs(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
