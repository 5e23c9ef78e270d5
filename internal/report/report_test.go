package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
)

func TestFillGrandPrizeSlotsInDrawOrder(t *testing.T) {
	res := &raffle.Result{GrandPrize: []uint32{7, 2, 9}}

	got := Fill("W1:{{ANY}} W2:{{ANY}} W3:{{ANY}}", res, DefaultLayout())

	assert.Equal(t, "W1:#7 W2:#2 W3:#9", got)
}

func TestFillAllTiers(t *testing.T) {
	res := &raffle.Result{
		GrandPrize:  []uint32{1},
		Consolation: []uint32{4, 5},
		Vouchers: []raffle.VoucherGroup{
			{Name: "GF10", Winners: []uint32{2, 3}},
			{Name: "FP5", Winners: []uint32{6}},
		},
	}
	tmpl := "A={{ANY}}\nB={{NPW}},{{NPW}}\nGF={{GF10}}\nFP={{FP5}}\n"

	got := Fill(tmpl, res, DefaultLayout())

	assert.Equal(t, "A=#1\nB=#4,#5\nGF=2 3\nFP=6\n", got)
}

func TestFillLeavesUnmatchedText(t *testing.T) {
	res := &raffle.Result{
		GrandPrize: []uint32{1, 2},
		Vouchers:   []raffle.VoucherGroup{{Name: "GF10", Winners: []uint32{3}}},
	}

	// one grand prize slot too few, a consolation slot with nobody to fill
	// it, and no GF10 token at all
	got := Fill("{{ANY}} {{NPW}} {ANY} {{FP5}}", res, DefaultLayout())

	assert.Equal(t, "#1 {{NPW}} {ANY} {{FP5}}", got)
}

func TestFillCustomLayout(t *testing.T) {
	layout := Layout{
		GrandPrizeToken:    "<win>",
		ConsolationToken:   "<npw>",
		VoucherTokenPrefix: "<v:",
		VoucherTokenSuffix: ">",
		IDPrefix:           "No.",
		ListPrefix:         "#",
		ListSeparator:      ", ",
	}
	res := &raffle.Result{
		GrandPrize:  []uint32{10},
		Consolation: []uint32{20},
		Vouchers:    []raffle.VoucherGroup{{Name: "X", Winners: []uint32{30, 31}}},
	}

	got := Fill("<win>|<npw>|<v:X>", res, layout)

	assert.Equal(t, "No.10|No.20|#30, #31", got)
}

func TestFillEmptyTokenIsIgnored(t *testing.T) {
	layout := DefaultLayout()
	layout.GrandPrizeToken = ""

	got := Fill("x", &raffle.Result{GrandPrize: []uint32{1}}, layout)

	assert.Equal(t, "x", got)
}

func TestDefaultTemplateFitsDefaultTiers(t *testing.T) {
	tiers := raffle.DefaultTiers()
	counts := Count(DefaultTemplate(), tiers, DefaultLayout())

	assert.Equal(t, 3, counts.GrandPrize)
	assert.Equal(t, 19, counts.Consolation)
	assert.Equal(t, map[string]int{"GF10": 1, "FP5": 1}, counts.Vouchers)
	assert.Empty(t, counts.Mismatches(tiers))
}

func TestCountMismatches(t *testing.T) {
	tiers := raffle.Tiers{
		GrandPrizes:   2,
		Consolation:   1,
		VoucherGroups: []raffle.VoucherGroupSpec{{Name: "A", Count: 1}, {Name: "B", Count: 1}},
	}
	counts := Count("{{ANY}} {{NPW}} {{A}} {{A}}", tiers, DefaultLayout())

	assert.Len(t, counts.Mismatches(tiers), 3)
}

func TestFillDefaultTemplateEndToEnd(t *testing.T) {
	participants := make([]models.Participant, 500)
	for i := range participants {
		participants[i] = models.Participant{ID: uint32(i + 1), Tickets: 2, Submitted: true}
	}
	res, err := raffle.Run(participants, raffle.Options{Seed: 0x2a, Tiers: raffle.DefaultTiers()})
	require.NoError(t, err)

	out := Fill(DefaultTemplate(), res, DefaultLayout())

	assert.NotContains(t, out, "{{")
	assert.Equal(t, strings.Count(DefaultTemplate(), "\n"), strings.Count(out, "\n"))
	assert.Contains(t, out, "#"+formatID(res.GrandPrize[0]))
}
