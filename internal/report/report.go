// Package report substitutes raffle winners into a text template.
package report

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
)

//go:embed templates/default.txt
var defaultTemplate string

// DefaultTemplate returns the built-in report template. It holds one token
// per default tier slot.
func DefaultTemplate() string {
	return defaultTemplate
}

// Layout names the placeholder tokens and how identifiers are rendered.
type Layout struct {
	GrandPrizeToken  string
	ConsolationToken string
	// VoucherTokenPrefix and VoucherTokenSuffix wrap a voucher group name,
	// e.g. "{{" + "GF10" + "}}".
	VoucherTokenPrefix string
	VoucherTokenSuffix string
	IDPrefix           string // single-winner slots
	ListPrefix         string // each id in a voucher list
	ListSeparator      string
}

// DefaultLayout matches the published report format.
func DefaultLayout() Layout {
	return Layout{
		GrandPrizeToken:    "{{ANY}}",
		ConsolationToken:   "{{NPW}}",
		VoucherTokenPrefix: "{{",
		VoucherTokenSuffix: "}}",
		IDPrefix:           "#",
		ListPrefix:         "",
		ListSeparator:      " ",
	}
}

// VoucherToken is the placeholder for the named voucher group.
func (l Layout) VoucherToken(group string) string {
	return l.VoucherTokenPrefix + group + l.VoucherTokenSuffix
}

// Fill replaces the first remaining grand-prize token with each grand-prize
// winner in draw order, then does the same for consolation winners, then
// replaces each voucher group token once with the group's list. Tokens with
// no matching winner are left in place and winners with no token are dropped.
func Fill(template string, res *raffle.Result, layout Layout) string {
	out := template
	for _, id := range res.GrandPrize {
		out = replaceFirst(out, layout.GrandPrizeToken, layout.IDPrefix+formatID(id))
	}
	for _, id := range res.Consolation {
		out = replaceFirst(out, layout.ConsolationToken, layout.IDPrefix+formatID(id))
	}
	for _, g := range res.Vouchers {
		out = replaceFirst(out, layout.VoucherToken(g.Name), joinIDs(g.Winners, layout))
	}
	return out
}

func replaceFirst(s, token, value string) string {
	if token == "" {
		return s
	}
	return strings.Replace(s, token, value, 1)
}

func formatID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

func joinIDs(ids []uint32, layout Layout) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteString(layout.ListSeparator)
		}
		b.WriteString(layout.ListPrefix)
		b.WriteString(formatID(id))
	}
	return b.String()
}
