package layout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wenzhi/invoicekit/fonts"
)

// formatRate renders a fractional tax rate as a percentage, e.g. 0.05 → "5%".
func formatRate(rate decimal.Decimal) string {
	return rate.Shift(2).String() + "%"
}

// wrapText breaks s into lines no wider than maxW points. Words are kept
// whole when possible; a word wider than the line (typical for Chinese
// text, which has no spaces) is broken per rune.
func wrapText(p *fonts.Profile, role fonts.Role, size, maxW float64, s string) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curW := 0.0
	spaceW := p.Measure(role, " ", size)

	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
	}

	appendWord := func(word string, w float64) {
		if cur.Len() > 0 {
			cur.WriteByte(' ')
			curW += spaceW
		}
		cur.WriteString(word)
		curW += w
	}

	for _, word := range words {
		w := p.Measure(role, word, size)
		need := w
		if cur.Len() > 0 {
			need += spaceW
		}
		if curW+need <= maxW {
			appendWord(word, w)
			continue
		}
		flush()
		if w <= maxW {
			appendWord(word, w)
			continue
		}
		// Per-rune wrapping for oversized words.
		for _, r := range word {
			rw := p.Measure(role, string(r), size)
			if curW+rw > maxW {
				flush()
			}
			cur.WriteString(string(r))
			curW += rw
		}
	}
	flush()
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
