package fonts

// Built-in Type1 core fonts. These ship with every PDF viewer, so only
// their width tables are needed here; the programs are never embedded.
// Widths are the standard Adobe AFM values in 1/1000 em for the printable
// ASCII range; everything else falls back to the font's default width.

type coreMetrics struct {
	// widths[i] is the advance of character code 32+i.
	widths       [95]int
	defaultWidth int
}

func (m *coreMetrics) width(code byte) int {
	if code >= 32 && code <= 126 {
		return m.widths[code-32]
	}
	return m.defaultWidth
}

var helveticaMetrics = &coreMetrics{
	defaultWidth: 556,
	widths: [95]int{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
		1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
		333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
		556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
	},
}

var helveticaBoldMetrics = &coreMetrics{
	defaultWidth: 556,
	widths: [95]int{
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
		975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
		333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
		611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
	},
}

var courierMetrics = func() *coreMetrics {
	m := &coreMetrics{defaultWidth: 600}
	for i := range m.widths {
		m.widths[i] = 600
	}
	return m
}()

func coreFont(base string, m *coreMetrics) *Font {
	return &Font{
		BaseFont:     base,
		Subtype:      "Type1",
		DefaultWidth: m.defaultWidth,
		core:         m,
	}
}

// Helvetica, HelveticaBold, and Courier construct the built-in Latin triad.
func Helvetica() *Font     { return coreFont("Helvetica", helveticaMetrics) }
func HelveticaBold() *Font { return coreFont("Helvetica-Bold", helveticaBoldMetrics) }
func Courier() *Font       { return coreFont("Courier", courierMetrics) }

// winAnsiExtra maps the runes of the WinAnsi 0x80–0x9F window.
var winAnsiExtra = map[rune]byte{
	'€': 0x80, // euro sign
	'‚': 0x82,
	'ƒ': 0x83,
	'„': 0x84,
	'…': 0x85,
	'†': 0x86,
	'‡': 0x87,
	'ˆ': 0x88,
	'‰': 0x89,
	'Š': 0x8A,
	'‹': 0x8B,
	'Œ': 0x8C,
	'Ž': 0x8E,
	'‘': 0x91,
	'’': 0x92,
	'“': 0x93,
	'”': 0x94,
	'•': 0x95,
	'–': 0x96,
	'—': 0x97,
	'˜': 0x98,
	'™': 0x99,
	'š': 0x9A,
	'›': 0x9B,
	'œ': 0x9C,
	'ž': 0x9E,
	'Ÿ': 0x9F,
}

// winAnsiByte maps r to its WinAnsiEncoding code point.
func winAnsiByte(r rune) (byte, bool) {
	switch {
	case r >= 0x20 && r <= 0x7E:
		return byte(r), true
	case r >= 0xA0 && r <= 0xFF:
		return byte(r), true
	}
	b, ok := winAnsiExtra[r]
	return b, ok
}
