// Package fonts resolves a document language to a typography profile: the
// display, body, and monospace fonts used by the layout composer and the
// PDF writer. Resolution fails closed — a language whose script the
// registered assets cannot render is an error, never a blank glyph.
package fonts

import (
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/wenzhi/invoicekit/invoice"
)

// Role names one of the three font slots of a profile.
type Role string

const (
	// RoleDisplay is used for the document title and section headings.
	RoleDisplay Role = "display"
	// RoleBody is used for running text and must cover every code point
	// of the document's party and line-item text.
	RoleBody Role = "body"
	// RoleMono is used for all numeric fields (quantities, amounts, tax
	// identifiers, dates) so table columns stay aligned in every language.
	RoleMono Role = "mono"
)

// Descriptor carries the metrics the writer embeds alongside a TrueType
// font program. All values are in 1/1000 em.
type Descriptor struct {
	FontName    string
	Flags       int
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	CapHeight   float64
	StemV       float64
	BBox        [4]float64
}

type glyphRec struct {
	gid   uint16
	width int // 1/1000 em
	ok    bool
}

// Font is a resolved font resource. Core fonts carry built-in width tables
// and are referenced by name in the output; TrueType fonts carry the parsed
// program and are embedded.
type Font struct {
	BaseFont   string
	Subtype    string // "Type1" or "Type0"
	Data       []byte // raw TrueType program, Type0 only
	Descriptor *Descriptor
	// DefaultWidth is the advance assumed for glyphs without a width entry.
	DefaultWidth int

	core *coreMetrics

	sf    *sfnt.Font
	units sfnt.Units

	mu    sync.Mutex
	buf   sfnt.Buffer
	cache map[rune]glyphRec
}

// Embedded reports whether the font program is carried in the output.
func (f *Font) Embedded() bool { return f.Subtype == "Type0" }

// Glyph returns the glyph index and advance width (1/1000 em) for r, and
// whether the font can render it. Safe for concurrent use.
func (f *Font) Glyph(r rune) (gid uint16, width int, ok bool) {
	if f.core != nil {
		b, encodable := winAnsiByte(r)
		if !encodable {
			return 0, f.DefaultWidth, false
		}
		return uint16(b), f.core.width(b), true
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, hit := f.cache[r]; hit {
		return rec.gid, rec.width, rec.ok
	}
	rec := f.lookupLocked(r)
	if f.cache == nil {
		f.cache = make(map[rune]glyphRec)
	}
	f.cache[r] = rec
	return rec.gid, rec.width, rec.ok
}

func (f *Font) lookupLocked(r rune) glyphRec {
	idx, err := f.sf.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return glyphRec{width: f.DefaultWidth}
	}
	ppem := fixed.Int26_6(f.units << 6)
	adv, err := f.sf.GlyphAdvance(&f.buf, idx, ppem, xfont.HintingNone)
	w := f.DefaultWidth
	if err == nil {
		w = int(scaleToEm(adv, f.units) + 0.5)
	}
	return glyphRec{gid: uint16(idx), width: w, ok: true}
}

// Covers reports whether the font renders r.
func (f *Font) Covers(r rune) bool {
	_, _, ok := f.Glyph(r)
	return ok
}

// TextWidth measures s at the given size in points.
func (f *Font) TextWidth(s string, size float64) float64 {
	total := 0
	for _, r := range s {
		_, w, _ := f.Glyph(r)
		total += w
	}
	return float64(total) / 1000.0 * size
}

// Profile binds the three font roles for one document language.
type Profile struct {
	lang  invoice.Language
	fonts map[Role]*Font
}

// Font returns the font bound to role.
func (p *Profile) Font(role Role) *Font { return p.fonts[role] }

// Measure returns the width of s in points when set in role at size.
func (p *Profile) Measure(role Role, s string, size float64) float64 {
	f := p.fonts[role]
	if f == nil {
		return 0
	}
	return f.TextWidth(s, size)
}

// scaleToEm converts a fixed-point value at ppem == unitsPerEm into
// 1/1000 em units.
func scaleToEm(val fixed.Int26_6, units sfnt.Units) float64 {
	return float64(val) * 1000.0 / (64.0 * float64(units))
}
