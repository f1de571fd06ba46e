// Package layout composes a validated invoice and a typography profile into
// a sequence of fixed-geometry pages. Pagination is the composer's job
// alone: a block never exceeds the remaining content height of its page,
// the line-item table header repeats after every break, and the totals
// block moves whole to a new page rather than splitting.
package layout

import (
	"errors"
	"fmt"

	"github.com/wenzhi/invoicekit/fonts"
	"github.com/wenzhi/invoicekit/invoice"
	"github.com/wenzhi/invoicekit/observability"
)

// PageSize is a paper geometry in points (1" = 72pt).
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	A4     = PageSize{Name: "A4", Width: 595.28, Height: 841.89}
	Letter = PageSize{Name: "Letter", Width: 612, Height: 792}
)

// Margins defines the page margins in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// BlockKind tags a composed block for the preview tree and for tests.
type BlockKind string

const (
	BlockHeader    BlockKind = "header"
	BlockParties   BlockKind = "parties"
	BlockTableHead BlockKind = "table-head"
	BlockRow       BlockKind = "row"
	BlockTotals    BlockKind = "totals"
	BlockNotes     BlockKind = "notes"
)

// Text is one positioned run of text. Y is the baseline in PDF coordinates
// (origin bottom-left).
type Text struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Value string     `json:"value"`
	Role  fonts.Role `json:"role"`
	Size  float64    `json:"size"`
}

// Rule is a horizontal or vertical stroke.
type Rule struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
}

// Block is a group of primitives placed together. Top is the absolute Y of
// the block's upper edge; Height is its extent downwards.
type Block struct {
	Kind   BlockKind `json:"kind"`
	Top    float64   `json:"top"`
	Height float64   `json:"height"`
	Texts  []Text    `json:"texts"`
	Rules  []Rule    `json:"rules,omitempty"`
}

// Page is one composed page.
type Page struct {
	Size   PageSize `json:"size"`
	Blocks []Block  `json:"blocks"`
}

// ErrInvalidLineItem is wrapped by every line-item composition failure.
// Rows are never skipped silently; a row that cannot be rendered fails the
// whole document, because a dropped row corrupts the financial record.
var ErrInvalidLineItem = errors.New("invalid line item")

// LineItemError names the offending line item by index.
type LineItemError struct {
	Index int
	Msg   string
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("line item %d: %s", e.Index, e.Msg)
}

func (e *LineItemError) Unwrap() error { return ErrInvalidLineItem }

// Type sizes in points.
const (
	titleSize   = 18
	sectionSize = 11
	bodySize    = 10
	grandSize   = 12

	lineHeightFactor = 1.3
	rowPadding       = 4
	blockGap         = 14
)

func lineH(size float64) float64 { return size * lineHeightFactor }

// Composer arranges invoices into pages. It is stateless across Compose
// calls and safe for concurrent use.
type Composer struct {
	size    PageSize
	margins Margins
	log     observability.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithPageSize sets the page geometry. Default is A4.
func WithPageSize(size PageSize) Option {
	return func(c *Composer) { c.size = size }
}

// WithMargins sets the page margins. Default is 50pt on every side.
func WithMargins(m Margins) Option {
	return func(c *Composer) { c.margins = m }
}

// WithLogger injects a logger.
func WithLogger(log observability.Logger) Option {
	return func(c *Composer) { c.log = log }
}

// NewComposer returns a composer with A4 geometry and 50pt margins.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		size:    A4,
		margins: Margins{Top: 50, Bottom: 50, Left: 50, Right: 50},
		log:     observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentHeight returns the usable height between the margins.
func (c *Composer) ContentHeight() float64 {
	return c.size.Height - c.margins.Top - c.margins.Bottom
}

func (c *Composer) contentWidth() float64 {
	return c.size.Width - c.margins.Left - c.margins.Right
}

// Compose lays out inv with profile. The invoice must already be validated;
// Compose still refuses rows whose description is blank, and fails closed
// if any role's font cannot render a run the document draws in that role.
func (c *Composer) Compose(inv *invoice.Invoice, profile *fonts.Profile) ([]*Page, error) {
	lbl := newLabels(inv)

	for i, it := range inv.LineItems {
		if it.Description.Empty() {
			return nil, &LineItemError{Index: i, Msg: "description must not be empty"}
		}
	}

	s := &composition{c: c, inv: inv, profile: profile, lbl: lbl}
	s.newPage()

	s.place(s.buildHeader())
	s.place(s.buildParties())

	s.place(s.buildTableHead())
	for i := range inv.LineItems {
		row := s.buildRow(i)
		if s.fits(row.Height) {
			s.place(row)
			continue
		}
		s.newPage()
		s.place(s.buildTableHead())
		if s.fits(row.Height) {
			s.place(row)
			continue
		}
		s.placeRowOverflow(i)
	}

	totals := s.buildTotals()
	if !s.fits(totals.Height) {
		s.newPage()
	}
	s.place(totals)

	if notes := s.buildNotes(); notes != nil {
		if !s.fits(notes.Height) {
			s.newPage()
		}
		s.place(*notes)
	}

	// Coverage is verified per role against the runs actually drawn: the
	// body font covering a code point says nothing about the mono font,
	// which renders numbers, identifiers, and bank details in every
	// language.
	for _, p := range s.pages {
		for _, b := range p.Blocks {
			for _, t := range b.Texts {
				if err := profile.EnsureRenderableIn(t.Role, t.Value); err != nil {
					return nil, err
				}
			}
		}
	}

	c.log.Debug("composed invoice",
		observability.String("number", inv.Number),
		observability.Int("pages", len(s.pages)),
		observability.Int("rows", len(inv.LineItems)))
	return s.pages, nil
}

// composition is the per-call cursor state, reset for every Compose.
type composition struct {
	c       *Composer
	inv     *invoice.Invoice
	profile *fonts.Profile
	lbl     labels

	pages []*Page
	cur   *Page
	y     float64 // next block top
}

func (s *composition) newPage() {
	p := &Page{Size: s.c.size}
	s.pages = append(s.pages, p)
	s.cur = p
	s.y = s.c.size.Height - s.c.margins.Top
}

func (s *composition) fits(h float64) bool {
	return s.y-h >= s.c.margins.Bottom
}

// place pins b at the current cursor, converting its relative offsets to
// absolute page coordinates.
func (s *composition) place(b Block) {
	top := s.y
	b.Top = top
	for i := range b.Texts {
		b.Texts[i].X += s.c.margins.Left
		b.Texts[i].Y = top - b.Texts[i].Y
	}
	for i := range b.Rules {
		b.Rules[i].X1 += s.c.margins.Left
		b.Rules[i].X2 += s.c.margins.Left
		b.Rules[i].Y1 = top - b.Rules[i].Y1
		b.Rules[i].Y2 = top - b.Rules[i].Y2
	}
	s.cur.Blocks = append(s.cur.Blocks, b)
	s.y = top - b.Height
}

// blockBuilder accumulates primitives in block-relative coordinates:
// X from the left margin, Y downward from the block top.
type blockBuilder struct {
	s  *composition
	b  Block
	dy float64
}

func (s *composition) newBlock(kind BlockKind) *blockBuilder {
	return &blockBuilder{s: s, b: Block{Kind: kind}}
}

// text places a run with its baseline one line-height below dy.
func (bb *blockBuilder) text(x float64, value string, role fonts.Role, size float64) {
	bb.b.Texts = append(bb.b.Texts, Text{
		X:     x,
		Y:     bb.dy + size, // baseline sits a cap-height below the top of the line box
		Value: value,
		Role:  role,
		Size:  size,
	})
}

// textRight right-aligns a run so it ends at x.
func (bb *blockBuilder) textRight(x float64, value string, role fonts.Role, size float64) {
	w := bb.s.profile.Measure(role, value, size)
	bb.text(x-w, value, role, size)
}

func (bb *blockBuilder) rule(x1, x2 float64, width float64) {
	bb.b.Rules = append(bb.b.Rules, Rule{X1: x1, Y1: bb.dy, X2: x2, Y2: bb.dy, Width: width})
}

func (bb *blockBuilder) advance(h float64) { bb.dy += h }

func (bb *blockBuilder) done() Block {
	bb.b.Height = bb.dy
	return bb.b
}
