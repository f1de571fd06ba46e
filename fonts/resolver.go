package fonts

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wenzhi/invoicekit/invoice"
	"github.com/wenzhi/invoicekit/observability"
)

// ErrMissingGlyphSupport is wrapped by every coverage failure. An invoice
// with unrenderable characters is a compliance defect, so the resolver
// refuses to proceed instead of degrading output.
var ErrMissingGlyphSupport = errors.New("missing glyph support")

// MissingGlyphError reports the language and, when known, the first code
// point the resolved assets cannot render.
type MissingGlyphError struct {
	Language invoice.Language
	Rune     rune
	Detail   string
}

func (e *MissingGlyphError) Error() string {
	if e.Rune != 0 {
		return fmt.Sprintf("missing glyph support for %q: no glyph for %q", e.Language, e.Rune)
	}
	return fmt.Sprintf("missing glyph support for %q: %s", e.Language, e.Detail)
}

func (e *MissingGlyphError) Unwrap() error { return ErrMissingGlyphSupport }

type asset struct {
	name       string
	font       *Font
	hanCapable bool
}

// Registry holds the font assets available to the resolver. It is built
// once at startup and treated as immutable afterwards; the resolver's
// per-language cache relies on that.
type Registry struct {
	assets []asset
}

func NewRegistry() *Registry { return &Registry{} }

// RegisterTrueType parses and registers a TrueType/OpenType asset. Whether
// the asset can serve Chinese text is probed here, once, so resolution
// never has to re-shape the program.
func (r *Registry) RegisterTrueType(name string, data []byte) error {
	f, err := LoadTrueType(name, data)
	if err != nil {
		return err
	}
	missing, err := probeCoverage(data, hanProbe, invoice.LangChineseTraditional.Tag())
	if err != nil {
		return fmt.Errorf("truetype font %q: coverage probe: %w", name, err)
	}
	r.assets = append(r.assets, asset{
		name:       name,
		font:       f,
		hanCapable: len(missing) == 0,
	})
	return nil
}

// Resolver maps a document language to a typography profile. Profiles are
// memoized per language; concurrent first requests may race to populate
// the cache but always converge on an identical profile, since resolution
// is a pure function of the immutable registry.
type Resolver struct {
	reg      *Registry
	log      observability.Logger
	profiles sync.Map // invoice.Language -> *Profile
}

func NewResolver(reg *Registry, log observability.Logger) *Resolver {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Resolver{reg: reg, log: log}
}

// Resolve returns the profile for lang, memoizing successful resolutions
// process-wide.
func (r *Resolver) Resolve(lang invoice.Language) (*Profile, error) {
	if v, ok := r.profiles.Load(lang); ok {
		return v.(*Profile), nil
	}
	p, err := r.resolve(lang)
	if err != nil {
		return nil, err
	}
	actual, _ := r.profiles.LoadOrStore(lang, p)
	return actual.(*Profile), nil
}

func (r *Resolver) resolve(lang invoice.Language) (*Profile, error) {
	if !lang.Known() {
		return nil, fmt.Errorf("unknown language %q", lang)
	}

	if !lang.NeedsHan() {
		r.log.Debug("resolved core latin triad", observability.String("language", string(lang)))
		return &Profile{
			lang: lang,
			fonts: map[Role]*Font{
				RoleDisplay: HelveticaBold(),
				RoleBody:    Helvetica(),
				RoleMono:    Courier(),
			},
		}, nil
	}

	for _, a := range r.reg.assets {
		if !a.hanCapable {
			continue
		}
		r.log.Debug("resolved truetype asset",
			observability.String("language", string(lang)),
			observability.String("asset", a.name))
		return &Profile{
			lang: lang,
			fonts: map[Role]*Font{
				RoleDisplay: a.font,
				RoleBody:    a.font,
				RoleMono:    Courier(),
			},
		}, nil
	}
	return nil, &MissingGlyphError{
		Language: lang,
		Detail:   "no registered font asset covers Traditional Chinese",
	}
}

// EnsureRenderableIn verifies that the font bound to role covers every
// code point of text, failing closed on the first gap. The roles are
// checked independently: the mono font renders numbers, identifiers, and
// bank details in every language, and its coverage is narrower than a CJK
// body font's.
func (p *Profile) EnsureRenderableIn(role Role, text string) error {
	f := p.fonts[role]
	for _, r := range text {
		switch r {
		case '\n', '\r', '\t':
			continue
		}
		if !f.Covers(r) {
			return &MissingGlyphError{Language: p.lang, Rune: r}
		}
	}
	return nil
}

// EnsureRenderable verifies text against the body font.
func (p *Profile) EnsureRenderable(text string) error {
	return p.EnsureRenderableIn(RoleBody, text)
}
