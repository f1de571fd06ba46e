// Package invoicekit generates bilingual invoice documents. It wires the
// pipeline end to end: contract validation, typography resolution, page
// composition, and deterministic PDF or preview output.
//
// The zero-configuration path covers English invoices with the built-in
// core fonts; Traditional Chinese and bilingual invoices additionally need
// a TrueType font registered through the generator's registry.
package invoicekit

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/wenzhi/invoicekit/fonts"
	"github.com/wenzhi/invoicekit/invoice"
	"github.com/wenzhi/invoicekit/layout"
	"github.com/wenzhi/invoicekit/observability"
	"github.com/wenzhi/invoicekit/writer"
)

// Generator runs the invoice pipeline. It is safe for concurrent use; the
// typography cache is shared across calls.
type Generator struct {
	registry *fonts.Registry
	resolver *fonts.Resolver
	composer *layout.Composer
	log      observability.Logger
	compress bool
}

// Option configures a Generator.
type Option func(*config)

type config struct {
	registry *fonts.Registry
	log      observability.Logger
	size     layout.PageSize
	margins  layout.Margins
	compress bool
}

// WithRegistry supplies a font registry, usually pre-loaded with a CJK
// TrueType asset. Default is an empty registry, which limits output to
// English.
func WithRegistry(reg *fonts.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithLogger injects a logger for pipeline diagnostics.
func WithLogger(log observability.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithPageSize sets the page geometry. Default is A4.
func WithPageSize(size layout.PageSize) Option {
	return func(c *config) { c.size = size }
}

// WithMargins sets the page margins.
func WithMargins(m layout.Margins) Option {
	return func(c *config) { c.margins = m }
}

// WithCompression toggles FlateDecode on content streams and embedded
// fonts. Compression is deterministic; it defaults off so output stays
// inspectable.
func WithCompression(on bool) Option {
	return func(c *config) { c.compress = on }
}

// New returns a generator with A4 pages, 50pt margins, and no registered
// font assets.
func New(opts ...Option) *Generator {
	cfg := config{
		registry: fonts.NewRegistry(),
		log:      observability.NopLogger{},
		size:     layout.A4,
		margins:  layout.Margins{Top: 50, Bottom: 50, Left: 50, Right: 50},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Generator{
		registry: cfg.registry,
		resolver: fonts.NewResolver(cfg.registry, cfg.log),
		composer: layout.NewComposer(
			layout.WithPageSize(cfg.size),
			layout.WithMargins(cfg.margins),
			layout.WithLogger(cfg.log),
		),
		log:      cfg.log,
		compress: cfg.compress,
	}
}

// Registry exposes the generator's font registry so callers can load
// TrueType assets before rendering CJK documents.
func (g *Generator) Registry() *fonts.Registry { return g.registry }

// compose runs the shared front half of the pipeline: validate, resolve
// typography, lay out pages.
func (g *Generator) compose(inv *invoice.Invoice) ([]*layout.Page, *fonts.Profile, error) {
	log := g.log.With(
		observability.String("render_id", uuid.NewString()),
		observability.String("invoice", inv.Number),
	)

	if err := invoice.Validate(inv); err != nil {
		log.Warn("contract rejected", observability.Error("error", err))
		return nil, nil, err
	}

	profile, err := g.resolver.Resolve(inv.Language)
	if err != nil {
		log.Warn("typography unresolved", observability.Error("error", err))
		return nil, nil, err
	}

	pages, err := g.composer.Compose(inv, profile)
	if err != nil {
		log.Warn("composition failed", observability.Error("error", err))
		return nil, nil, err
	}
	log.Info("invoice composed",
		observability.String("language", string(inv.Language)),
		observability.Int("pages", len(pages)))
	return pages, profile, nil
}

// RenderPDF validates inv, composes it, and writes the finished PDF to
// out. Identical invoices produce byte-identical output.
func (g *Generator) RenderPDF(ctx context.Context, inv *invoice.Invoice, out io.Writer) error {
	pages, profile, err := g.compose(inv)
	if err != nil {
		return err
	}
	info := writer.Info{
		Title:    "Invoice " + inv.Number,
		Author:   inv.Business.Name.In(invoice.LangEnglish),
		Producer: "invoicekit",
	}
	return writer.WritePDF(ctx, pages, profile, info, out, writer.Config{Compress: g.compress})
}

// Preview validates and composes inv, returning the layout tree as stable
// indented JSON instead of rendered bytes.
func (g *Generator) Preview(inv *invoice.Invoice) ([]byte, error) {
	pages, _, err := g.compose(inv)
	if err != nil {
		return nil, err
	}
	return writer.Preview(pages)
}
