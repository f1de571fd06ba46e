// Package writer emits composed invoice pages as a paginated PDF byte
// stream or as a deterministic preview tree. Output is a pure function of
// the pages and profile: no timestamps, no random identifiers, stable
// object and key ordering throughout.
package writer

import (
	"bytes"
	"compress/zlib"
	"context"
	"fmt"
	"io"

	"github.com/wenzhi/invoicekit/fonts"
	"github.com/wenzhi/invoicekit/layout"
)

// Info populates the PDF information dictionary. Empty fields are omitted.
// There is deliberately no creation-date field: the only dates in the
// output are the invoice's own.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Producer string
}

// Config controls output encoding.
type Config struct {
	// Compress applies FlateDecode to content streams and embedded font
	// programs.
	Compress bool
}

// RenderIOError wraps a failure writing to the caller-supplied destination.
// The writer never retries; the caller owns the destination and any retry
// policy.
type RenderIOError struct {
	Op  string
	Err error
}

func (e *RenderIOError) Error() string {
	return fmt.Sprintf("render output %s: %v", e.Op, e.Err)
}

func (e *RenderIOError) Unwrap() error { return e.Err }

// roleOrder fixes the resource-name assignment so identical inputs always
// produce identical resource dictionaries.
var roleOrder = [3]fonts.Role{fonts.RoleDisplay, fonts.RoleBody, fonts.RoleMono}

// WritePDF renders pages to out. The destination is owned by the caller;
// write failures surface as *RenderIOError.
func WritePDF(ctx context.Context, pages []*layout.Page, profile *fonts.Profile, info Info, out io.Writer, cfg Config) error {
	if len(pages) == 0 {
		return fmt.Errorf("write pdf: no pages")
	}

	// Bind deduplicated font resources in role order. Display and body can
	// share one font (they do for Chinese profiles).
	resources := make(map[fonts.Role]*fontRes, len(roleOrder))
	byFont := make(map[*fonts.Font]*fontRes, len(roleOrder))
	nextName := 1
	for _, role := range roleOrder {
		f := profile.Font(role)
		if fr, ok := byFont[f]; ok {
			resources[role] = fr
			continue
		}
		fr := &fontRes{font: f, resName: fmt.Sprintf("F%d", nextName)}
		nextName++
		byFont[f] = fr
		resources[role] = fr
	}

	// Content streams first: building them records glyph usage for the
	// width tables emitted with embedded fonts.
	contents := make([][]byte, len(pages))
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		contents[i] = contentFor(p, resources)
	}

	doc := &document{}
	catalogRef := doc.reserve()
	pagesRef := doc.reserve()

	fontDict := dict{}
	for _, role := range roleOrder {
		fr := resources[role]
		if _, done := fontDict[fr.resName]; done {
			continue
		}
		fontDict[fr.resName] = doc.addFontObjects(fr, cfg)
	}

	kids := make(array, 0, len(pages))
	for i, p := range pages {
		data := contents[i]
		cs := &stream{dict: dict{}, data: data}
		if cfg.Compress {
			cs.data = flate(data)
			cs.dict["Filter"] = name("FlateDecode")
		}
		contentRef := doc.add(cs)
		pageRef := doc.add(dict{
			"Type":   name("Page"),
			"Parent": pagesRef,
			"MediaBox": array{
				integer(0), integer(0),
				real(p.Size.Width), real(p.Size.Height),
			},
			"Resources": dict{"Font": fontDict},
			"Contents":  contentRef,
		})
		kids = append(kids, pageRef)
	}

	doc.set(pagesRef, dict{
		"Type":  name("Pages"),
		"Count": integer(len(pages)),
		"Kids":  kids,
	})
	doc.set(catalogRef, dict{
		"Type":  name("Catalog"),
		"Pages": pagesRef,
	})

	trailer := dict{"Root": catalogRef}
	if infoDict := infoDict(info); len(infoDict) > 0 {
		trailer["Info"] = doc.add(infoDict)
	}

	if _, err := out.Write(doc.serialize(trailer)); err != nil {
		return &RenderIOError{Op: "write", Err: err}
	}
	return nil
}

func infoDict(info Info) dict {
	d := dict{}
	if info.Title != "" {
		d["Title"] = textString(info.Title)
	}
	if info.Author != "" {
		d["Author"] = textString(info.Author)
	}
	if info.Subject != "" {
		d["Subject"] = textString(info.Subject)
	}
	if info.Producer != "" {
		d["Producer"] = textString(info.Producer)
	}
	return d
}

// contentFor walks one composed page and emits its text and stroke
// operations in block order.
func contentFor(p *layout.Page, resources map[fonts.Role]*fontRes) []byte {
	var buf bytes.Buffer
	for _, b := range p.Blocks {
		for _, t := range b.Texts {
			fr := resources[t.Role]
			fmt.Fprintf(&buf, "BT /%s %.2f Tf %.2f %.2f Td ", fr.resName, t.Size, t.X, t.Y)
			fr.encode(t.Value).serialize(&buf)
			buf.WriteString(" Tj ET\n")
		}
		for _, r := range b.Rules {
			fmt.Fprintf(&buf, "q %.2f w %.2f %.2f m %.2f %.2f l S Q\n",
				r.Width, r.X1, r.Y1, r.X2, r.Y2)
		}
	}
	return buf.Bytes()
}

// flate compresses data at the maximum level; zlib output is stable for a
// given input, which keeps rendering deterministic.
func flate(data []byte) []byte {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		// The level constant is valid; this cannot happen.
		panic(err)
	}
	if _, err := zw.Write(data); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
