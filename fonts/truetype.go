package fonts

import (
	"fmt"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// LoadTrueType parses a TrueType/OpenType font program and returns a Font
// configured for Type0 Identity-H embedding. The full program is kept for
// the writer; glyph advances are resolved lazily per rune.
func LoadTrueType(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("truetype font %q: data is empty", name)
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("truetype font %q: parse: %w", name, err)
	}
	units := parsed.UnitsPerEm()
	if units == 0 {
		return nil, fmt.Errorf("truetype font %q: invalid unitsPerEm", name)
	}

	buf := &sfnt.Buffer{}
	ppem := fixed.Int26_6(units << 6)

	baseName := strings.TrimSpace(name)
	if ps, _ := parsed.Name(buf, sfnt.NameIDPostScript); len(ps) > 0 {
		baseName = ps
	}
	if baseName == "" {
		baseName = "CustomTT"
	}

	metrics, _ := parsed.Metrics(buf, ppem, xfont.HintingNone)
	bounds, _ := parsed.Bounds(buf, ppem, xfont.HintingNone)
	descriptor := &Descriptor{
		FontName:    baseName,
		Flags:       4, // non-symbolic TrueType
		ItalicAngle: italicAngle(parsed),
		Ascent:      scaleToEm(metrics.Ascent, units),
		Descent:     scaleToEm(metrics.Descent, units),
		CapHeight:   scaleToEm(metrics.Ascent, units),
		StemV:       80,
		BBox: [4]float64{
			scaleToEm(bounds.Min.X, units),
			scaleToEm(bounds.Min.Y, units),
			scaleToEm(bounds.Max.X, units),
			scaleToEm(bounds.Max.Y, units),
		},
	}

	return &Font{
		BaseFont:     baseName,
		Subtype:      "Type0",
		Data:         data,
		Descriptor:   descriptor,
		DefaultWidth: 1000,
		sf:           parsed,
		units:        units,
	}, nil
}

func italicAngle(f *sfnt.Font) float64 {
	post := f.PostTable()
	if post == nil {
		return 0
	}
	return post.ItalicAngle
}
