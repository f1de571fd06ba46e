package writer

import (
	"sort"

	"github.com/wenzhi/invoicekit/fonts"
)

// fontRes tracks one font resource while content streams are built: its
// resource name and, for embedded fonts, the glyphs the document used.
type fontRes struct {
	font    *fonts.Font
	resName string
	used    map[uint16]int // gid -> advance (1/1000 em), Type0 only
}

// encode converts s into the font's string encoding, recording glyph usage
// for embedded fonts. Core fonts yield a literal WinAnsi string; embedded
// fonts yield a hex string of 2-byte glyph indexes.
func (fr *fontRes) encode(s string) object {
	if !fr.font.Embedded() {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			code, _, ok := fr.font.Glyph(r)
			if !ok {
				code = '?'
			}
			out = append(out, byte(code))
		}
		return literal(out)
	}

	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		gid, w, ok := fr.font.Glyph(r)
		if !ok {
			gid = 0
		}
		if fr.used == nil {
			fr.used = make(map[uint16]int)
		}
		fr.used[gid] = w
		out = append(out, byte(gid>>8), byte(gid))
	}
	return hexstr(out)
}

// addFontObjects emits the PDF objects for fr and returns the reference a
// page resource dictionary should point at.
func (d *document) addFontObjects(fr *fontRes, cfg Config) ref {
	f := fr.font
	if !f.Embedded() {
		return d.add(dict{
			"Type":     name("Font"),
			"Subtype":  name("Type1"),
			"BaseFont": name(f.BaseFont),
			"Encoding": name("WinAnsiEncoding"),
		})
	}

	program := &stream{
		dict: dict{"Length1": integer(len(f.Data))},
		data: f.Data,
	}
	if cfg.Compress {
		program.data = flate(f.Data)
		program.dict["Filter"] = name("FlateDecode")
	}
	programRef := d.add(program)

	desc := f.Descriptor
	descriptorRef := d.add(dict{
		"Type":        name("FontDescriptor"),
		"FontName":    name(desc.FontName),
		"Flags":       integer(desc.Flags),
		"ItalicAngle": real(desc.ItalicAngle),
		"Ascent":      real(desc.Ascent),
		"Descent":     real(desc.Descent),
		"CapHeight":   real(desc.CapHeight),
		"StemV":       real(desc.StemV),
		"FontBBox": array{
			real(desc.BBox[0]), real(desc.BBox[1]),
			real(desc.BBox[2]), real(desc.BBox[3]),
		},
		"FontFile2": programRef,
	})

	descendantRef := d.add(dict{
		"Type":     name("Font"),
		"Subtype":  name("CIDFontType2"),
		"BaseFont": name(f.BaseFont),
		"CIDSystemInfo": dict{
			"Registry":   literal("Adobe"),
			"Ordering":   literal("Identity"),
			"Supplement": integer(0),
		},
		"DW":             integer(f.DefaultWidth),
		"W":              widthArray(fr.used),
		"CIDToGIDMap":    name("Identity"),
		"FontDescriptor": descriptorRef,
	})

	return d.add(dict{
		"Type":            name("Font"),
		"Subtype":         name("Type0"),
		"BaseFont":        name(f.BaseFont),
		"Encoding":        name("Identity-H"),
		"DescendantFonts": array{descendantRef},
	})
}

// widthArray renders the CID width list for the glyphs actually used,
// ordered by glyph index so output is stable.
func widthArray(used map[uint16]int) array {
	gids := make([]int, 0, len(used))
	for gid := range used {
		gids = append(gids, int(gid))
	}
	sort.Ints(gids)

	out := make(array, 0, len(gids)*2)
	for _, gid := range gids {
		out = append(out, integer(gid), array{integer(used[uint16(gid)])})
	}
	return out
}
