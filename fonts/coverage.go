package fonts

import (
	"bytes"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	xlang "golang.org/x/text/language"
)

// hanProbe is the capability probe for Traditional Chinese support: an
// asset that cannot shape these is rejected at resolve time, before any
// document text is inspected.
var hanProbe = []rune("發票統一編號中文")

// probeCoverage shapes each probe rune with the font program and returns
// the runes that map to the missing-glyph index. A nil return means the
// font shapes every probe rune. The shaping language comes from the BCP 47
// tag of the language being probed for, so the result does not depend on
// the process locale.
func probeCoverage(data []byte, probe []rune, tag xlang.Tag) ([]rune, error) {
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	shaper := &shaping.HarfbuzzShaper{}
	lang := language.NewLanguage(tag.String())
	var missing []rune
	for _, r := range probe {
		runes := []rune{r}
		input := shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: di.DirectionLTR,
			Face:      face,
			Size:      fixed.Int26_6(64),
			Script:    scriptFromRune(r),
			Language:  lang,
		}
		output := shaper.Shape(input)
		covered := len(output.Glyphs) > 0
		for _, g := range output.Glyphs {
			if g.GlyphID == 0 {
				covered = false
				break
			}
		}
		if !covered {
			missing = append(missing, r)
		}
	}
	return missing, nil
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Han, r):
		return language.Han
	case unicode.Is(unicode.Hiragana, r):
		return language.Hiragana
	case unicode.Is(unicode.Katakana, r):
		return language.Katakana
	case unicode.Is(unicode.Hangul, r):
		return language.Hangul
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	default:
		return language.Latin
	}
}
