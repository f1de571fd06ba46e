package fonts

import (
	"errors"
	"testing"

	"github.com/wenzhi/invoicekit/invoice"
)

func TestResolveEnglishTriad(t *testing.T) {
	r := NewResolver(NewRegistry(), nil)
	p, err := r.Resolve(invoice.LangEnglish)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := p.Font(RoleDisplay).BaseFont; got != "Helvetica-Bold" {
		t.Errorf("display font = %q", got)
	}
	if got := p.Font(RoleBody).BaseFont; got != "Helvetica" {
		t.Errorf("body font = %q", got)
	}
	if got := p.Font(RoleMono).BaseFont; got != "Courier" {
		t.Errorf("mono font = %q", got)
	}
	for _, role := range []Role{RoleDisplay, RoleBody, RoleMono} {
		if p.Font(role).Embedded() {
			t.Errorf("core font for %s must not be embedded", role)
		}
	}
}

func TestResolveChineseWithoutAssetFailsClosed(t *testing.T) {
	r := NewResolver(NewRegistry(), nil)
	for _, lang := range []invoice.Language{invoice.LangChineseTraditional, invoice.LangBilingual} {
		_, err := r.Resolve(lang)
		if err == nil {
			t.Fatalf("Resolve(%q) succeeded with no Chinese-capable asset", lang)
		}
		if !errors.Is(err, ErrMissingGlyphSupport) {
			t.Errorf("Resolve(%q) error %v does not wrap ErrMissingGlyphSupport", lang, err)
		}
		var mg *MissingGlyphError
		if !errors.As(err, &mg) || mg.Language != lang {
			t.Errorf("Resolve(%q) error lacks language context: %v", lang, err)
		}
	}
}

func TestResolveMemoizes(t *testing.T) {
	r := NewResolver(NewRegistry(), nil)
	a, err := r.Resolve(invoice.LangEnglish)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Resolve(invoice.LangEnglish)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("repeated resolution returned distinct profiles")
	}
}

func TestEnsureRenderable(t *testing.T) {
	r := NewResolver(NewRegistry(), nil)
	p, err := r.Resolve(invoice.LangEnglish)
	if err != nil {
		t.Fatal(err)
	}
	// '×' is U+00D7, inside the WinAnsi Latin-1 range.
	if err := p.EnsureRenderable("Consulting services, 10 × ...\n"); err != nil {
		t.Fatalf("EnsureRenderable rejected renderable text: %v", err)
	}

	err = p.EnsureRenderable("數")
	if err == nil {
		t.Fatal("EnsureRenderable accepted a Han rune for the Latin triad")
	}
	if !errors.Is(err, ErrMissingGlyphSupport) {
		t.Errorf("error %v does not wrap ErrMissingGlyphSupport", err)
	}
	var mg *MissingGlyphError
	if !errors.As(err, &mg) || mg.Rune != '數' {
		t.Errorf("error does not name the offending rune: %v", err)
	}
}

func TestEnsureRenderableIn(t *testing.T) {
	r := NewResolver(NewRegistry(), nil)
	p, err := r.Resolve(invoice.LangEnglish)
	if err != nil {
		t.Fatal(err)
	}
	// The mono role is verified on its own, not through the body font.
	if err := p.EnsureRenderableIn(RoleMono, "INV-2024-001 1,050"); err != nil {
		t.Fatalf("EnsureRenderableIn rejected renderable mono text: %v", err)
	}
	err = p.EnsureRenderableIn(RoleMono, "匯款 123")
	if err == nil {
		t.Fatal("EnsureRenderableIn accepted a Han rune for Courier")
	}
	if !errors.Is(err, ErrMissingGlyphSupport) {
		t.Errorf("error %v does not wrap ErrMissingGlyphSupport", err)
	}
	var mg *MissingGlyphError
	if !errors.As(err, &mg) || mg.Rune != '匯' {
		t.Errorf("error does not name the offending rune: %v", err)
	}
}

func TestRegisterTrueTypeRejectsGarbage(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterTrueType("bogus", []byte("not a font")); err == nil {
		t.Fatal("RegisterTrueType accepted junk data")
	}
	if err := reg.RegisterTrueType("empty", nil); err == nil {
		t.Fatal("RegisterTrueType accepted empty data")
	}
}

func TestCoreWidths(t *testing.T) {
	h := Helvetica()
	// 'i' is 222/1000 em, 'W' is 944/1000 em in the AFM tables.
	if w := h.TextWidth("i", 1000); w != 222 {
		t.Errorf("Helvetica 'i' width = %v, want 222", w)
	}
	if w := h.TextWidth("W", 1000); w != 944 {
		t.Errorf("Helvetica 'W' width = %v, want 944", w)
	}

	c := Courier()
	if w := c.TextWidth("il", 10); w != c.TextWidth("WW", 10) {
		t.Error("Courier is not fixed width")
	}
	// Digits align in the mono role.
	if c.TextWidth("1,050", 10) != c.TextWidth("9,999", 10) {
		t.Error("equal-length numerics must measure equal in Courier")
	}
}

func TestWinAnsiByte(t *testing.T) {
	cases := []struct {
		r  rune
		b  byte
		ok bool
	}{
		{'A', 0x41, true},
		{' ', 0x20, true},
		{'é', 0xE9, true},
		{'€', 0x80, true},
		{'—', 0x97, true},
		{'數', 0, false},
		{'\x01', 0, false},
	}
	for _, c := range cases {
		b, ok := winAnsiByte(c.r)
		if ok != c.ok || b != c.b {
			t.Errorf("winAnsiByte(%q) = (%#x, %v), want (%#x, %v)", c.r, b, ok, c.b, c.ok)
		}
	}
}
