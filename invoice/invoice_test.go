package invoice

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wenzhi/invoicekit/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validInvoice() *Invoice {
	return &Invoice{
		Number:    "INV-2024-001",
		IssueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Business: Party{
			Name:    BilingualText{EN: "Acme Consulting Ltd.", ZH: "頂尖顧問有限公司"},
			TaxID:   "24536806",
			Address: []string{"10F, No. 100, Sec. 1, Xinyi Rd.", "Taipei 100, Taiwan"},
			Contact: "billing@acme.example",
		},
		Client: Party{
			Name:    BilingualText{EN: "Globex Corp.", ZH: "環球股份有限公司"},
			Address: []string{"5 Market Street", "Singapore"},
		},
		LineItems: []LineItem{
			{Description: BilingualText{EN: "Consulting", ZH: "顧問服務"}, Quantity: dec("10"), UnitPrice: dec("100"), TaxRate: dec("0.05")},
		},
		Currency: money.TWD,
		Language: LangEnglish,
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(validInvoice()); err != nil {
		t.Fatalf("Validate returned %v for a valid invoice", err)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	inv := validInvoice()
	inv.Number = ""
	inv.Currency = "XXX"
	inv.LineItems = []LineItem{
		{Description: BilingualText{EN: "a"}, Quantity: dec("0"), UnitPrice: dec("-1"), TaxRate: dec("1.5")},
	}

	err := Validate(inv)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, ErrInvalidInvoice) {
		t.Error("error does not wrap ErrInvalidInvoice")
	}
	msg := err.Error()
	for _, want := range []string{"number", "currency", "quantity[0]", "unit_price[0]", "tax_rate[0]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q is missing violation %q", msg, want)
		}
	}
}

func TestValidateNil(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrInvalidInvoice) {
		t.Fatalf("Validate(nil) = %v", err)
	}
}

func TestTotalsTWDScenario(t *testing.T) {
	// 10 × 100 at 5% tax in TWD: line total 1050, no decimals.
	inv := validInvoice()
	b := Totals(inv)

	if !b.Subtotal.Equal(dec("1000")) {
		t.Errorf("subtotal = %s, want 1000", b.Subtotal)
	}
	if !b.GrandTotal.Equal(dec("1050")) {
		t.Errorf("grand total = %s, want 1050", b.GrandTotal)
	}
	if len(b.Tax) != 1 || !b.Tax[0].Amount.Equal(dec("50")) {
		t.Errorf("tax buckets = %+v, want single 50 bucket", b.Tax)
	}
	if got := inv.Currency.Format(b.GrandTotal); got != "1,050" {
		t.Errorf("formatted grand total = %q, want \"1,050\"", got)
	}
}

func TestTotalsBucketsByRate(t *testing.T) {
	inv := validInvoice()
	inv.Currency = money.USD
	inv.LineItems = []LineItem{
		{Description: BilingualText{EN: "a"}, Quantity: dec("1"), UnitPrice: dec("100"), TaxRate: dec("0.05")},
		{Description: BilingualText{EN: "b"}, Quantity: dec("2"), UnitPrice: dec("50"), TaxRate: dec("0.05")},
		{Description: BilingualText{EN: "c"}, Quantity: dec("1"), UnitPrice: dec("200"), TaxRate: dec("0")},
	}
	b := Totals(inv)

	if len(b.Tax) != 2 {
		t.Fatalf("got %d buckets, want 2", len(b.Tax))
	}
	// Ascending by rate.
	if !b.Tax[0].Rate.Equal(dec("0")) || !b.Tax[1].Rate.Equal(dec("0.05")) {
		t.Errorf("buckets out of order: %+v", b.Tax)
	}
	if !b.Tax[1].Amount.Equal(dec("10")) {
		t.Errorf("5%% bucket = %s, want 10", b.Tax[1].Amount)
	}
	// Subtotal + tax == grand total exactly.
	sum := b.Subtotal
	for _, tb := range b.Tax {
		sum = sum.Add(tb.Amount)
	}
	if !sum.Equal(b.GrandTotal) {
		t.Errorf("subtotal+tax = %s, grand = %s", sum, b.GrandTotal)
	}
}

func TestTotalsRoundHalfEvenPerLine(t *testing.T) {
	// 1 × 101 at 5% TWD = 106.05 → 106; 1 × 110 at 5% = 115.5 → ties to 116.
	inv := validInvoice()
	inv.LineItems = []LineItem{
		{Description: BilingualText{EN: "a"}, Quantity: dec("1"), UnitPrice: dec("101"), TaxRate: dec("0.05")},
	}
	if got := LineTotal(inv.LineItems[0], inv.Currency); !got.Equal(dec("106")) {
		t.Errorf("line total = %s, want 106", got)
	}
	it := LineItem{Quantity: dec("1"), UnitPrice: dec("110"), TaxRate: dec("0.05")}
	if got := LineTotal(it, money.TWD); !got.Equal(dec("116")) {
		t.Errorf("line total = %s, want 116 (half to even)", got)
	}
}

func TestLanguageTag(t *testing.T) {
	// The BCP 47 tag drives glyph-coverage probing; it must name the
	// Traditional Chinese script for both Han-needing selections.
	if got := LangChineseTraditional.Tag().String(); got != "zh-Hant" {
		t.Errorf("zh-Hant tag = %q", got)
	}
	if got := LangBilingual.Tag().String(); got != "zh-Hant" {
		t.Errorf("bilingual tag = %q", got)
	}
	if got := LangEnglish.Tag().String(); got != "en" {
		t.Errorf("english tag = %q", got)
	}
}

func TestBilingualTextIn(t *testing.T) {
	txt := BilingualText{EN: "Consulting", ZH: "顧問服務"}
	if txt.In(LangEnglish) != "Consulting" {
		t.Error("English selection failed")
	}
	if txt.In(LangChineseTraditional) != "顧問服務" {
		t.Error("Chinese selection failed")
	}
	// Fallback to the populated side.
	if (BilingualText{EN: "only"}).In(LangChineseTraditional) != "only" {
		t.Error("fallback to EN failed")
	}
	if (BilingualText{ZH: "僅中文"}).In(LangEnglish) != "僅中文" {
		t.Error("fallback to ZH failed")
	}
}
