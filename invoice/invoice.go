// Package invoice defines the fully-resolved invoice record consumed by the
// render pipeline, its structural validation, and totals recomputation.
// The record is read-only once constructed; nothing downstream mutates it.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/wenzhi/invoicekit/money"
)

// Language selects the display language of the rendered document.
type Language string

const (
	LangEnglish            Language = "en"
	LangChineseTraditional Language = "zh-Hant"
	// LangBilingual dual-renders every label, primary language first.
	LangBilingual Language = "bilingual"
)

// Known reports whether l is a supported language selection.
func (l Language) Known() bool {
	switch l {
	case LangEnglish, LangChineseTraditional, LangBilingual:
		return true
	}
	return false
}

// Tag returns the BCP 47 tag for the primary script of l.
func (l Language) Tag() language.Tag {
	switch l {
	case LangChineseTraditional, LangBilingual:
		return language.TraditionalChinese
	default:
		return language.English
	}
}

// NeedsHan reports whether rendering l requires Han glyph support.
func (l Language) NeedsHan() bool {
	return l == LangChineseTraditional || l == LangBilingual
}

// BilingualText carries the English and Traditional Chinese renderings of a
// label or description. Either side may be empty; which sides are required
// depends on the document language.
type BilingualText struct {
	EN string `json:"en"`
	ZH string `json:"zh"`
}

// In returns the text for the primary script of lang, falling back to the
// other side when the requested one is empty.
func (t BilingualText) In(lang Language) string {
	switch lang {
	case LangChineseTraditional:
		if t.ZH != "" {
			return t.ZH
		}
		return t.EN
	default:
		if t.EN != "" {
			return t.EN
		}
		return t.ZH
	}
}

// Empty reports whether both sides are blank.
func (t BilingualText) Empty() bool { return t.EN == "" && t.ZH == "" }

// Party identifies one side of the invoice.
type Party struct {
	Name     BilingualText `json:"name"`
	TaxID    string        `json:"tax_id,omitempty"`
	Address  []string      `json:"address,omitempty"`
	Contact  string        `json:"contact,omitempty"`
	Language Language      `json:"language,omitempty"` // preferred language, used as bilingual primary
}

// LineItem is one billable entry. Print order is slice order.
type LineItem struct {
	Description BilingualText   `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // fraction in [0,1], e.g. 0.05
}

// Invoice is the root input of the pipeline. It is constructed once per
// render request from upstream data and treated as immutable here. Totals
// are never stored on it; they are recomputed from LineItems (see Totals).
type Invoice struct {
	Number      string         `json:"number"`
	IssueDate   time.Time      `json:"issue_date"`
	DueDate     time.Time      `json:"due_date"`
	Business    Party          `json:"business"`
	Client      Party          `json:"client"`
	LineItems   []LineItem     `json:"line_items"`
	Currency    money.Currency `json:"currency"`
	Language    Language       `json:"language"`
	Notes       string         `json:"notes,omitempty"`
	BankAccount string         `json:"bank_account,omitempty"`
}
