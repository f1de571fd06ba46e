package layout

import "github.com/wenzhi/invoicekit/invoice"

// Label strategy: the language variant is selected once per render and the
// rest of the composer asks for finished strings, so pagination never
// branches on language.

type labelKey int

const (
	lblInvoice labelKey = iota
	lblInvoiceNo
	lblIssueDate
	lblDueDate
	lblBillFrom
	lblBillTo
	lblTaxID
	lblContact
	lblDescription
	lblQty
	lblUnitPrice
	lblTax
	lblLineTotal
	lblSubtotal
	lblTaxAmount
	lblGrandTotal
	lblNotes
	lblBankAccount
)

var labelTexts = map[labelKey]invoice.BilingualText{
	lblInvoice:     {EN: "INVOICE", ZH: "發票"},
	lblInvoiceNo:   {EN: "Invoice No.", ZH: "發票號碼"},
	lblIssueDate:   {EN: "Issue Date", ZH: "開立日期"},
	lblDueDate:     {EN: "Due Date", ZH: "到期日"},
	lblBillFrom:    {EN: "Bill From", ZH: "賣方"},
	lblBillTo:      {EN: "Bill To", ZH: "買方"},
	lblTaxID:       {EN: "Tax ID", ZH: "統一編號"},
	lblContact:     {EN: "Contact", ZH: "聯絡方式"},
	lblDescription: {EN: "Description", ZH: "品名"},
	lblQty:         {EN: "Qty", ZH: "數量"},
	lblUnitPrice:   {EN: "Unit Price", ZH: "單價"},
	lblTax:         {EN: "Tax", ZH: "稅率"},
	lblLineTotal:   {EN: "Amount", ZH: "金額"},
	lblSubtotal:    {EN: "Subtotal", ZH: "小計"},
	lblTaxAmount:   {EN: "Tax", ZH: "稅額"},
	lblGrandTotal:  {EN: "Grand Total", ZH: "總計"},
	lblNotes:       {EN: "Notes", ZH: "備註"},
	lblBankAccount: {EN: "Bank Account", ZH: "匯款帳戶"},
}

type labels struct {
	mode invoice.Language
	// zhFirst orders the bilingual dual rendering; it follows the issuing
	// party's preferred language.
	zhFirst bool
}

func newLabels(inv *invoice.Invoice) labels {
	return labels{
		mode:    inv.Language,
		zhFirst: inv.Business.Language == invoice.LangChineseTraditional,
	}
}

// get returns the finished label for k: a single language in monolingual
// modes, the primary-beside-secondary pair in bilingual mode.
func (l labels) get(k labelKey) string {
	t := labelTexts[k]
	switch l.mode {
	case invoice.LangBilingual:
		if l.zhFirst {
			return t.ZH + " " + t.EN
		}
		return t.EN + " " + t.ZH
	default:
		return t.In(l.mode)
	}
}

// titleLines returns the document title, stacked primary-above-secondary
// in bilingual mode.
func (l labels) titleLines() []string {
	t := labelTexts[lblInvoice]
	switch l.mode {
	case invoice.LangBilingual:
		if l.zhFirst {
			return []string{t.ZH, t.EN}
		}
		return []string{t.EN, t.ZH}
	default:
		return []string{t.In(l.mode)}
	}
}

// partyName returns the display lines for a party's legal name.
func (l labels) partyName(p invoice.Party) []string {
	n := p.Name
	switch l.mode {
	case invoice.LangBilingual:
		lines := make([]string, 0, 2)
		first, second := n.EN, n.ZH
		if l.zhFirst {
			first, second = n.ZH, n.EN
		}
		if first != "" {
			lines = append(lines, first)
		}
		if second != "" {
			lines = append(lines, second)
		}
		return lines
	default:
		return []string{n.In(l.mode)}
	}
}

// descriptionLines returns the unwrapped description lines for a line item.
func (l labels) descriptionLines(d invoice.BilingualText) []string {
	switch l.mode {
	case invoice.LangBilingual:
		lines := make([]string, 0, 2)
		first, second := d.EN, d.ZH
		if l.zhFirst {
			first, second = d.ZH, d.EN
		}
		if first != "" {
			lines = append(lines, first)
		}
		if second != "" {
			lines = append(lines, second)
		}
		return lines
	default:
		return []string{d.In(l.mode)}
	}
}
