package invoice

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wenzhi/invoicekit/money"
)

// TaxBucket aggregates tax charged at one rate.
type TaxBucket struct {
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// Breakdown is the recomputed financial summary of an invoice. It is always
// derived from the line items at render time; the invoice never stores it,
// so stored and recomputed totals cannot diverge.
type Breakdown struct {
	Subtotal   decimal.Decimal
	Tax        []TaxBucket // ascending by rate
	GrandTotal decimal.Decimal
}

// LineNet returns quantity × unit price rounded at the currency precision.
func LineNet(it LineItem, c money.Currency) decimal.Decimal {
	return c.Round(it.Quantity.Mul(it.UnitPrice))
}

// LineTotal returns quantity × unit price × (1 + tax rate) rounded
// half-to-even at the currency precision.
func LineTotal(it LineItem, c money.Currency) decimal.Decimal {
	gross := it.Quantity.Mul(it.UnitPrice).Mul(decimal.NewFromInt(1).Add(it.TaxRate))
	return c.Round(gross)
}

// Totals recomputes subtotal, per-rate tax buckets, and grand total from the
// line items. Subtotal plus the bucket sum equals the grand total exactly:
// each line's tax is the difference between its rounded gross and rounded
// net, so no rounding residue is lost between the figures.
func Totals(inv *Invoice) Breakdown {
	subtotal := decimal.Zero
	grand := decimal.Zero
	buckets := make(map[string]*TaxBucket)

	for _, it := range inv.LineItems {
		net := LineNet(it, inv.Currency)
		total := LineTotal(it, inv.Currency)
		subtotal = subtotal.Add(net)
		grand = grand.Add(total)

		tax := total.Sub(net)
		key := it.TaxRate.String()
		b, ok := buckets[key]
		if !ok {
			b = &TaxBucket{Rate: it.TaxRate}
			buckets[key] = b
		}
		b.Amount = b.Amount.Add(tax)
	}

	out := Breakdown{Subtotal: subtotal, GrandTotal: grand}
	for _, b := range buckets {
		out.Tax = append(out.Tax, *b)
	}
	sort.Slice(out.Tax, func(i, j int) bool { return out.Tax[i].Rate.LessThan(out.Tax[j].Rate) })
	return out
}
