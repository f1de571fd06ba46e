package invoice

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wenzhi/invoicekit/money"
)

// ErrInvalidInvoice is the sentinel joined into every validation failure.
var ErrInvalidInvoice = errors.New("invalid invoice")

// FieldError pinpoints a single offending field. Index is the line-item
// index for per-item violations, -1 otherwise.
type FieldError struct {
	Field string
	Index int
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]: %s", e.Field, e.Index, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func fieldErr(field, msg string) error {
	return &FieldError{Field: field, Index: -1, Msg: msg}
}

func itemErr(index int, field, msg string) error {
	return &FieldError{Field: field, Index: index, Msg: msg}
}

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
)

// Validate checks the structural constraints of inv and reports every
// violation, not just the first. A nil return means the invoice is safe to
// hand to the composer. Validate has no side effects.
func Validate(inv *Invoice) error {
	if inv == nil {
		return fmt.Errorf("%w: nil invoice", ErrInvalidInvoice)
	}
	var errs []error

	if inv.Number == "" {
		errs = append(errs, fieldErr("number", "must not be empty"))
	}
	if !money.Known(inv.Currency) {
		errs = append(errs, fieldErr("currency", fmt.Sprintf("unknown code %q", inv.Currency)))
	}
	if !inv.Language.Known() {
		errs = append(errs, fieldErr("language", fmt.Sprintf("unknown selection %q", inv.Language)))
	}
	if inv.Business.Name.Empty() {
		errs = append(errs, fieldErr("business.name", "must not be empty"))
	}
	if inv.Business.TaxID == "" {
		errs = append(errs, fieldErr("business.tax_id", "issuing party requires a tax identifier"))
	}
	if inv.Client.Name.Empty() {
		errs = append(errs, fieldErr("client.name", "must not be empty"))
	}
	if len(inv.LineItems) == 0 {
		errs = append(errs, fieldErr("line_items", "must not be empty"))
	}
	for i, it := range inv.LineItems {
		if !it.Quantity.GreaterThan(zero) {
			errs = append(errs, itemErr(i, "quantity", "must be greater than zero"))
		}
		if it.UnitPrice.LessThan(zero) {
			errs = append(errs, itemErr(i, "unit_price", "must not be negative"))
		}
		if it.TaxRate.LessThan(zero) || it.TaxRate.GreaterThan(one) {
			errs = append(errs, itemErr(i, "tax_rate", "must be within [0, 1]"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidInvoice}, errs...)...)
	}
	return nil
}
