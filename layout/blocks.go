package layout

import (
	"github.com/wenzhi/invoicekit/fonts"
	"github.com/wenzhi/invoicekit/invoice"
)

const dateLayout = "2006-01-02"

// Column geometry as fractions of the content width.
var colFractions = [5]float64{0.44, 0.10, 0.17, 0.10, 0.19} // desc, qty, unit, tax, total

// colEdges returns the cumulative right edge of each column in points from
// the left margin.
func (s *composition) colEdges() [5]float64 {
	w := s.c.contentWidth()
	var edges [5]float64
	acc := 0.0
	for i, f := range colFractions {
		acc += f * w
		edges[i] = acc
	}
	return edges
}

func (s *composition) buildHeader() Block {
	bb := s.newBlock(BlockHeader)
	w := s.c.contentWidth()

	for _, line := range s.lbl.titleLines() {
		bb.text(0, line, fonts.RoleDisplay, titleSize)
		bb.advance(lineH(titleSize))
	}

	meta := []struct {
		key   labelKey
		value string
	}{
		{lblInvoiceNo, s.inv.Number},
		{lblIssueDate, s.inv.IssueDate.Format(dateLayout)},
		{lblDueDate, s.inv.DueDate.Format(dateLayout)},
	}
	for _, m := range meta {
		bb.text(0, s.lbl.get(m.key), fonts.RoleBody, bodySize)
		bb.textRight(w, m.value, fonts.RoleMono, bodySize)
		bb.advance(lineH(bodySize))
	}

	bb.advance(blockGap / 2)
	bb.rule(0, w, 1)
	bb.advance(blockGap)
	return bb.done()
}

type partyLine struct {
	value string
	role  fonts.Role
}

// partyLines renders one party column as ordered lines.
func (s *composition) partyLines(p invoice.Party, heading labelKey) []partyLine {
	lines := []partyLine{{s.lbl.get(heading), fonts.RoleDisplay}}
	for _, n := range s.lbl.partyName(p) {
		lines = append(lines, partyLine{n, fonts.RoleBody})
	}
	for _, a := range p.Address {
		lines = append(lines, partyLine{a, fonts.RoleBody})
	}
	if p.TaxID != "" {
		lines = append(lines, partyLine{s.lbl.get(lblTaxID) + ": " + p.TaxID, fonts.RoleBody})
	}
	if p.Contact != "" {
		lines = append(lines, partyLine{s.lbl.get(lblContact) + ": " + p.Contact, fonts.RoleBody})
	}
	return lines
}

func (s *composition) buildParties() Block {
	bb := s.newBlock(BlockParties)
	w := s.c.contentWidth()
	colX := [2]float64{0, w / 2}

	left := s.partyLines(s.inv.Business, lblBillFrom)
	right := s.partyLines(s.inv.Client, lblBillTo)

	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	for i := 0; i < rows; i++ {
		size, h := float64(bodySize), lineH(bodySize)
		if i == 0 {
			size, h = sectionSize, lineH(sectionSize)
		}
		if i < len(left) {
			bb.text(colX[0], left[i].value, left[i].role, size)
		}
		if i < len(right) {
			bb.text(colX[1], right[i].value, right[i].role, size)
		}
		bb.advance(h)
	}
	bb.advance(blockGap)
	return bb.done()
}

func (s *composition) buildTableHead() Block {
	bb := s.newBlock(BlockTableHead)
	edges := s.colEdges()
	w := s.c.contentWidth()

	bb.rule(0, w, 1)
	bb.advance(rowPadding)
	bb.text(0, s.lbl.get(lblDescription), fonts.RoleDisplay, bodySize)
	bb.textRight(edges[1], s.lbl.get(lblQty), fonts.RoleDisplay, bodySize)
	bb.textRight(edges[2], s.lbl.get(lblUnitPrice), fonts.RoleDisplay, bodySize)
	bb.textRight(edges[3], s.lbl.get(lblTax), fonts.RoleDisplay, bodySize)
	bb.textRight(edges[4], s.lbl.get(lblLineTotal), fonts.RoleDisplay, bodySize)
	bb.advance(lineH(bodySize) + rowPadding)
	bb.rule(0, w, 0.5)
	return bb.done()
}

func (s *composition) buildRow(i int) Block {
	return s.buildRowChunk(i, s.rowLines(i), true)
}

// rowLines wraps the line item's description to the column width.
func (s *composition) rowLines(i int) []string {
	edges := s.colEdges()
	descWidth := edges[0] - 6 // keep clear of the qty column

	var lines []string
	for _, raw := range s.lbl.descriptionLines(s.inv.LineItems[i].Description) {
		lines = append(lines, wrapText(s.profile, fonts.RoleBody, bodySize, descWidth, raw)...)
	}
	return lines
}

func (s *composition) buildRowChunk(i int, lines []string, withAmounts bool) Block {
	it := s.inv.LineItems[i]
	bb := s.newBlock(BlockRow)
	edges := s.colEdges()

	bb.advance(rowPadding)
	top := bb.dy
	for _, line := range lines {
		bb.text(0, line, fonts.RoleBody, bodySize)
		bb.advance(lineH(bodySize))
	}
	bottom := bb.dy

	if withAmounts {
		// Numeric cells sit on the first line of the row, monospaced.
		bb.dy = top
		cur := s.inv.Currency
		bb.textRight(edges[1], it.Quantity.String(), fonts.RoleMono, bodySize)
		bb.textRight(edges[2], cur.Format(it.UnitPrice), fonts.RoleMono, bodySize)
		bb.textRight(edges[3], formatRate(it.TaxRate), fonts.RoleMono, bodySize)
		bb.textRight(edges[4], cur.Format(invoice.LineTotal(it, cur)), fonts.RoleMono, bodySize)
		bb.dy = bottom
	}

	bb.advance(rowPadding / 2)
	return bb.done()
}

// placeRowOverflow splits a row that exceeds a full page's content height
// across pages, repeating the table head after each break. The caller has
// already opened a fresh page with a table head; the numeric cells ride on
// the first chunk only.
func (s *composition) placeRowOverflow(i int) {
	lines := s.rowLines(i)
	first := true
	for len(lines) > 0 {
		n := s.rowLineCapacity()
		if n < 1 {
			n = 1
		}
		if n > len(lines) {
			n = len(lines)
		}
		s.place(s.buildRowChunk(i, lines[:n], first))
		lines = lines[n:]
		first = false
		if len(lines) > 0 {
			s.newPage()
			s.place(s.buildTableHead())
		}
	}
}

// rowLineCapacity returns how many description lines a row chunk can hold
// in the space left on the current page.
func (s *composition) rowLineCapacity() int {
	avail := s.y - s.c.margins.Bottom - rowPadding - rowPadding/2
	return int(avail / lineH(bodySize))
}

func (s *composition) buildTotals() Block {
	bb := s.newBlock(BlockTotals)
	edges := s.colEdges()
	labelX := edges[1] // totals keep to the table's right side
	cur := s.inv.Currency
	breakdown := invoice.Totals(s.inv)

	bb.advance(blockGap / 2)
	bb.rule(labelX, edges[4], 0.5)
	bb.advance(rowPadding)

	bb.text(labelX, s.lbl.get(lblSubtotal), fonts.RoleBody, bodySize)
	bb.textRight(edges[4], cur.Format(breakdown.Subtotal), fonts.RoleMono, bodySize)
	bb.advance(lineH(bodySize))

	for _, bucket := range breakdown.Tax {
		label := s.lbl.get(lblTaxAmount) + " (" + formatRate(bucket.Rate) + ")"
		bb.text(labelX, label, fonts.RoleBody, bodySize)
		bb.textRight(edges[4], cur.Format(bucket.Amount), fonts.RoleMono, bodySize)
		bb.advance(lineH(bodySize))
	}

	bb.advance(rowPadding / 2)
	bb.rule(labelX, edges[4], 1)
	bb.advance(rowPadding)
	bb.text(labelX, s.lbl.get(lblGrandTotal), fonts.RoleDisplay, grandSize)
	bb.textRight(edges[4], cur.Format(breakdown.GrandTotal), fonts.RoleMono, grandSize)
	bb.advance(lineH(grandSize))
	return bb.done()
}

// buildNotes returns nil when the invoice has neither notes nor banking
// details.
func (s *composition) buildNotes() *Block {
	if s.inv.Notes == "" && s.inv.BankAccount == "" {
		return nil
	}
	bb := s.newBlock(BlockNotes)
	w := s.c.contentWidth()

	bb.advance(blockGap)
	if s.inv.Notes != "" {
		bb.text(0, s.lbl.get(lblNotes), fonts.RoleDisplay, bodySize)
		bb.advance(lineH(bodySize))
		for _, line := range wrapText(s.profile, fonts.RoleBody, bodySize, w, s.inv.Notes) {
			bb.text(0, line, fonts.RoleBody, bodySize)
			bb.advance(lineH(bodySize))
		}
	}
	if s.inv.BankAccount != "" {
		bb.text(0, s.lbl.get(lblBankAccount), fonts.RoleDisplay, bodySize)
		bb.advance(lineH(bodySize))
		bb.text(0, s.inv.BankAccount, fonts.RoleMono, bodySize)
		bb.advance(lineH(bodySize))
	}
	b := bb.done()
	return &b
}
