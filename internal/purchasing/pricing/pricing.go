// Package pricing derives document totals. All functions are pure; the
// service layer recomputes every figure wholesale on each mutation so
// subtotal, tax, freight and grand total never drift apart.
package pricing

import "math"

// PPN11Rate is the Indonesian VAT rate applied to PPN11-coded lines.
const PPN11Rate = 0.11

// TaxCodePPN11 marks a line as subject to the 11% VAT.
const TaxCodePPN11 = "PPN11"

// Line is the pricing view of one document line.
type Line struct {
	Qty      float64
	Price    float64
	Discount float64 // percent, 0..100
	TaxCode  string
}

// Totals holds the four derived document figures.
type Totals struct {
	Subtotal   float64
	Tax        float64
	Freight    float64
	GrandTotal float64
}

// LineAmount is the discounted line subtotal, before tax. Negative or
// missing inputs count as zero.
func LineAmount(l Line) float64 {
	qty := clamp(l.Qty)
	price := clamp(l.Price)
	disc := l.Discount
	if disc < 0 {
		disc = 0
	}
	if disc > 100 {
		disc = 100
	}
	return qty * price * (1 - disc/100)
}

// LineTax is the VAT for one line, rounded to the nearest rupiah.
// Only PPN11-coded lines are taxed.
func LineTax(l Line) float64 {
	if l.TaxCode != TaxCodePPN11 {
		return 0
	}
	return math.Round(LineAmount(l) * PPN11Rate)
}

// Compute re-derives all totals from the lines and freight charge.
func Compute(lines []Line, freight float64) Totals {
	t := Totals{Freight: clamp(freight)}
	for _, l := range lines {
		t.Subtotal += LineAmount(l)
		t.Tax += LineTax(l)
	}
	t.GrandTotal = t.Subtotal + t.Tax + t.Freight
	return t
}

func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
