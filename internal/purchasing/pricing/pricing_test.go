package pricing

import "testing"

func TestComputeTwoTaxedLines(t *testing.T) {
	lines := []Line{
		{Qty: 1, Price: 129000, TaxCode: TaxCodePPN11},
		{Qty: 1, Price: 145000, TaxCode: TaxCodePPN11},
	}
	got := Compute(lines, 0)
	if got.Subtotal != 274000 {
		t.Errorf("subtotal = %v, want 274000", got.Subtotal)
	}
	if got.Tax != 30140 {
		t.Errorf("tax = %v, want 30140", got.Tax)
	}
	if got.GrandTotal != 304140 {
		t.Errorf("grand total = %v, want 304140", got.GrandTotal)
	}
}

func TestComputeWithFreight(t *testing.T) {
	lines := []Line{
		{Qty: 1, Price: 129000, TaxCode: TaxCodePPN11},
		{Qty: 1, Price: 145000, TaxCode: TaxCodePPN11},
	}
	got := Compute(lines, 25000)
	if got.GrandTotal != 329140 {
		t.Errorf("grand total = %v, want 329140", got.GrandTotal)
	}
	if got.Freight != 25000 {
		t.Errorf("freight = %v, want 25000", got.Freight)
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, 0)
	if got.Subtotal != 0 || got.Tax != 0 || got.Freight != 0 || got.GrandTotal != 0 {
		t.Errorf("empty document totals = %+v, want all zero", got)
	}
}

func TestLineTax(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want float64
	}{
		{"ppn11", Line{Qty: 1, Price: 129000, TaxCode: TaxCodePPN11}, 14190},
		{"ppn11 rounds", Line{Qty: 1, Price: 61000, TaxCode: TaxCodePPN11}, 6710},
		{"non taxable", Line{Qty: 1, Price: 129000, TaxCode: "NON"}, 0},
		{"no code", Line{Qty: 1, Price: 129000}, 0},
		{"ppn11 with discount", Line{Qty: 2, Price: 100000, Discount: 50, TaxCode: TaxCodePPN11}, 11000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTax(tt.line); got != tt.want {
				t.Errorf("LineTax(%+v) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestLineAmountClampsBadInputs(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want float64
	}{
		{"negative qty", Line{Qty: -3, Price: 1000}, 0},
		{"negative price", Line{Qty: 3, Price: -1000}, 0},
		{"discount over 100", Line{Qty: 1, Price: 1000, Discount: 150}, 0},
		{"negative discount", Line{Qty: 1, Price: 1000, Discount: -10}, 1000},
		{"zero value line", Line{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineAmount(tt.line); got != tt.want {
				t.Errorf("LineAmount(%+v) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestComputeNegativeFreight(t *testing.T) {
	got := Compute([]Line{{Qty: 1, Price: 1000}}, -500)
	if got.Freight != 0 {
		t.Errorf("freight = %v, want 0", got.Freight)
	}
	if got.GrandTotal != 1000 {
		t.Errorf("grand total = %v, want 1000", got.GrandTotal)
	}
}

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{335000, "Rp 335.000"},
		{0, "Rp 0"},
		{1234567, "Rp 1.234.567"},
	}
	for _, tt := range tests {
		if got := FormatIDR(tt.amount); got != tt.want {
			t.Errorf("FormatIDR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
