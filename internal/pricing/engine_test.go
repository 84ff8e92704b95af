package pricing

import "testing"

func TestComputeMatchesIndependentRecomputation(t *testing.T) {
	items := []Item{
		{Qty: 2, UnitPrice: 12000},
		{Qty: 1, UnitPrice: 10000},
		{Qty: 3, UnitPrice: 4550},
	}
	var want Money
	for _, it := range items {
		want += Money(it.Qty) * it.UnitPrice
	}
	summary := Compute(items, 700)
	if summary.Subtotal != want {
		t.Fatalf("subtotal %d, want %d", summary.Subtotal, want)
	}
	if summary.Total != summary.Subtotal+summary.Tax {
		t.Fatalf("total %d != subtotal %d + tax %d", summary.Total, summary.Subtotal, summary.Tax)
	}
	if summary.Total < summary.Subtotal {
		t.Fatalf("total %d below subtotal %d", summary.Total, summary.Subtotal)
	}
}

func TestComputeSevenPercentScenario(t *testing.T) {
	// 2 x 120.00 + 1 x 100.00 at 7% tax.
	items := []Item{
		{Qty: 2, UnitPrice: 12000},
		{Qty: 1, UnitPrice: 10000},
	}
	summary := Compute(items, 700)
	if summary.Subtotal != 34000 {
		t.Fatalf("subtotal %d, want 34000", summary.Subtotal)
	}
	if summary.Tax != 2380 {
		t.Fatalf("tax %d, want 2380", summary.Tax)
	}
	if summary.Total != 36380 {
		t.Fatalf("total %d, want 36380", summary.Total)
	}
}

func TestTaxRoundsHalfUp(t *testing.T) {
	// 10.01 at 7% = 0.7007 -> 0.70; 15.00 at 3.33% = 0.49950 -> 0.50.
	if got := TaxOn(1001, 700); got != 70 {
		t.Fatalf("tax %d, want 70", got)
	}
	if got := TaxOn(1500, 333); got != 50 {
		t.Fatalf("tax %d, want 50", got)
	}
}

func TestComputeIgnoresDegenerateLines(t *testing.T) {
	items := []Item{
		{Qty: 0, UnitPrice: 5000},
		{Qty: -2, UnitPrice: 5000},
		{Qty: 1, UnitPrice: 2500},
	}
	summary := Compute(items, 0)
	if summary.Subtotal != 2500 {
		t.Fatalf("subtotal %d, want 2500", summary.Subtotal)
	}
	if summary.Tax != 0 || summary.Total != 2500 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
