package model

import "github.com/shopspring/decimal"

const (
	MinCartQty = 1
	MaxCartQty = 99
)

// TaxRate 固定 2% 附加稅, 運費一律免費
var TaxRate = decimal.NewFromFloat(0.02)

// CartEntries artwork id -> quantity
type CartEntries map[string]int

func ValidCartQty(qty int) bool {
	return qty >= MinCartQty && qty <= MaxCartQty
}

// Count 購物車內件數 (header badge 使用)
func (c CartEntries) Count() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ComputeTotals tax = round(subtotal * 0.02), grand = subtotal + tax
func ComputeTotals(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(TaxRate).Round(0)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   decimal.Zero,
		GrandTotal: subtotal.Add(tax),
	}
}
