// Package pricing holds the order-total rules shared by carts and orders.
//
// Each user-visible term is rounded half-up to cents before the terms are summed, so a total
// always equals the sum of the figures shown next to it.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Alturino/foodhub/internal/config"
)

const cents = 2

var (
	DefaultDeliveryFee = decimal.RequireFromString("2.99")
	DefaultTaxRate     = decimal.RequireFromString("0.08875")
)

type Pricing struct {
	DeliveryFee decimal.Decimal
	TaxRate     decimal.Decimal
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

func Default() Pricing {
	return Pricing{DeliveryFee: DefaultDeliveryFee, TaxRate: DefaultTaxRate}
}

func FromConfig(cfg config.Pricing) (Pricing, error) {
	fee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return Pricing{}, fmt.Errorf("failed parsing delivery_fee=%s with error=%w", cfg.DeliveryFee, err)
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Pricing{}, fmt.Errorf("failed parsing tax_rate=%s with error=%w", cfg.TaxRate, err)
	}
	if fee.IsNegative() || rate.IsNegative() {
		return Pricing{}, fmt.Errorf("delivery_fee=%s and tax_rate=%s must not be negative", fee, rate)
	}
	return Pricing{DeliveryFee: fee, TaxRate: rate}, nil
}

func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(cents)
}

// Tax is the unrounded tax on subtotal.
func (p Pricing) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate)
}

// Totals computes round(S) + round(fee) + round(S × rate) from the exact subtotal S.
func (p Pricing) Totals(subtotal decimal.Decimal) Totals {
	s := Round(subtotal)
	fee := Round(p.DeliveryFee)
	tax := Round(p.Tax(subtotal))
	return Totals{
		Subtotal:    s,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       s.Add(fee).Add(tax),
	}
}
