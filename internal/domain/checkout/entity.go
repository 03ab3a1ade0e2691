// internal/domain/checkout/entity.go
package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/jewelry-storefront/internal/domain/cart"
)

// Totals is the authoritative checkout pricing breakdown. It is derived,
// never persisted, and recomputed whenever the cart or the buyer's tax
// jurisdiction changes.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	ExemptAmount  decimal.Decimal `json:"exempt_amount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Summary is the complete checkout view handed to the presentation layer
type Summary struct {
	Items  []cart.Item `json:"items"`
	Totals Totals      `json:"totals"`
	State  string      `json:"state"`
	// Degraded marks totals computed from the stale persisted cart because
	// the catalog refresh failed; checkout proceeds rather than blocking.
	Degraded bool `json:"degraded,omitempty"`
}

// AmountString formats the grand total the way the payment collaborator
// requires it: a fixed two-decimal string
func (t Totals) AmountString() string {
	return t.GrandTotal.StringFixed(2)
}
