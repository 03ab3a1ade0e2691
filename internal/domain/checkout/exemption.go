// internal/domain/checkout/exemption.go
package checkout

import (
	"strings"

	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// exemptIDPrefix marks bullion stock codes issued before categories existed
const exemptIDPrefix = "CB"

// exemptNameKeywords catches historically miscategorized bullion items by
// name; MKHAMAS is the transliterated local term for gold bars
var exemptNameKeywords = []string{
	"BAR",
	"BULLION",
	"COIN",
	"SOVEREIGN",
	"OUNCE",
	"1 OZ",
	"MKHAMAS",
}

// IsExempt reports whether a product is exempt from sales tax. Investment
// bullion is not taxed; the id-prefix and name-keyword checks are deliberate
// fallbacks for legacy records whose category field is wrong, layered over
// the structural category check. Keep all three.
func IsExempt(p *product.Product) bool {
	if strings.HasPrefix(strings.ToUpper(string(p.ID)), exemptIDPrefix) {
		return true
	}

	if strings.EqualFold(strings.TrimSpace(p.Category), product.CategoryBullion) {
		return true
	}

	name := strings.ToUpper(p.Name)
	for _, keyword := range exemptNameKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}

	return false
}
