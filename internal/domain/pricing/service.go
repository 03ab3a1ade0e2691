// internal/domain/pricing/service.go
package pricing

import (
	"math"

	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// ComputePrice converts a product record and the live pricing config into a
// whole-dollar sell price. It is pure and total: malformed records resolve
// through the fixed-price fallback, and the result is always a non-negative
// integer. Dynamic results round UP to the next whole dollar; the ceiling is
// a deliberate retailer-favoring rule and must never become round-to-nearest.
func ComputePrice(item *product.Product, cfg Config) int64 {
	if !item.Weight.IsNumeric() || !item.IsDynamic {
		return clamp(item.FixedPrice)
	}

	if item.IsBullion() {
		return clamp(bullionPrice(item, cfg))
	}

	return clamp(dynamicGoldPrice(item, cfg))
}

// dynamicGoldPrice prices jewelry from the 24k spot price: purity-scaled
// per-gram cost, plus margin percentage, plus labor per gram, times weight.
func dynamicGoldPrice(item *product.Product, cfg Config) float64 {
	purityFactor := item.Karat / 24
	pricePerGram := (cfg.SpotPrice24kOunce / cfg.EffectiveGramsPerOunce()) * purityFactor
	withMargin := pricePerGram * (1 + item.MarginPercent/100)
	withLabor := withMargin + item.LaborPerGram
	return withLabor * item.Weight.Grams
}

// bullionPrice prices coins and bars near spot plus a flat premium. Silver
// and platinum spot prices are already purity-adjusted; gold scales by karat
// (defaulting to pure 24k when the record omits it).
func bullionPrice(item *product.Product, cfg Config) float64 {
	var spot float64
	purityFactor := 1.0

	switch item.Metal {
	case product.MetalSilver:
		spot = cfg.SilverPriceOunce
	case product.MetalPlatinum:
		spot = cfg.PlatinumPriceOunce
	default:
		spot = cfg.SpotPrice24kOunce
		karat := item.Karat
		if karat == 0 {
			karat = 24
		}
		purityFactor = karat / 24
	}

	adjustedSpotPerOunce := spot * purityFactor

	var baseValue float64
	if item.Unit == product.UnitOunce {
		baseValue = adjustedSpotPerOunce * item.Weight.Grams
	} else {
		baseValue = (adjustedSpotPerOunce / cfg.EffectiveGramsPerOunce()) * item.Weight.Grams
	}

	return baseValue + item.Premium
}

// clamp ceils to a whole dollar and pins malformed results at zero
func clamp(v float64) int64 {
	v = math.Ceil(v)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int64(v)
}
