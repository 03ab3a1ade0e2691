// internal/domain/pricing/entity.go
package pricing

// DefaultGramsPerOunce is the troy-ounce-to-gram conversion used when the
// pricing document omits the value (the admin tool does not always save it)
const DefaultGramsPerOunce = 31.1035

// Config is the live spot-metal pricing document
type Config struct {
	SpotPrice24kOunce  float64 `json:"spotPrice24kOunce"`
	SilverPriceOunce   float64 `json:"silverPriceOunce"`
	PlatinumPriceOunce float64 `json:"platinumPriceOunce"`
	GramsPerOunce      float64 `json:"gramsPerOunce"`
}

// EffectiveGramsPerOunce returns the configured conversion, falling back to
// the default when missing or zero
func (c Config) EffectiveGramsPerOunce() float64 {
	if c.GramsPerOunce <= 0 {
		return DefaultGramsPerOunce
	}
	return c.GramsPerOunce
}
