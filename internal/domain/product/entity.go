// internal/domain/product/entity.go
package product

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Metal names used by the bullion pricing branch
const (
	MetalGold     = "Gold"
	MetalSilver   = "Silver"
	MetalPlatinum = "Platinum"
)

// Weight units for bullion items
const (
	UnitOunce = "oz"
	UnitGram  = "g"
)

// CategoryBullion is the category that selects the bullion pricing branch
const CategoryBullion = "coins-bullions"

// DefaultColor is assumed when a product record carries no color
const DefaultColor = "Yellow Gold"

// WeightKind discriminates the weight variant
type WeightKind int

const (
	// WeightFixed is a concrete weight in grams
	WeightFixed WeightKind = iota
	// WeightVaries marks items sold in assorted weights (never dynamically priced)
	WeightVaries
	// WeightNotApplicable marks items where weight is meaningless (never dynamically priced)
	WeightNotApplicable
)

// Weight is the product weight decided once at data ingestion. Upstream
// documents carry either a number of grams or the sentinel strings
// "Varies" / "N/A"; anything unparseable is treated as not applicable so
// pricing falls back to the fixed price.
type Weight struct {
	Kind  WeightKind
	Grams float64
}

// Grams constructs a fixed weight
func GramsWeight(g float64) Weight {
	return Weight{Kind: WeightFixed, Grams: g}
}

// IsNumeric reports whether the weight carries a concrete gram value
func (w Weight) IsNumeric() bool {
	return w.Kind == WeightFixed
}

// String renders the weight the way the source documents carry it
func (w Weight) String() string {
	switch w.Kind {
	case WeightVaries:
		return "Varies"
	case WeightNotApplicable:
		return "N/A"
	default:
		return strconv.FormatFloat(w.Grams, 'f', -1, 64)
	}
}

// UnmarshalJSON accepts a number, a numeric string, or the sentinel strings
func (w *Weight) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*w = Weight{Kind: WeightFixed, Grams: num}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*w = Weight{Kind: WeightNotApplicable}
		return nil
	}

	switch strings.TrimSpace(str) {
	case "Varies":
		*w = Weight{Kind: WeightVaries}
		return nil
	case "N/A", "":
		*w = Weight{Kind: WeightNotApplicable}
		return nil
	}

	if num, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
		*w = Weight{Kind: WeightFixed, Grams: num}
		return nil
	}

	*w = Weight{Kind: WeightNotApplicable}
	return nil
}

// MarshalJSON emits the source document representation
func (w Weight) MarshalJSON() ([]byte, error) {
	if w.Kind == WeightFixed {
		return json.Marshal(w.Grams)
	}
	return json.Marshal(w.String())
}

// FlexID is a string identifier that tolerates numeric JSON values, since
// older product documents carry numeric ids
type FlexID string

// UnmarshalJSON accepts a JSON string or number
func (f *FlexID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexID(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = FlexID(num.String())
	return nil
}

// Product represents a catalog product record. Price is annotated by the
// pricing engine after ingestion; the raw documents never carry it.
type Product struct {
	ID            FlexID  `json:"id"`
	ItemNo        FlexID  `json:"itemNo,omitempty"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Color         string  `json:"color,omitempty"`
	Karat         float64 `json:"karat,omitempty"`
	Weight        Weight  `json:"weight"`
	IsDynamic     bool    `json:"isDynamic"`
	FixedPrice    float64 `json:"fixedPrice,omitempty"`
	MarginPercent float64 `json:"marginPercent,omitempty"`
	LaborPerGram  float64 `json:"laborPerGram,omitempty"`
	Metal         string  `json:"metal,omitempty"`
	Premium       float64 `json:"premium,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	OutOfStock    bool    `json:"outOfStock,omitempty"`
	Featured      bool    `json:"featured,omitempty"`
	Image         string  `json:"image,omitempty"`
	Description   string  `json:"description,omitempty"`
	Price         int64   `json:"price"`
}

// ColorOrDefault returns the product color, defaulting missing colors to
// yellow gold the way the storefront data is curated
func (p *Product) ColorOrDefault() string {
	if p.Color == "" {
		return DefaultColor
	}
	return p.Color
}

// IsBullion reports whether the product prices on the bullion branch
func (p *Product) IsBullion() bool {
	return p.Category == CategoryBullion
}

// SearchText returns the lower-cased haystack used by free-text search
func (p *Product) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		p.Name,
		string(p.ID),
		string(p.ItemNo),
		p.Category,
		p.Description,
		p.ColorOrDefault(),
	}, " "))
}
