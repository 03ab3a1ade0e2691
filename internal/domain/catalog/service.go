// internal/domain/catalog/service.go
package catalog

import (
	"strings"

	"github.com/your-org/jewelry-storefront/internal/domain/pricing"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// DefaultPageSize is the storefront grid page size
const DefaultPageSize = 24

// MaterialFilter maps a storefront material key to a product field filter
type MaterialFilter struct {
	Field string // "color" or "category"
	Value string
	Label string
}

// Materials maps the navigation material keys to their filters
var Materials = map[string]MaterialFilter{
	"yellow-gold":    {Field: "color", Value: "Yellow Gold", Label: "Yellow Gold"},
	"white-gold":     {Field: "color", Value: "White Gold", Label: "White Gold"},
	"silver":         {Field: "color", Value: "Silver", Label: "Silver Jewelry"},
	"diamonds":       {Field: "category", Value: "diamonds", Label: "Diamond Jewelry"},
	"coins-bullions": {Field: "category", Value: product.CategoryBullion, Label: "Coins & Bullions"},
}

// Collection is a navigable category tile shown in the category-grid view
type Collection struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Image string `json:"image"`
}

// yellowGoldCollections is the curated tile order for the yellow gold root
var yellowGoldCollections = []Collection{
	{ID: "necklaces", Label: "Necklaces", Image: "assets/cat_necklaces.png"},
	{ID: "bangles", Label: "Bangles", Image: "assets/cat_bangles.png"},
	{ID: "chains", Label: "Chains", Image: "assets/cat_chains.png"},
	{ID: "rings", Label: "Rings", Image: "assets/cat_rings.png"},
	{ID: "earrings", Label: "Earrings", Image: "assets/cat_earrings.png"},
	{ID: "bracelets", Label: "Bracelets", Image: "assets/cat_bracelets.png"},
	{ID: "pendants", Label: "Pendants", Image: "assets/cat_pendants.png"},
	{ID: "coins", Label: "Coins", Image: "assets/cat_coins.png"},
	{ID: "anklets", Label: "Anklets", Image: "assets/cat_anklets.png"},
	{ID: "children", Label: "Children", Image: "assets/cat_children.png"},
	{ID: "mens", Label: "Men's", Image: "assets/cat_mens.png"},
}

// Criteria represents the catalog view selection coming from the UI layer
type Criteria struct {
	Search      string
	Material    string // material key or plain category
	Subcategory string
	MinPrice    int64
	MaxPrice    int64 // 0 means unbounded
}

// Store holds the priced catalog for one data load. Prices are annotated
// exactly once at construction; filtering and pagination never recompute them.
type Store struct {
	products []product.Product
	config   pricing.Config
}

// New builds a priced catalog from raw product records and the pricing config
func New(raw []product.Product, cfg pricing.Config) *Store {
	priced := make([]product.Product, len(raw))
	for i, p := range raw {
		p.Price = pricing.ComputePrice(&p, cfg)
		priced[i] = p
	}
	return &Store{products: priced, config: cfg}
}

// Products returns the full priced catalog in source order
func (s *Store) Products() []product.Product {
	return s.products
}

// PricingConfig returns the config the catalog was priced with
func (s *Store) PricingConfig() pricing.Config {
	return s.config
}

// Featured returns products flagged for the home surface
func (s *Store) Featured() []product.Product {
	var out []product.Product
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// FindByID resolves a product by id, falling back to the itemNo key that
// legacy records used as their identifier
func (s *Store) FindByID(id string) (*product.Product, bool) {
	for i := range s.products {
		if string(s.products[i].ID) == id {
			return &s.products[i], true
		}
	}
	for i := range s.products {
		if s.products[i].ItemNo != "" && string(s.products[i].ItemNo) == id {
			return &s.products[i], true
		}
	}
	return nil, false
}

// Filter returns the leaf product view for the given criteria, preserving
// catalog order. Search wins over category navigation; every search token
// must match (AND semantics). The price range applies only here, never to
// the category-grid view.
func (s *Store) Filter(c Criteria) []product.Product {
	var scope []product.Product

	if term := strings.TrimSpace(c.Search); term != "" {
		tokens := strings.Fields(strings.ToLower(term))
		for _, p := range s.products {
			if matchesAllTokens(&p, tokens) {
				scope = append(scope, p)
			}
		}
		return s.applyPriceRange(scope, c)
	}

	scope = s.materialScope(c.Material)

	if c.Subcategory != "" {
		var narrowed []product.Product
		for _, p := range scope {
			if p.Category == c.Subcategory {
				narrowed = append(narrowed, p)
			}
		}
		scope = narrowed
	}

	return s.applyPriceRange(scope, c)
}

// IsCategoryGrid reports whether the criteria select the category-grid view:
// a color-mapped material root with no subcategory and no search term.
func (s *Store) IsCategoryGrid(c Criteria) bool {
	if c.Search != "" || c.Subcategory != "" {
		return false
	}
	mat, ok := Materials[c.Material]
	return ok && mat.Field == "color"
}

// CategoryGrid returns the navigable collection tiles for a material root.
// Yellow gold uses the curated tile list; other materials derive tiles from
// the distinct categories found in scope, first-seen order.
func (s *Store) CategoryGrid(materialKey string) []Collection {
	scope := s.materialScope(materialKey)

	if materialKey == "yellow-gold" {
		tiles := make([]Collection, len(yellowGoldCollections))
		copy(tiles, yellowGoldCollections)
		for i := range tiles {
			if sample := firstInCategory(s.products, tiles[i].ID); sample != nil && sample.Image != "" {
				tiles[i].Image = sample.Image
			}
		}
		return tiles
	}

	var tiles []Collection
	seen := make(map[string]bool)
	for _, p := range scope {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		image := p.Image
		if image == "" {
			image = "assets/placeholder.png"
		}
		tiles = append(tiles, Collection{
			ID:    p.Category,
			Label: titleCase(p.Category),
			Image: image,
		})
	}
	return tiles
}

// CategoriesInScope returns the distinct categories within a material scope,
// first-seen order, for the sidebar navigation
func (s *Store) CategoriesInScope(materialKey string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range s.materialScope(materialKey) {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Label returns the display title for a material key or category
func Label(materialKey string) string {
	if mat, ok := Materials[materialKey]; ok {
		return mat.Label
	}
	return titleCase(materialKey)
}

// Page is the cumulative pagination window: page N reveals the first
// N*pageSize items, matching the storefront's load-more behavior
type Page struct {
	Items    []product.Product `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int               `json:"total"`
	HasMore  bool              `json:"has_more"`
}

// Paginate slices the filtered set cumulatively. Page numbers below one are
// treated as the first page.
func Paginate(items []product.Product, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	end := page * pageSize
	hasMore := end < len(items)
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:    items[:end],
		Page:     page,
		PageSize: pageSize,
		Total:    len(items),
		HasMore:  hasMore,
	}
}

// Private helpers

func (s *Store) materialScope(key string) []product.Product {
	if key == "" {
		return s.products
	}

	mat, isMaterial := Materials[key]

	var scope []product.Product
	for _, p := range s.products {
		switch {
		case isMaterial && mat.Field == "color":
			if p.ColorOrDefault() == mat.Value {
				scope = append(scope, p)
			}
		case isMaterial:
			if p.Category == mat.Value {
				scope = append(scope, p)
			}
		default:
			// Plain category key, e.g. "rings"
			if p.Category == key {
				scope = append(scope, p)
			}
		}
	}
	return scope
}

func (s *Store) applyPriceRange(items []product.Product, c Criteria) []product.Product {
	if c.MinPrice <= 0 && c.MaxPrice <= 0 {
		return items
	}

	var out []product.Product
	for _, p := range items {
		if p.Price < c.MinPrice {
			continue
		}
		if c.MaxPrice > 0 && p.Price > c.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesAllTokens(p *product.Product, tokens []string) bool {
	haystack := p.SearchText()
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

func firstInCategory(items []product.Product, category string) *product.Product {
	for i := range items {
		if items[i].Category == category {
			return &items[i]
		}
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
