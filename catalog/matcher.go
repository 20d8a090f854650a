package catalog

import "strings"

// legacyKeywords maps pre-migration filter slugs to the product_type
// substrings they accept. This table only exists so records that never got
// relational categories stay reachable from the navigation; retire it once
// the historical data is migrated.
var legacyKeywords = map[string][]string{
	"mdvr-basic":    {"basic version mdvr"},
	"mdvr-enhanced": {"enhanced version mdvr"},
	"mdvr-ai":       {"ai version mdvr"},
	"mdvr":          {"mdvr"},
	"dashcam":       {"dashcam"},
	"camera":        {"camera", "bullet", "dome"},
	"rfid":          {"rfid", "tag", "reader"},
	"accessories":   {"monitor", "accessories", "cable", "sensor"},
}

// MatchesCategory reports whether a product belongs to the filter bucket.
// An empty filter matches everything. Strategies in priority order:
//
//  1. Relational: the product's category or subcategory val equals the
//     filter slug.
//  2. Legacy keyword table: substring containment on the lowercased
//     free-text product_type.
//  3. Dynamic: the filter resolves to a live category tree node and the
//     lowercased product_type equals that node's lowercased name.
//
// Stage 3 requires exact equality: a subcategory named "Indoor" must not
// pick up products typed "Indoor Camera".
func MatchesCategory(p Product, filter string, cats []Category) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)

	if p.Category != nil && strings.EqualFold(p.Category.Val, f) {
		return true
	}
	if p.Subcategory != nil && strings.EqualFold(p.Subcategory.Val, f) {
		return true
	}

	typ := strings.ToLower(p.ProductType)

	if keywords, ok := legacyKeywords[f]; ok {
		for _, kw := range keywords {
			if strings.Contains(typ, kw) {
				return true
			}
		}
		return false
	}

	if node, ok := Resolve(cats, BySlug(f)); ok {
		return typ == strings.ToLower(node.Name)
	}
	return false
}

// FilterProducts returns the products matching the filter, preserving order.
func FilterProducts(products []Product, filter string, cats []Category) []Product {
	if filter == "" {
		return products
	}
	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if MatchesCategory(p, filter, cats) {
			matched = append(matched, p)
		}
	}
	return matched
}
