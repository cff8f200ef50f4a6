// =============================================================================
// PO Reconciliation - Column Detector
// =============================================================================
//
// This module maps located headers to semantic roles (SKU, price, name,
// quantity, plus the extended capture fields) via alias dictionaries and
// fuzzy substring matching.
//
// MATCHING STRATEGY (per role, short-circuit evaluation):
//   1. Normalize all headers (trim, lowercase)
//   2. Exact match   : first header equal to any alias, in alias list order
//   3. Substring     : first header that contains any alias
//   4. Reverse substring: first header contained inside an alias, gated by
//      header length >= 3 so a one-letter header cannot match everything
//   5. No match      : the role stays unassigned
//
// DETERMINISM:
//   Alias list order and header order are both significant. Ties always
//   resolve to the earliest-declared alias, then the earliest-occurring
//   header, so identical headers always produce identical role assignments.
//
// =============================================================================

package columns

import "strings"

// =============================================================================
// ROLE ASSIGNMENT
// =============================================================================

// Roles maps semantic roles to header names. Each field holds at most one
// header name; the empty string means the role was not resolved.
type Roles struct {
	SKU   string
	Price string
	Name  string
	Qty   string
}

// Valid reports whether the assignment is usable for reconciliation.
// SKU and price are the two roles the engine cannot work without.
func (r Roles) Valid() bool {
	return r.SKU != "" && r.Price != ""
}

// Missing lists the required roles that remain unresolved, for user-facing
// "needs manual column selection" messages.
func (r Roles) Missing() []string {
	var missing []string
	if r.SKU == "" {
		missing = append(missing, "sku")
	}
	if r.Price == "" {
		missing = append(missing, "price")
	}
	return missing
}

// ExtendedRoles adds the capture-path fields used when staging a PO for
// order entry. These are optional everywhere.
type ExtendedRoles struct {
	Roles
	DeliveryDate string
	PORef        string
	Customer     string
	UOM          string
	LineTotal    string
}

// =============================================================================
// ALIAS DICTIONARIES
// =============================================================================
// Order matters: earlier aliases win ties.

var skuAliases = []string{
	"sku", "item number", "product code", "part number", "item no",
	"item #", "material", "product id", "article", "upc", "item",
}

var priceAliases = []string{
	"unit price", "price", "unit cost", "cost", "rate", "amount",
}

var nameAliases = []string{
	"description", "product name", "item name", "name", "product", "details",
}

var qtyAliases = []string{
	"qty", "quantity", "units ordered", "order qty", "units", "count",
}

var deliveryDateAliases = []string{
	"delivery date", "ship date", "due date", "requested date", "delivery",
}

var poRefAliases = []string{
	"po number", "po ref", "purchase order", "order number", "po #", "order ref",
}

var customerAliases = []string{
	"customer", "account", "client", "sold to", "buyer",
}

var uomAliases = []string{
	"uom", "unit of measure", "pack size", "pack", "measure",
}

var lineTotalAliases = []string{
	"line total", "total price", "extended price", "ext price", "total",
}

// =============================================================================
// DETECTION
// =============================================================================

// Detect resolves the four core roles against the given headers.
func Detect(headers []string) Roles {
	normalized := normalizeAll(headers)

	return Roles{
		SKU:   findRole(headers, normalized, skuAliases),
		Price: findRole(headers, normalized, priceAliases),
		Name:  findRole(headers, normalized, nameAliases),
		Qty:   findRole(headers, normalized, qtyAliases),
	}
}

// DetectExtended resolves the core roles plus the capture-path fields.
func DetectExtended(headers []string) ExtendedRoles {
	normalized := normalizeAll(headers)

	return ExtendedRoles{
		Roles:        Detect(headers),
		DeliveryDate: findRole(headers, normalized, deliveryDateAliases),
		PORef:        findRole(headers, normalized, poRefAliases),
		Customer:     findRole(headers, normalized, customerAliases),
		UOM:          findRole(headers, normalized, uomAliases),
		LineTotal:    findRole(headers, normalized, lineTotalAliases),
	}
}

// findRole runs the three matching passes for one role and returns the
// original (non-normalized) header name, or "" when nothing matches.
// The passes are kept separate so each tie-break rule stays independently
// testable.
func findRole(headers, normalized, aliases []string) string {
	if i := matchExact(normalized, aliases); i >= 0 {
		return headers[i]
	}
	if i := matchSubstring(normalized, aliases); i >= 0 {
		return headers[i]
	}
	if i := matchReverseSubstring(normalized, aliases); i >= 0 {
		return headers[i]
	}
	return ""
}

// matchExact returns the index of the first header equal to any alias,
// walking aliases in declaration order.
func matchExact(normalized, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range normalized {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

// matchSubstring returns the index of the first header that contains any
// alias as a substring.
func matchSubstring(normalized, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range normalized {
			if h != "" && strings.Contains(h, alias) {
				return i
			}
		}
	}
	return -1
}

// matchReverseSubstring returns the index of the first header contained
// inside an alias. Headers shorter than 3 characters are skipped so a
// header like "a" cannot spuriously match every alias.
func matchReverseSubstring(normalized, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range normalized {
			if len(h) >= 3 && strings.Contains(alias, h) {
				return i
			}
		}
	}
	return -1
}

func normalizeAll(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return normalized
}
