// =============================================================================
// PO Reconciliation - SKU Matching
// =============================================================================
//
// This file builds the ERP lookup index and implements the two-stage SKU
// match: exact first, then proper-prefix. The prefix stage models the
// core-number-to-variant correspondence between supplier catalogs and ERP
// systems: a customer orders "1234" and the ERP carries "1234V012".
//
// The match step returns a tagged result rather than nullable fields so
// downstream classification cannot accidentally treat an ambiguous case as
// unmatched or matched.
//
// =============================================================================

package recon

import "strings"

// =============================================================================
// ERP INDEX
// =============================================================================

// erpEntry is one normalized ERP line inside the lookup index.
type erpEntry struct {
	// key is the normalized SKU; rawSKU preserves the original spelling.
	key    string
	rawSKU string

	name string
	qty  string

	// price is nil when the ERP cell failed numeric parsing; priceText
	// keeps the original cell for warning messages.
	price     *float64
	priceText string

	// duplicate is true when the normalized SKU recurred in the export.
	duplicate bool

	// matched flips to true once a PO line consumes this entry. Entries
	// still unmatched after the PO pass become "Not in PO" rows.
	matched bool
}

// erpIndex is the normalized-SKU lookup plus the insertion order, which
// keeps prefix scans and the unmatched sweep deterministic.
type erpIndex struct {
	entries map[string]*erpEntry
	order   []string
}

// normalizeSKU trims and uppercases an identifier for matching.
func normalizeSKU(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// buildERPIndex normalizes every ERP row into the lookup index.
//
// DUPLICATE POLICY:
//   When a normalized SKU recurs, the last occurrence's values win. This is
//   a deliberate overwrite-on-duplicate policy, not an error; the entry is
//   flagged duplicate so affected output rows disclose it.
func buildERPIndex(rows []map[string]string, skuCol, priceCol, nameCol, qtyCol string) *erpIndex {
	idx := &erpIndex{entries: make(map[string]*erpEntry, len(rows))}

	for _, row := range rows {
		key := normalizeSKU(row[skuCol])
		if key == "" {
			continue
		}

		entry := &erpEntry{
			key:       key,
			rawSKU:    strings.TrimSpace(row[skuCol]),
			priceText: row[priceCol],
		}
		if nameCol != "" {
			entry.name = row[nameCol]
		}
		if qtyCol != "" {
			entry.qty = row[qtyCol]
		}
		if v, ok := parseNumber(row[priceCol]); ok {
			entry.price = ptr(v)
		}

		if _, exists := idx.entries[key]; exists {
			// Last occurrence overwrites, duplicate flag sticks.
			entry.duplicate = true
		} else {
			idx.order = append(idx.order, key)
		}
		idx.entries[key] = entry
	}

	return idx
}

// =============================================================================
// MATCH RESULT
// =============================================================================

// matchKind tags the outcome of a single PO-line match attempt.
type matchKind int

const (
	// matchNone: no exact match and zero prefix candidates.
	matchNone matchKind = iota

	// matchExact: the normalized SKUs are identical.
	matchExact

	// matchPrefix: exactly one ERP SKU extends the PO SKU as a proper
	// prefix.
	matchPrefix

	// matchAmbiguous: two or more ERP SKUs extend the PO SKU. The line is
	// deliberately NOT matched to any of them; silently picking the wrong
	// variant risks an incorrect price decision.
	matchAmbiguous
)

// matchResult is the tagged outcome of the match step.
type matchResult struct {
	kind  matchKind
	entry *erpEntry

	// candidates holds the competing ERP SKUs when kind is matchAmbiguous.
	candidates []string
}

// match attempts exact then proper-prefix matching for one normalized PO
// SKU. It does not mark the entry as consumed; the engine does that only
// for accepted matches.
func (idx *erpIndex) match(poKey string) matchResult {
	if entry, ok := idx.entries[poKey]; ok {
		return matchResult{kind: matchExact, entry: entry}
	}

	// Proper prefix: strictly longer ERP SKU starting with the PO SKU.
	var hits []*erpEntry
	for _, key := range idx.order {
		if len(key) > len(poKey) && strings.HasPrefix(key, poKey) {
			hits = append(hits, idx.entries[key])
		}
	}

	switch len(hits) {
	case 0:
		return matchResult{kind: matchNone}
	case 1:
		return matchResult{kind: matchPrefix, entry: hits[0]}
	default:
		candidates := make([]string, len(hits))
		for i, h := range hits {
			candidates[i] = h.key
		}
		return matchResult{kind: matchAmbiguous, candidates: candidates}
	}
}

// unmatched returns the entries no PO line consumed, in insertion order.
func (idx *erpIndex) unmatched() []*erpEntry {
	var out []*erpEntry
	for _, key := range idx.order {
		if entry := idx.entries[key]; !entry.matched {
			out = append(out, entry)
		}
	}
	return out
}
