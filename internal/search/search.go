// Package search implements the autocomplete surface: a linear substring
// suggester over the in-memory catalog and the keyboard selection model for
// the suggestion list.
package search

import (
	"strings"

	"hooks/internal/domain"
)

const (
	// MinQueryLen is the threshold below which no suggestions are produced.
	MinQueryLen = 2
	// MaxSuggestions bounds the suggestion list.
	MaxSuggestions = 5
)

// Suggest returns up to MaxSuggestions products whose name or description
// contains the query, case-insensitively, in catalog order. Queries shorter
// than MinQueryLen (after trimming) yield nil. The catalog is small and
// rebuilt per session, so a linear scan is the whole algorithm.
func Suggest(products []domain.Product, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinQueryLen {
		return nil
	}

	var out []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}
