package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"hooks/internal/catalog"
	"hooks/internal/log"
	"hooks/internal/search"
	"hooks/internal/validate"
)

type SearchHandler struct {
	Catalog *catalog.Catalog
}

// Search handles a submitted full search (Enter with no suggestion selected):
// the whole match set, not the 5-row autocomplete slice.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}

	q = strings.ToLower(q)
	var products []fiber.Map
	for _, p := range h.Catalog.Products() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			products = append(products, fiber.Map{"P": p})
		}
	}

	return render(c, "search", fiber.Map{
		"Q": q, "Products": products, "Count": len(products),
	})
}

// Suggest backs the autocomplete dropdown: at most 5 matches, none below the
// 2-character threshold.
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	q := c.Query("q")
	suggestions := search.Suggest(h.Catalog.Products(), q)
	if suggestions == nil {
		// Below threshold or no hits: the surface closes client-side.
		return c.JSON(fiber.Map{"suggestions": []any{}})
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}
