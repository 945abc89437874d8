package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hooks/internal/catalog"
)

// PagesHandler serves the mostly-static storefront pages.
type PagesHandler struct {
	Catalog *catalog.Catalog
}

type deal struct {
	ID          string
	Title       string
	Description string
	EndsIn      string
	Type        string
	Discount    string
}

var featuredDeals = []deal{
	{ID: "flash-sale", Title: "Flash Sale", Description: "Limited time offers with massive discounts", EndsIn: "2h 45m", Type: "time-limited", Discount: "50%"},
	{ID: "clearance", Title: "Clearance", Description: "End of season clearance sale", Type: "ongoing", Discount: "70%"},
	{ID: "bundle", Title: "Bundle Deals", Description: "Save more when you buy together", Type: "bundle", Discount: "30%"},
}

func (h *PagesHandler) Deals(c *fiber.Ctx) error {
	products := h.Catalog.Filter(catalog.FilterOptions{SortBy: catalog.SortPriceLow})
	if len(products) > 8 {
		products = products[:8]
	}
	return render(c, "deals", fiber.Map{"Deals": featuredDeals, "Products": products})
}

func (h *PagesHandler) Orders(c *fiber.Ctx) error {
	return render(c, "orders", nil)
}

func (h *PagesHandler) Profile(c *fiber.Ctx) error {
	return render(c, "profile", nil)
}

func (h *PagesHandler) Settings(c *fiber.Ctx) error {
	return render(c, "settings", nil)
}

func (h *PagesHandler) Support(c *fiber.Ctx) error {
	return render(c, "support", nil)
}
