package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"hooks/internal/catalog"
	"hooks/internal/domain"
	"hooks/internal/log"
	"hooks/internal/validate"
)

type ProductHandler struct {
	Catalog *catalog.Catalog
}

func (h *ProductHandler) Home(c *fiber.Ctx) error {
	// Featured strip: first dozen in catalog order.
	products := h.Catalog.Products()
	if len(products) > 12 {
		products = products[:12]
	}
	return render(c, "home", fiber.Map{"Products": products})
}

// List renders the products page with category/price filters and sorting.
// Projections are recomputed per request, never cached.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	opts := catalog.FilterOptions{SortBy: c.Query("sort", catalog.SortFeatured)}
	if cats := strings.TrimSpace(c.Query("category")); cats != "" {
		opts.Categories = strings.Split(cats, ",")
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			opts.MinPrice = f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			opts.MaxPrice = f
		}
	}

	products := h.Catalog.Filter(opts)
	return render(c, "products", fiber.Map{
		"Products": products,
		"Count":    len(products),
		"SortBy":   opts.SortBy,
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}

// Availability reports derived stock status for a product card.
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid productId",
		})
	}
	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	avail := domain.Availability{Qty: p.Stock}
	switch {
	case p.Stock == 0:
		avail.Status = "OUT_OF_STOCK"
	case p.Stock <= 5:
		avail.Status = "LOW_STOCK"
	default:
		avail.Status = "IN_STOCK"
	}
	return c.JSON(avail)
}
