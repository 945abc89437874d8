package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hooks/internal/catalog"
	"hooks/internal/log"
	"hooks/internal/metrics"
	"hooks/internal/store"
	"hooks/internal/validate"
)

type CartHandler struct {
	Cart    *store.Cart
	Catalog *catalog.Catalog
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return render(c, "cart", fiber.Map{
		"Items": h.Cart.Items(),
		"Total": h.Cart.Total(),
		"Count": h.Cart.Len(),
	})
}

// State returns the cart as JSON for the header badge and the cart page.
func (h *CartHandler) State(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.Cart.Items(),
		"total": h.Cart.Total(),
		"count": h.Cart.Len(),
	})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	if err := h.Cart.AddItem(p); err != nil {
		if errors.Is(err, store.ErrOutOfStock) {
			// Soft condition: tell the user, change nothing.
			log.Info(c, "cart.add.out_of_stock", map[string]any{"product": id})
			return c.Status(fiber.StatusConflict).Render("cart", fiber.Map{
				"Items": h.Cart.Items(), "Total": h.Cart.Total(), "Count": h.Cart.Len(),
				"Err": p.Name + " is out of stock",
			})
		}
		return c.Status(500).SendString(err.Error())
	}

	metrics.CartMutations.WithLabelValues("add").Inc()
	log.Info(c, "cart.add", map[string]any{"product": id})
	return c.Redirect("/cart")
}

// Update sets the quantity for one line; a requested quantity below 1
// removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := c.FormValue("qty")
	if qty == "0" || qty == "-1" {
		h.Cart.SetQuantity(id, 0)
	} else {
		h.Cart.SetQuantity(id, validate.Qty(qty))
	}

	metrics.CartMutations.WithLabelValues("update").Inc()
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	h.Cart.RemoveItem(id)
	metrics.CartMutations.WithLabelValues("remove").Inc()
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.Cart.Clear()
	metrics.CartMutations.WithLabelValues("clear").Inc()
	log.Info(c, "cart.clear", nil)
	return c.Redirect("/cart")
}
