package handlers

import (
	"hooks/internal/catalog"
	"hooks/internal/services"
	"hooks/internal/store"
)

type Deps struct {
	ProductHandler      *ProductHandler
	SearchHandler       *SearchHandler
	CartHandler         *CartHandler
	NotificationHandler *NotificationHandler
	PagesHandler        *PagesHandler
}

// NewDeps wires handlers to the injected state containers. Stores are
// constructed at application start and passed by reference; a nil store here
// is a wiring defect, so we fail loudly at boot rather than limp at runtime.
func NewDeps(cat *catalog.Catalog, cart *store.Cart, notes *store.Notifications, auth *services.AuthService) *Deps {
	if cat == nil || cart == nil || notes == nil || auth == nil {
		panic("handlers: NewDeps called with nil dependency")
	}

	return &Deps{
		ProductHandler:      &ProductHandler{Catalog: cat},
		SearchHandler:       &SearchHandler{Catalog: cat},
		CartHandler:         &CartHandler{Cart: cart, Catalog: cat},
		NotificationHandler: &NotificationHandler{Store: notes},
		PagesHandler:        &PagesHandler{Catalog: cat},
	}
}
