package domain

import "time"

// NotificationType tags a notification for icon/filter purposes.
type NotificationType string

const (
	NotificationOrder     NotificationType = "order"
	NotificationSystem    NotificationType = "system"
	NotificationPromotion NotificationType = "promotion"
	NotificationSecurity  NotificationType = "security"
)

// NotificationPriority orders how prominently a notification is surfaced.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationOrder, NotificationSystem, NotificationPromotion, NotificationSecurity:
		return true
	}
	return false
}

func (p NotificationPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Category    string    `db:"category" json:"category"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Availability is the derived stock status surfaced on product cards.
type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

// CartItem is a product the user intends to buy. Quantity stays within
// [1, Product.Stock]; a quantity that would drop below 1 removes the item.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (it CartItem) Subtotal() float64 {
	return it.Product.Price * float64(it.Quantity)
}

type Notification struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Type      NotificationType     `json:"type"`
	Priority  NotificationPriority `json:"priority"`
	Read      bool                 `json:"read"`
	Link      string               `json:"link,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// NotificationDraft is a notification payload before the store assigns an
// identifier and timestamp. Drafts arrive from handlers and from the realtime
// channel.
type NotificationDraft struct {
	Title    string               `json:"title"`
	Message  string               `json:"message"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`
	Link     string               `json:"link,omitempty"`
}
