package domain

import "github.com/google/uuid"

const placeholderImage = "/placeholder-product.jpg"

// Product is the catalog descriptor a line item is snapshotted from.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Inventory   int     `json:"inventory"`
	Image       string  `json:"image,omitempty"`
}

// LineItem is one cart entry for a unique (ProductID, Variant) pair.
// Name, Image, Price and Inventory are captured at add time and are not
// re-synced if the catalog changes later.
type LineItem struct {
	CartID    string  `json:"cart_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Variant   string  `json:"variant,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Inventory int     `json:"inventory"`
}

// Outcome tells the caller what a mutation actually did, so the UI can show
// "added" vs "quantity updated" confirmations.
type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeUpdated Outcome = "updated"
	OutcomeRemoved Outcome = "removed"
	OutcomeCleared Outcome = "cleared"
	OutcomeNoop    Outcome = "noop"
)

// Cart holds one session's line items. All methods are pure state
// transitions with no storage side effects; persistence is layered on top.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
}

// Add merges into an existing line when (ProductID, Variant) already exists,
// otherwise inserts a new line with a fresh cart id. Quantities are clamped
// to [1, inventory] in both paths, never rejected.
func (c *Cart) Add(p Product, variant string, quantity int) (LineItem, Outcome) {
	for i := range c.Items {
		item := &c.Items[i]
		if item.ProductID == p.ID && item.Variant == variant {
			item.Quantity = clamp(item.Quantity+quantity, 1, item.Inventory)
			return *item, OutcomeUpdated
		}
	}

	image := p.Image
	if image == "" {
		image = placeholderImage
	}
	item := LineItem{
		CartID:    uuid.New().String(),
		ProductID: p.ID,
		Name:      p.Name,
		Image:     image,
		Variant:   variant,
		Price:     p.Price,
		Quantity:  clamp(quantity, 1, p.Inventory),
		Inventory: p.Inventory,
	}
	c.Items = append(c.Items, item)
	return item, OutcomeAdded
}

// UpdateQuantity sets the line's quantity clamped to [1, inventory].
// A requested quantity of 0 or below raises to 1; it never removes the line.
// Unknown cart ids are a no-op.
func (c *Cart) UpdateQuantity(cartID string, quantity int) (LineItem, Outcome) {
	for i := range c.Items {
		item := &c.Items[i]
		if item.CartID == cartID {
			item.Quantity = clamp(quantity, 1, item.Inventory)
			return *item, OutcomeUpdated
		}
	}
	return LineItem{}, OutcomeNoop
}

// Remove deletes the line with the given cart id; no-op if absent.
func (c *Cart) Remove(cartID string) Outcome {
	for i, item := range c.Items {
		if item.CartID == cartID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return OutcomeRemoved
		}
	}
	return OutcomeNoop
}

// Clear empties the cart.
func (c *Cart) Clear() Outcome {
	c.Items = []LineItem{}
	return OutcomeCleared
}

// Total is the derived sum of price * quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// UnitCount is the derived sum of quantities (total units, not line count).
func (c *Cart) UnitCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
