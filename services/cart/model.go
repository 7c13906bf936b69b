package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the locally cached view of a user's cart.
type Snapshot struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Details       []Line          `json:"details"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// Line is one product in the cart.
type Line struct {
	ID          string          `json:"id"`
	CartID      string          `json:"cartId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func (s Snapshot) copy() Snapshot {
	details := make([]Line, len(s.Details))
	copy(details, s.Details)
	s.Details = details
	return s
}

func (s Snapshot) findLine(lineID string) (Line, bool) {
	for _, l := range s.Details {
		if l.ID == lineID {
			return l, true
		}
	}
	return Line{}, false
}

// State is what the presentation layer renders.
type State struct {
	// Cart is nil as long as no cart has been loaded.
	Cart      *Snapshot `json:"cart"`
	IsLoading bool      `json:"isLoading"`
	Error     string    `json:"error,omitempty"`
	ItemCount int       `json:"itemCount"`
}

func (s State) copy() State {
	if s.Cart != nil {
		c := s.Cart.copy()
		s.Cart = &c
	}
	return s
}
