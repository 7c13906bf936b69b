package cart

import (
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/motocart/services/cart/cartgateway"
)

// toSnapshot maps the server representation. The full cart payload carries no
// subtotals, so they are derived from the unit price.
func toSnapshot(raw cartgateway.RawCart, userID string) Snapshot {
	details := make([]Line, 0, len(raw.CartDetails))
	for _, d := range raw.CartDetails {
		unitPrice := d.UnitPrice()
		details = append(details, Line{
			ID:          d.ID.String(),
			CartID:      d.CartID.String(),
			ProductID:   d.ProductID.String(),
			ProductName: d.ProductName(),
			Quantity:    d.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    unitPrice.Mul(decimalFromInt(d.Quantity)),
		})
	}

	owner := raw.BuyerID.String()
	if owner == "" {
		owner = userID
	}

	return recomputeTotals(Snapshot{
		ID:        raw.ID.String(),
		UserID:    owner,
		Details:   details,
		CreatedAt: raw.CreatedAt.Time,
		UpdatedAt: raw.UpdatedAt.Time,
	})
}

// serverQuantityMismatch reports a server supplied item count that disagrees with the lines.
// The lines always win.
func serverQuantityMismatch(raw cartgateway.RawCart, s Snapshot) (int, bool) {
	if raw.TotalQuantity == nil {
		return 0, false
	}
	return *raw.TotalQuantity, *raw.TotalQuantity != s.TotalQuantity
}

// recomputeTotals derives the aggregates from the lines.
func recomputeTotals(s Snapshot) Snapshot {
	totalQuantity := 0
	totalPrice := decimal.Zero
	for _, l := range s.Details {
		totalQuantity += l.Quantity
		totalPrice = totalPrice.Add(l.Subtotal)
	}
	s.TotalQuantity = totalQuantity
	s.TotalPrice = totalPrice
	return s
}

func decimalFromInt(i int) decimal.Decimal {
	return decimal.NewFromInt(int64(i))
}
