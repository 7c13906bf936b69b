// Package cartgateway talks to the remote cart api of the marketplace backend.
package cartgateway

import (
	"context"
)

//go:generate mockgen -source=api.go -package cartgateway -destination gateway_mock.go Gateway
type Gateway interface {
	GetCartByUser(c context.Context, userID string) (RawCart, error)
	AddToCart(c context.Context, userID string, productID string, quantity int) (RawCart, error)
	// UpdateCartDetailQuantity returns nil when the server did not send the updated line.
	UpdateCartDetailQuantity(c context.Context, cartDetailID string, quantity int) (*RawDetail, error)
	DeleteCartDetail(c context.Context, cartDetailID string) error
}
