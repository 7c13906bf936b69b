package cartstub

import (
	"encoding/json"
	"time"
)

// Product ids and money go over the wire as json numbers, cart and line ids as strings.

type envelope struct {
	Data any `json:"data"`
}

type productResponse struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

type detailResponse struct {
	ID        string          `json:"id"`
	CartID    string          `json:"cartId"`
	ProductID json.Number     `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     json.Number     `json:"price"`
	Subtotal  json.Number     `json:"subtotal,omitempty"`
	Product   productResponse `json:"product"`
}

type cartResponse struct {
	ID            string           `json:"id"`
	BuyerID       string           `json:"buyerId"`
	TotalQuantity int              `json:"totalQuantity"`
	CartDetails   []detailResponse `json:"cartDetails"`
	CreatedAt     string           `json:"createdAt"`
	UpdatedAt     *string          `json:"updatedAt"`
}

func toDetailResponse(cart Cart, d CartDetail) detailResponse {
	product, _ := lookupProduct(d.ProductUID)
	return detailResponse{
		ID:        d.UID,
		CartID:    cart.UID,
		ProductID: json.Number(d.ProductUID),
		Quantity:  d.Quantity,
		Price:     json.Number(d.Price().String()),
		Product: productResponse{
			ID:    json.Number(product.UID),
			Name:  product.Name,
			Price: json.Number(product.Price().String()),
		},
	}
}

func toCartResponse(cart Cart) cartResponse {
	details := make([]detailResponse, 0, len(cart.Details))
	for _, d := range cart.Details {
		details = append(details, toDetailResponse(cart, d))
	}

	var updatedAt *string
	if cart.LastModified != nil {
		s := cart.LastModified.Format(time.RFC3339)
		updatedAt = &s
	}

	return cartResponse{
		ID:            cart.UID,
		BuyerID:       cart.BuyerUID,
		TotalQuantity: cart.TotalQuantity(),
		CartDetails:   details,
		CreatedAt:     cart.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     updatedAt,
	}
}

// toUpdatedDetailResponse carries the server computed subtotal.
func toUpdatedDetailResponse(cart Cart, d CartDetail) detailResponse {
	resp := toDetailResponse(cart, d)
	resp.Subtotal = json.Number(d.Subtotal().String())
	return resp
}
