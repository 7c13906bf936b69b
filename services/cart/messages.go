package cart

import (
	"fmt"
	"net/http"

	"github.com/MarcGrol/motocart/lib/myerrors"
)

const (
	msgGeneric          = "Something went wrong, please try again"
	msgUnreachable      = "The shop cannot be reached right now, please try again later"
	msgLoadFailed       = "Could not load your cart"
	msgQuantityTooLow   = "The quantity must be at least 1"
	msgQuantityUpdated  = "Quantity updated to %d"
	msgUpdateFailed     = "Could not update the quantity"
	msgAddFailed        = "Could not add the product to your cart"
	msgRemoveFailed     = "Could not remove the product from your cart"
	productFallbackName = "the product"
)

func msgAdded(productName string, quantity int) string {
	return fmt.Sprintf("Added %d x %s to your cart", quantity, productNameOrFallback(productName))
}

func msgRemoved(productName string) string {
	return fmt.Sprintf("Removed %s from your cart", productNameOrFallback(productName))
}

func productNameOrFallback(productName string) string {
	if productName == "" {
		return productFallbackName
	}
	return productName
}

// userMessage turns an error into something fit for a toast.
func userMessage(err error, fallback string) string {
	switch myerrors.GetHTTPStatus(err) {
	case http.StatusServiceUnavailable:
		return msgUnreachable
	case http.StatusBadGateway:
		return fallback
	}

	msg := myerrors.GetCause(err)
	if msg == "" {
		if fallback == "" {
			return msgGeneric
		}
		return fallback
	}
	return msg
}
