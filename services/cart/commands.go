package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/services/cart/cartevents"
)

const minQuantity = 1

// LoadCart replaces the snapshot with the server's view of the user's cart.
// Concurrent loads for the same user are coalesced into one gateway call.
func (a *Aggregator) LoadCart(c context.Context, userID string) {
	if userID == "" {
		return
	}

	for {
		_, err, _ := a.loads.Do(userID, func() (interface{}, error) {
			if !a.acquire(c) {
				return nil, c.Err()
			}
			defer a.release()

			a.loadCart(c, userID)
			return nil, c.Err()
		})
		// A load shared with a caller that went away was discarded: run our own.
		if err == nil || c.Err() != nil {
			return
		}
	}
}

// loadCart expects the caller to hold the mutation semaphore.
func (a *Aggregator) loadCart(c context.Context, userID string) bool {
	a.logger.Log(c, userID, mylog.SeverityInfo, "Load cart of user %s", userID)

	a.setLoading(true)

	raw, err := a.gateway.GetCartByUser(c, userID)
	if err != nil {
		a.fail(c, err, cartevents.Notification{
			Operation: cartevents.OperationLoad,
			UserID:    userID,
		}, msgLoadFailed)
		return false
	}
	if c.Err() != nil {
		a.setLoading(false)
		return false
	}

	snapshot := toSnapshot(raw, userID)
	if serverQuantity, mismatch := serverQuantityMismatch(raw, snapshot); mismatch {
		a.logger.Log(c, userID, mylog.SeverityWarn, "Server reports %d items for cart %s, lines add up to %d", serverQuantity, snapshot.ID, snapshot.TotalQuantity)
	}

	a.update(func(s *State) {
		s.Cart = &snapshot
		s.ItemCount = snapshot.TotalQuantity
		s.Error = ""
		s.IsLoading = false
	})

	return true
}

// AddItem adds a product and reloads the whole cart afterwards: the server may
// apply pricing rules the client does not know about.
func (a *Aggregator) AddItem(c context.Context, userID string, productID string, quantity int, productName string) {
	if userID == "" {
		return
	}
	if quantity < minQuantity {
		quantity = minQuantity
	}

	if !a.acquire(c) {
		return
	}
	defer a.release()

	a.logger.Log(c, userID, mylog.SeverityInfo, "Add %d x product %s to cart of user %s", quantity, productID, userID)

	a.setLoading(true)

	notification := cartevents.Notification{
		Operation:   cartevents.OperationAddItem,
		UserID:      userID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
	}

	_, err := a.gateway.AddToCart(c, userID, productID, quantity)
	if err != nil {
		a.fail(c, err, notification, msgAddFailed)
		return
	}

	if !a.loadCart(c, userID) {
		return
	}

	notification.Kind = cartevents.KindSuccess
	notification.Message = msgAdded(productName, quantity)
	a.notify(c, notification)
}

// RemoveDetail deletes a line remotely and subtracts it locally without refetching.
func (a *Aggregator) RemoveDetail(c context.Context, cartDetailID string, productName string) {
	if cartDetailID == "" {
		return
	}

	if !a.acquire(c) {
		return
	}
	defer a.release()

	a.logger.Log(c, a.traceLabel(), mylog.SeverityInfo, "Remove cart detail %s", cartDetailID)

	a.setLoading(true)

	notification := cartevents.Notification{
		Operation:    cartevents.OperationRemoveDetail,
		CartDetailID: cartDetailID,
		ProductName:  productName,
	}

	err := a.gateway.DeleteCartDetail(c, cartDetailID)
	if err != nil {
		a.fail(c, err, notification, msgRemoveFailed)
		return
	}
	if c.Err() != nil {
		a.setLoading(false)
		return
	}

	a.update(func(s *State) {
		s.IsLoading = false
		s.Error = ""
		if s.Cart == nil {
			return
		}

		if removed, found := s.Cart.findLine(cartDetailID); found {
			notification.ProductID = removed.ProductID
			if notification.ProductName == "" {
				notification.ProductName = removed.ProductName
			}
		}

		remaining := make([]Line, 0, len(s.Cart.Details))
		for _, l := range s.Cart.Details {
			if l.ID != cartDetailID {
				remaining = append(remaining, l)
			}
		}
		next := s.Cart.copy()
		next.Details = remaining
		next = recomputeTotals(next)

		s.Cart = &next
		s.ItemCount = next.TotalQuantity
	})

	notification.Kind = cartevents.KindSuccess
	notification.Message = msgRemoved(notification.ProductName)
	a.notify(c, notification)
}

// UpdateQuantity sets the quantity of a line. The server validates the quantity
// and computes the new subtotal; the client only recomputes the totals.
func (a *Aggregator) UpdateQuantity(c context.Context, cartDetailID string, newQuantity int) {
	if cartDetailID == "" {
		return
	}

	if !a.acquire(c) {
		return
	}
	defer a.release()

	a.updateQuantity(c, cartDetailID, newQuantity)
}

// IncrementQuantity adds one to the quantity of a line.
func (a *Aggregator) IncrementQuantity(c context.Context, cartDetailID string) {
	a.stepQuantity(c, cartDetailID, +1)
}

// DecrementQuantity subtracts one from the quantity of a line but never goes below one.
func (a *Aggregator) DecrementQuantity(c context.Context, cartDetailID string) {
	a.stepQuantity(c, cartDetailID, -1)
}

func (a *Aggregator) stepQuantity(c context.Context, cartDetailID string, delta int) {
	if !a.acquire(c) {
		return
	}
	defer a.release()

	a.mu.Lock()
	var line Line
	found := false
	if a.state.Cart != nil {
		line, found = a.state.Cart.findLine(cartDetailID)
	}
	a.mu.Unlock()

	if !found {
		return
	}

	newQuantity := line.Quantity + delta
	if newQuantity < minQuantity {
		a.warnQuantityTooLow(c, cartDetailID, newQuantity)
		return
	}

	a.updateQuantity(c, cartDetailID, newQuantity)
}

func (a *Aggregator) warnQuantityTooLow(c context.Context, cartDetailID string, quantity int) {
	a.logger.Log(c, a.traceLabel(), mylog.SeverityInfo, "Refusing quantity %d for cart detail %s", quantity, cartDetailID)

	a.notify(c, cartevents.Notification{
		Kind:         cartevents.KindWarning,
		Operation:    cartevents.OperationUpdateQuantity,
		CartDetailID: cartDetailID,
		Quantity:     quantity,
		Message:      msgQuantityTooLow,
	})
}

// updateQuantity expects the caller to hold the mutation semaphore.
func (a *Aggregator) updateQuantity(c context.Context, cartDetailID string, newQuantity int) {
	a.logger.Log(c, a.traceLabel(), mylog.SeverityInfo, "Update quantity of cart detail %s to %d", cartDetailID, newQuantity)

	a.setLoading(true)

	notification := cartevents.Notification{
		Operation:    cartevents.OperationUpdateQuantity,
		CartDetailID: cartDetailID,
		Quantity:     newQuantity,
	}

	updated, err := a.gateway.UpdateCartDetailQuantity(c, cartDetailID, newQuantity)
	if err != nil {
		a.fail(c, err, notification, msgUpdateFailed)
		return
	}

	applied := false
	a.update(func(s *State) {
		s.IsLoading = false
		if updated == nil || s.Cart == nil || c.Err() != nil {
			return
		}

		next := s.Cart.copy()
		for i, l := range next.Details {
			if l.ID != cartDetailID {
				continue
			}
			l.Quantity = updated.Quantity
			if updated.Subtotal != nil {
				l.Subtotal = *updated.Subtotal
			} else {
				l.Subtotal = l.UnitPrice.Mul(decimalFromInt(updated.Quantity))
			}
			next.Details[i] = l
			notification.ProductID = l.ProductID
			notification.ProductName = l.ProductName
		}
		next = recomputeTotals(next)

		s.Cart = &next
		s.ItemCount = next.TotalQuantity
		s.Error = ""
		applied = true
	})

	if !applied {
		return
	}

	notification.Kind = cartevents.KindSuccess
	notification.Quantity = updated.Quantity
	notification.Message = fmt.Sprintf(msgQuantityUpdated, updated.Quantity)
	a.notify(c, notification)
}
