package cartstub

import (
	"context"
	"fmt"

	"github.com/MarcGrol/motocart/lib/myerrors"
	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/lib/mystore"
	"github.com/MarcGrol/motocart/lib/mytime"
	"github.com/MarcGrol/motocart/lib/myuuid"
)

type service struct {
	cartStore mystore.Store[Cart]
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Cart], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		cartStore: store,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
	}
}

func (s *service) getCart(c context.Context, buyerUID string) (Cart, error) {
	s.logger.Log(c, buyerUID, mylog.SeverityInfo, "Fetch cart of buyer %s", buyerUID)

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		cart, err = s.getOrCreateCart(c, buyerUID)
		return err
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}

func (s *service) addToCart(c context.Context, buyerUID string, productUID string, quantity int) (Cart, error) {
	s.logger.Log(c, buyerUID, mylog.SeverityInfo, "Add %d x product %s to cart of buyer %s", quantity, productUID, buyerUID)

	if quantity < 1 {
		return Cart{}, myerrors.NewInvalidInputErrorf("Quantity must be at least 1")
	}
	product, found := lookupProduct(productUID)
	if !found {
		return Cart{}, myerrors.NewNotFoundError(fmt.Errorf("Product %s not found", productUID))
	}

	now := s.nower.Now()

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		cart, err = s.getOrCreateCart(c, buyerUID)
		if err != nil {
			return err
		}
		cart = cart.detached()

		idx, exists := cart.findProduct(product.UID)
		if exists {
			cart.Details[idx].Quantity += quantity
		} else {
			cart.Details = append(cart.Details, CartDetail{
				UID:          s.uuider.Create(),
				ProductUID:   product.UID,
				Quantity:     quantity,
				PriceInCents: product.PriceInCents,
			})
		}
		cart.LastModified = &now

		err = s.cartStore.Put(c, buyerUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}

func (s *service) updateDetailQuantity(c context.Context, detailUID string, quantity int) (Cart, CartDetail, error) {
	s.logger.Log(c, detailUID, mylog.SeverityInfo, "Set quantity of cart detail %s to %d", detailUID, quantity)

	if quantity < 1 {
		return Cart{}, CartDetail{}, myerrors.NewInvalidInputErrorf("Quantity must be at least 1")
	}

	buyerUID, err := s.findBuyerOfDetail(c, detailUID)
	if err != nil {
		return Cart{}, CartDetail{}, err
	}

	now := s.nower.Now()

	var cart Cart
	var detail CartDetail
	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		cart, found, err = s.cartStore.Get(c, buyerUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("Cart detail not found"))
		}
		cart = cart.detached()

		idx, exists := cart.findDetail(detailUID)
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("Cart detail not found"))
		}
		cart.Details[idx].Quantity = quantity
		cart.LastModified = &now
		detail = cart.Details[idx]

		err = s.cartStore.Put(c, buyerUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Cart{}, CartDetail{}, err
	}

	return cart, detail, nil
}

func (s *service) deleteDetail(c context.Context, detailUID string) error {
	s.logger.Log(c, detailUID, mylog.SeverityInfo, "Delete cart detail %s", detailUID)

	buyerUID, err := s.findBuyerOfDetail(c, detailUID)
	if err != nil {
		return err
	}

	now := s.nower.Now()

	return s.cartStore.RunInTransaction(c, func(c context.Context) error {
		cart, found, err := s.cartStore.Get(c, buyerUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("Cart detail not found"))
		}
		cart = cart.detached()

		idx, exists := cart.findDetail(detailUID)
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("Cart detail not found"))
		}
		cart.Details = append(cart.Details[:idx], cart.Details[idx+1:]...)
		cart.LastModified = &now

		err = s.cartStore.Put(c, buyerUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

// getOrCreateCart must run within a transaction.
func (s *service) getOrCreateCart(c context.Context, buyerUID string) (Cart, error) {
	cart, found, err := s.cartStore.Get(c, buyerUID)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	if found {
		return cart, nil
	}

	cart = Cart{
		UID:       s.uuider.Create(),
		BuyerUID:  buyerUID,
		CreatedAt: s.nower.Now(),
		Details:   []CartDetail{},
	}
	err = s.cartStore.Put(c, buyerUID, cart)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}

	return cart, nil
}

// findBuyerOfDetail locates the cart holding a detail. Datastore flattens the
// details so the filter works there; the in-memory store returns every cart.
func (s *service) findBuyerOfDetail(c context.Context, detailUID string) (string, error) {
	carts, err := s.cartStore.Query(c, []mystore.Filter{
		{Field: "Details.UID", Compare: "=", Value: detailUID},
	}, "")
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	for _, cart := range carts {
		if _, found := cart.findDetail(detailUID); found {
			return cart.BuyerUID, nil
		}
	}
	return "", myerrors.NewNotFoundError(fmt.Errorf("Cart detail not found"))
}
