// Package cartstub is a stand-in for the marketplace cart api, used in development and in
// contract tests of the cart gateway.
package cartstub

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	UID          string
	Name         string
	PriceInCents int64
}

func (p Product) Price() decimal.Decimal {
	return decimal.New(p.PriceInCents, -2)
}

type CartDetail struct {
	UID          string
	ProductUID   string
	Quantity     int
	PriceInCents int64
}

// Price is the unit price at the moment the product was added.
func (d CartDetail) Price() decimal.Decimal {
	return decimal.New(d.PriceInCents, -2)
}

func (d CartDetail) Subtotal() decimal.Decimal {
	return decimal.New(d.PriceInCents*int64(d.Quantity), -2)
}

// Cart is stored keyed by the uid of its buyer.
type Cart struct {
	UID          string
	BuyerUID     string
	CreatedAt    time.Time
	LastModified *time.Time
	Details      []CartDetail
}

func (c Cart) TotalQuantity() int {
	total := 0
	for _, d := range c.Details {
		total += d.Quantity
	}
	return total
}

// detached returns a cart that can be modified without touching stored values.
func (c Cart) detached() Cart {
	c.Details = append([]CartDetail{}, c.Details...)
	return c
}

func (c Cart) findDetail(detailUID string) (int, bool) {
	for i, d := range c.Details {
		if d.UID == detailUID {
			return i, true
		}
	}
	return -1, false
}

func (c Cart) findProduct(productUID string) (int, bool) {
	for i, d := range c.Details {
		if d.ProductUID == productUID {
			return i, true
		}
	}
	return -1, false
}

var catalog = map[string]Product{
	"1": {UID: "1", Name: "Full face helmet", PriceInCents: 24995},
	"2": {UID: "2", Name: "Leather gloves", PriceInCents: 3950},
	"3": {UID: "3", Name: "Drive chain", PriceInCents: 1995},
	"4": {UID: "4", Name: "Brake pads", PriceInCents: 1250},
	"5": {UID: "5", Name: "Rain suit", PriceInCents: 8900},
}

func lookupProduct(productUID string) (Product, bool) {
	p, found := catalog[productUID]
	return p, found
}
