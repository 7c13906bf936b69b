package cartgateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RawCart is the cart as the backend serializes it.
type RawCart struct {
	ID            FlexID      `json:"id"`
	BuyerID       FlexID      `json:"buyerId"`
	TotalQuantity *int        `json:"totalQuantity"`
	CartDetails   []RawDetail `json:"cartDetails"`
	CreatedAt     Timestamp   `json:"createdAt"`
	UpdatedAt     Timestamp   `json:"updatedAt"`
}

type RawDetail struct {
	ID        FlexID           `json:"id"`
	CartID    FlexID           `json:"cartId"`
	ProductID FlexID           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
	Product   *RawProduct      `json:"product"`
}

type RawProduct struct {
	ID    FlexID           `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// UnitPrice is the line price, falling back to the embedded product price and finally zero.
func (d RawDetail) UnitPrice() decimal.Decimal {
	if d.Price != nil {
		return *d.Price
	}
	if d.Product != nil && d.Product.Price != nil {
		return *d.Product.Price
	}
	return decimal.Zero
}

func (d RawDetail) ProductName() string {
	if d.Product == nil {
		return ""
	}
	return d.Product.Name
}

// FlexID accepts identifiers sent as json strings or as json numbers.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	err := json.Unmarshal(data, &n)
	if err != nil {
		return fmt.Errorf("identifier %s is neither string nor number", string(data))
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string {
	return string(id)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp is an optional server timestamp. Values that cannot be parsed are
// dropped instead of failing the whole payload.
type Timestamp struct {
	Time *time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = nil

	var s string
	err := json.Unmarshal(data, &s)
	if err != nil || s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = &parsed
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
