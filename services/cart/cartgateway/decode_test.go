package cartgateway

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/motocart/lib/myerrors"
)

func TestDecodeEnvelope(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		found     bool
		wantID    FlexID
		expectErr bool
	}{
		{name: "Bare object", body: `{"id":"c1"}`, found: true, wantID: "c1"},
		{name: "Single envelope", body: `{"data":{"id":"c1"}}`, found: true, wantID: "c1"},
		{name: "Double envelope", body: `{"data":{"data":{"id":"c1"}},"message":"ok"}`, found: true, wantID: "c1"},
		{name: "Numeric id", body: `{"data":{"id":42}}`, found: true, wantID: "42"},
		{name: "Empty body", body: ``, found: false},
		{name: "Null data", body: `{"data":null}`, found: false},
		{name: "Null inner data", body: `{"data":{"data":null}}`, found: false},
		{name: "Invalid json", body: `{"data":`, expectErr: true},
		{name: "Not an object", body: `[1,2]`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cart := RawCart{}
			found, err := decodeEnvelope([]byte(tc.body), &cart)
			if tc.expectErr {
				assert.Error(t, err)
				assert.Equal(t, 502, myerrors.GetHTTPStatus(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.wantID, cart.ID)
		})
	}
}

func TestRawCartDefaults(t *testing.T) {
	cart := RawCart{}
	err := json.Unmarshal([]byte(`{
		"id": 7,
		"buyerId": "u1",
		"createdAt": "2024-03-01T10:15:00",
		"updatedAt": "not-a-date",
		"cartDetails": [
			{"id": 1, "quantity": 2, "price": 100, "cartId": 7, "productId": "p1"},
			{"id": 2, "quantity": 3, "cartId": 7, "productId": "p2", "product": {"id": "p2", "name": "Gloves", "price": "49.95"}},
			{"id": 3, "quantity": 1, "cartId": 7, "productId": "p3"}
		]
	}`), &cart)
	require.NoError(t, err)

	assert.Equal(t, FlexID("7"), cart.ID)
	assert.Nil(t, cart.TotalQuantity)
	require.NotNil(t, cart.CreatedAt.Time)
	assert.Equal(t, 2024, cart.CreatedAt.Time.Year())
	assert.Nil(t, cart.UpdatedAt.Time)

	require.Len(t, cart.CartDetails, 3)
	assert.True(t, decimal.NewFromInt(100).Equal(cart.CartDetails[0].UnitPrice()))
	assert.True(t, decimal.RequireFromString("49.95").Equal(cart.CartDetails[1].UnitPrice()))
	assert.Equal(t, "Gloves", cart.CartDetails[1].ProductName())
	assert.True(t, decimal.Zero.Equal(cart.CartDetails[2].UnitPrice()))
	assert.Equal(t, "", cart.CartDetails[2].ProductName())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Product out of stock", errorMessage([]byte(`{"message":"Product out of stock"}`)))
	assert.Equal(t, "Not Found", errorMessage([]byte(`{"title":"Not Found","status":404}`)))
	assert.Equal(t, "boom", errorMessage([]byte(`{"data":{"error":"boom"}}`)))
	assert.Equal(t, "plain text", errorMessage([]byte(`"plain text"`)))
	assert.Equal(t, "", errorMessage([]byte(`<html>oops</html>`)))
	assert.Equal(t, "", errorMessage(nil))
}
