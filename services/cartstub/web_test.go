package cartstub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/motocart/lib/mystore"
	"github.com/MarcGrol/motocart/lib/mytime"
	"github.com/MarcGrol/motocart/lib/myuuid"
)

func TestCartStub(t *testing.T) {

	t.Run("Get cart creates empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("cart-1")

		// when
		response := doRequest(t, router, http.MethodGet, "/stub/api/Carts/user/u1")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"data":{
			"id":"cart-1",
			"buyerId":"u1",
			"totalQuantity":0,
			"cartDetails":[],
			"createdAt":"2023-02-27T23:58:59Z",
			"updatedAt":null
		}}`, response.Body.String())

		// when
		response = doRequest(t, router, http.MethodGet, "/stub/api/Carts/user/u1")

		// then
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Add same product twice increments line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, store, uuider := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("cart-1")
		uuider.EXPECT().Create().Return("detail-1")

		// when
		response := doRequest(t, router, http.MethodPost, "/stub/api/Carts/u1/add/4?quantity=2")
		assert.Equal(t, 200, response.Code)
		response = doRequest(t, router, http.MethodPost, "/stub/api/Carts/u1/add/4")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"data":{
			"id":"cart-1",
			"buyerId":"u1",
			"totalQuantity":3,
			"cartDetails":[{
				"id":"detail-1",
				"cartId":"cart-1",
				"productId":4,
				"quantity":3,
				"price":12.5,
				"product":{"id":4,"name":"Brake pads","price":12.5}
			}],
			"createdAt":"2023-02-27T23:58:59Z",
			"updatedAt":"2023-02-27T23:58:59Z"
		}}`, response.Body.String())

		cart, found, err := store.Get(context.TODO(), "u1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Len(t, cart.Details, 1)
	})

	t.Run("Add unknown product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/stub/api/Carts/u1/add/999?quantity=1")

		// then
		assert.Equal(t, 404, response.Code)
		assert.JSONEq(t, `{"errorCode":2,"message":"Product 999 not found"}`, response.Body.String())
	})

	t.Run("Add with invalid quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/stub/api/Carts/u1/add/4?quantity=0")

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Update quantity returns server subtotal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, store, _ := setup(t, ctrl)
		givenCart(t, store)

		// when
		response := doRequest(t, router, http.MethodPut, "/stub/api/Carts/detail/detail-1/quantity/4")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"data":{
			"id":"detail-1",
			"cartId":"cart-1",
			"productId":2,
			"quantity":4,
			"price":39.5,
			"subtotal":158,
			"product":{"id":2,"name":"Leather gloves","price":39.5}
		}}`, response.Body.String())
	})

	t.Run("Update unknown detail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, store, _ := setup(t, ctrl)
		givenCart(t, store)

		// when
		response := doRequest(t, router, http.MethodPut, "/stub/api/Carts/detail/detail-9/quantity/4")

		// then
		assert.Equal(t, 404, response.Code)
		assert.JSONEq(t, `{"errorCode":2,"message":"Cart detail not found"}`, response.Body.String())
	})

	t.Run("Update to zero is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, store, _ := setup(t, ctrl)
		givenCart(t, store)

		// when
		response := doRequest(t, router, http.MethodPut, "/stub/api/Carts/detail/detail-1/quantity/0")

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Delete detail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, store, _ := setup(t, ctrl)
		givenCart(t, store)

		// when
		response := doRequest(t, router, http.MethodDelete, "/stub/api/Carts/detail/detail-1")

		// then
		assert.Equal(t, 200, response.Code)
		cart, _, err := store.Get(context.TODO(), "u1")
		require.NoError(t, err)
		require.Len(t, cart.Details, 1)
		assert.Equal(t, "detail-2", cart.Details[0].UID)

		// when
		response = doRequest(t, router, http.MethodDelete, "/stub/api/Carts/detail/detail-1")

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, mystore.Store[Cart], *myuuid.MockUUIDer) {
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)

	store, _, err := mystore.NewInMemoryStore[Cart](context.TODO())
	require.NoError(t, err)

	router := mux.NewRouter()
	sut := NewWebService(store, nower, uuider)
	err = sut.RegisterEndpoints(context.TODO(), router)
	require.NoError(t, err)

	return router, store, uuider
}

func givenCart(t *testing.T, store mystore.Store[Cart]) {
	err := store.Put(context.TODO(), "u1", Cart{
		UID:       "cart-1",
		BuyerUID:  "u1",
		CreatedAt: mytime.ExampleTime,
		Details: []CartDetail{
			{UID: "detail-1", ProductUID: "2", Quantity: 1, PriceInCents: 3950},
			{UID: "detail-2", ProductUID: "3", Quantity: 2, PriceInCents: 1995},
		},
	})
	require.NoError(t, err)
}

func doRequest(t *testing.T, router *mux.Router, method string, url string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
