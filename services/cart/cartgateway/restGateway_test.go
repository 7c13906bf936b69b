package cartgateway

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/motocart/lib/myerrors"
	"github.com/MarcGrol/motocart/lib/myhttpclient"
	"github.com/MarcGrol/motocart/lib/mylog"
)

const baseURL = "https://api.motoshop.test/api"

func TestRestGateway(t *testing.T) {

	t.Run("Get cart by user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, sender, metrics := setup(ctrl)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, baseURL+"/Carts/user/u1", nil).
			Return(200, []byte(`{"data":{"id":"c1","buyerId":"u1","cartDetails":[{"id":"l1","quantity":2,"price":100,"cartId":"c1","productId":"p1"}]}}`), nil)

		// when
		cart, err := sut.GetCartByUser(ctx, "u1")

		// then
		assert.NoError(t, err)
		assert.Equal(t, FlexID("c1"), cart.ID)
		assert.Equal(t, FlexID("u1"), cart.BuyerID)
		require.Len(t, cart.CartDetails, 1)
		assert.Equal(t, 2, cart.CartDetails[0].Quantity)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(opGetCart, outcomeSuccess)))
	})

	t.Run("Get cart escapes path segments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodGet, baseURL+"/Carts/user/a%2Fb", nil).Return(200, []byte(`{"data":null}`), nil)

		cart, err := sut.GetCartByUser(ctx, "a/b")

		assert.NoError(t, err)
		assert.Equal(t, RawCart{}, cart)
	})

	t.Run("Add to cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodPost, baseURL+"/Carts/u1/add/p9?quantity=2", nil).
			Return(200, []byte(`{"data":{"id":"c1","cartDetails":[]}}`), nil)

		cart, err := sut.AddToCart(ctx, "u1", "p9", 2)

		assert.NoError(t, err)
		assert.Equal(t, FlexID("c1"), cart.ID)
	})

	t.Run("Update quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodPut, baseURL+"/Carts/detail/l1/quantity/5", nil).
			Return(200, []byte(`{"data":{"id":"l1","quantity":5,"subtotal":500}}`), nil)

		detail, err := sut.UpdateCartDetailQuantity(ctx, "l1", 5)

		assert.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, FlexID("l1"), detail.ID)
		assert.Equal(t, 5, detail.Quantity)
		require.NotNil(t, detail.Subtotal)
		assert.True(t, decimal.NewFromInt(500).Equal(*detail.Subtotal))
	})

	t.Run("Update quantity without payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodPut, baseURL+"/Carts/detail/l1/quantity/5", nil).Return(200, []byte(`{"message":"ok","data":null}`), nil)

		detail, err := sut.UpdateCartDetailQuantity(ctx, "l1", 5)

		assert.NoError(t, err)
		assert.Nil(t, detail)
	})

	t.Run("Delete detail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodDelete, baseURL+"/Carts/detail/l1", nil).Return(204, []byte{}, nil)

		err := sut.DeleteCartDetail(ctx, "l1")

		assert.NoError(t, err)
	})

	t.Run("Error status with message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, metrics := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodDelete, baseURL+"/Carts/detail/l1", nil).Return(404, []byte(`{"message":"Cart detail not found"}`), nil)

		err := sut.DeleteCartDetail(ctx, "l1")

		assert.Error(t, err)
		assert.Equal(t, 404, myerrors.GetHTTPStatus(err))
		assert.Equal(t, "Cart detail not found", myerrors.GetCause(err))
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(opDeleteDetail, outcomeError)))
	})

	t.Run("Error status without message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodGet, baseURL+"/Carts/user/u1", nil).Return(500, []byte(`<html/>`), nil)

		_, err := sut.GetCartByUser(ctx, "u1")

		assert.Error(t, err)
		assert.Equal(t, 500, myerrors.GetHTTPStatus(err))
		assert.Equal(t, "cart service responded with status 500", myerrors.GetCause(err))
	})

	t.Run("Transport error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodGet, baseURL+"/Carts/user/u1", nil).Return(0, nil, fmt.Errorf("connection refused"))

		_, err := sut.GetCartByUser(ctx, "u1")

		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Cancelled call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, sut, sender, metrics := setup(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sender.EXPECT().Send(gomock.Any(), http.MethodGet, baseURL+"/Carts/user/u1", nil).Return(0, nil, context.Canceled)

		_, err := sut.GetCartByUser(ctx, "u1")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(opGetCart, outcomeCancelled)))
	})

	t.Run("Invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, sender, _ := setup(ctrl)

		sender.EXPECT().Send(gomock.Any(), http.MethodGet, baseURL+"/Carts/user/u1", nil).Return(200, []byte(`{"data":{"cartDetails":"oops"}}`), nil)

		_, err := sut.GetCartByUser(ctx, "u1")

		assert.Error(t, err)
		assert.Equal(t, 502, myerrors.GetHTTPStatus(err))
	})
}

func TestMetricsRegisterTwice(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := NewMetrics(registry)
	second := NewMetrics(registry)

	first.observe(opGetCart, outcomeSuccess, 0)
	second.observe(opGetCart, outcomeSuccess, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(first.requests.WithLabelValues(opGetCart, outcomeSuccess)))

	var nilMetrics *Metrics
	nilMetrics.observe(opGetCart, outcomeSuccess, 0)
}

func setup(ctrl *gomock.Controller) (context.Context, Gateway, *myhttpclient.MockHTTPSender, *Metrics) {
	c := context.TODO()
	sender := myhttpclient.NewMockHTTPSender(ctrl)
	metrics := NewMetrics(prometheus.NewRegistry())
	sut := New(baseURL+"/", sender, metrics, mylog.New("cartgateway"))
	return c, sut, sender, metrics
}
