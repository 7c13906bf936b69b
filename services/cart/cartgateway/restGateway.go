package cartgateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MarcGrol/motocart/lib/myerrors"
	"github.com/MarcGrol/motocart/lib/myhttpclient"
	"github.com/MarcGrol/motocart/lib/mylog"
)

const (
	opGetCart        = "get_cart"
	opAddToCart      = "add_to_cart"
	opUpdateQuantity = "update_quantity"
	opDeleteDetail   = "delete_detail"
)

type restGateway struct {
	baseURL string
	sender  myhttpclient.HTTPSender
	metrics *Metrics
	logger  mylog.Logger
}

// New returns a Gateway for the cart api rooted at baseURL, e.g. https://api.example.com/api.
func New(baseURL string, sender myhttpclient.HTTPSender, metrics *Metrics, logger mylog.Logger) Gateway {
	return &restGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  sender,
		metrics: metrics,
		logger:  logger,
	}
}

func (g *restGateway) GetCartByUser(c context.Context, userID string) (RawCart, error) {
	body, err := g.do(c, opGetCart, http.MethodGet, g.url("Carts", "user", userID), nil)
	if err != nil {
		return RawCart{}, err
	}

	cart := RawCart{}
	_, err = decodeEnvelope(body, &cart)
	if err != nil {
		return RawCart{}, err
	}
	return cart, nil
}

func (g *restGateway) AddToCart(c context.Context, userID string, productID string, quantity int) (RawCart, error) {
	query := url.Values{"quantity": []string{strconv.Itoa(quantity)}}
	body, err := g.do(c, opAddToCart, http.MethodPost, g.url("Carts", userID, "add", productID), query)
	if err != nil {
		return RawCart{}, err
	}

	cart := RawCart{}
	_, err = decodeEnvelope(body, &cart)
	if err != nil {
		return RawCart{}, err
	}
	return cart, nil
}

func (g *restGateway) UpdateCartDetailQuantity(c context.Context, cartDetailID string, quantity int) (*RawDetail, error) {
	body, err := g.do(c, opUpdateQuantity, http.MethodPut, g.url("Carts", "detail", cartDetailID, "quantity", strconv.Itoa(quantity)), nil)
	if err != nil {
		return nil, err
	}

	detail := RawDetail{}
	found, err := decodeEnvelope(body, &detail)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &detail, nil
}

func (g *restGateway) DeleteCartDetail(c context.Context, cartDetailID string) error {
	_, err := g.do(c, opDeleteDetail, http.MethodDelete, g.url("Carts", "detail", cartDetailID), nil)
	return err
}

func (g *restGateway) url(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return g.baseURL + "/" + strings.Join(escaped, "/")
}

func (g *restGateway) do(c context.Context, operation string, method string, target string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		target = target + "?" + query.Encode()
	}

	start := time.Now()
	status, body, err := g.sender.Send(c, method, target, nil)
	elapsed := time.Since(start)

	if err != nil {
		if c.Err() != nil || errors.Is(err, context.Canceled) {
			g.metrics.observe(operation, outcomeCancelled, elapsed)
			return nil, err
		}
		g.metrics.observe(operation, outcomeError, elapsed)
		g.logger.Log(c, "", mylog.SeverityError, "Error calling %s %s: %s", method, target, err)
		return nil, myerrors.NewUnavailableError(fmt.Errorf("cart service is unreachable: %w", err))
	}

	if status < 200 || status > 299 {
		g.metrics.observe(operation, outcomeError, elapsed)
		msg := errorMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("cart service responded with status %d", status)
		}
		g.logger.Log(c, "", mylog.SeverityWarn, "%s %s -> %d: %s", method, target, status, msg)
		return nil, myerrors.NewGatewayError(status, errors.New(msg))
	}

	g.metrics.observe(operation, outcomeSuccess, elapsed)
	return body, nil
}
