package cart

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/motocart/lib/mycontext"
	"github.com/MarcGrol/motocart/lib/myerrors"
	"github.com/MarcGrol/motocart/lib/myhttp"
	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/lib/mytime"
	"github.com/MarcGrol/motocart/services/cart/cartevents"
	"github.com/MarcGrol/motocart/services/cart/cartgateway"
)

// AddItemRequest is the form posted when a product is put in the cart.
type AddItemRequest struct {
	ProductID   string `form:"productId"`
	Quantity    int    `form:"quantity"`
	ProductName string `form:"productName"`
}

func (r AddItemRequest) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(r)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %w", err)
	}
	return values, nil
}

type NotificationDrainer interface {
	Drain(userID string) []cartevents.Notification
}

type WebService struct {
	logger   mylog.Logger
	sessions *Sessions
	inbox    NotificationDrainer
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(gateway cartgateway.Gateway, notifier cartevents.Notifier, inbox NotificationDrainer, nower mytime.Nower) *WebService {
	logger := mylog.New("cart")
	return &WebService{
		logger: logger,
		sessions: NewSessions(func(userID string) *Aggregator {
			return NewAggregator(userID, gateway, notifier, nower, logger)
		}),
		inbox: inbox,
	}
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	subRouter := router.PathPrefix("/api/cart/{userID}").Subrouter()
	subRouter.HandleFunc("", s.getState()).Methods("GET")
	subRouter.HandleFunc("/load", s.loadCart()).Methods("POST")
	subRouter.HandleFunc("/items", s.addItem()).Methods("POST")
	subRouter.HandleFunc("/lines/{lineID}/quantity/{quantity}", s.updateQuantity()).Methods("PUT")
	subRouter.HandleFunc("/lines/{lineID}/increment", s.incrementQuantity()).Methods("POST")
	subRouter.HandleFunc("/lines/{lineID}/decrement", s.decrementQuantity()).Methods("POST")
	subRouter.HandleFunc("/lines/{lineID}", s.removeDetail()).Methods("DELETE")
	subRouter.HandleFunc("/error", s.clearError()).Methods("DELETE")
	subRouter.HandleFunc("/notifications", s.drainNotifications()).Methods("GET")

	return nil
}

func (s *WebService) getState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		writer.Write(c, w, http.StatusOK, s.stateOf(mux.Vars(r)["userID"]))
	}
}

// stateOf reports an empty state for users that never touched their cart.
func (s *WebService) stateOf(userID string) State {
	aggregator, found := s.sessions.Find(userID)
	if !found {
		return State{}
	}
	return aggregator.State()
}

func (s *WebService) loadCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		userID := mux.Vars(r)["userID"]

		aggregator := s.sessions.Get(userID)
		aggregator.LoadCart(c, userID)

		writer.Write(c, w, http.StatusOK, aggregator.State())
	}
}

func (s *WebService) addItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		userID := mux.Vars(r)["userID"]

		req, err := parseAddItemRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		aggregator := s.sessions.Get(userID)
		aggregator.AddItem(c, userID, req.ProductID, req.Quantity, req.ProductName)

		writer.Write(c, w, http.StatusOK, aggregator.State())
	}
}

func parseAddItemRequest(r *http.Request) (AddItemRequest, error) {
	req := AddItemRequest{}

	err := r.ParseForm()
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %w", err))
	}

	err = formcodec.NewDecoder().Decode(&req, r.PostForm)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %w", err))
	}

	if req.ProductID == "" {
		return req, myerrors.NewInvalidInputErrorf("missing productId")
	}

	return req, nil
}

func (s *WebService) updateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		userID := mux.Vars(r)["userID"]
		lineID := mux.Vars(r)["lineID"]
		quantity, err := strconv.Atoi(mux.Vars(r)["quantity"])
		if err != nil {
			writer.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("invalid quantity %q", mux.Vars(r)["quantity"]))
			return
		}

		aggregator := s.sessions.Get(userID)
		aggregator.UpdateQuantity(c, lineID, quantity)

		writer.Write(c, w, http.StatusOK, aggregator.State())
	}
}

func (s *WebService) incrementQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		aggregator := s.sessions.Get(mux.Vars(r)["userID"])
		aggregator.IncrementQuantity(c, mux.Vars(r)["lineID"])

		writer.Write(c, w, http.StatusOK, aggregator.State())
	}
}

func (s *WebService) decrementQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		aggregator := s.sessions.Get(mux.Vars(r)["userID"])
		aggregator.DecrementQuantity(c, mux.Vars(r)["lineID"])

		writer.Write(c, w, http.StatusOK, aggregator.State())
	}
}

func (s *WebService) removeDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		aggregator := s.sessions.Get(mux.Vars(r)["userID"])
		aggregator.RemoveDetail(c, mux.Vars(r)["lineID"], r.URL.Query().Get("productName"))

		writer.Write(c, w, http.StatusOK, aggregator.State())
	}
}

func (s *WebService) clearError() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		userID := mux.Vars(r)["userID"]
		if aggregator, found := s.sessions.Find(userID); found {
			aggregator.ClearError()
		}

		writer.Write(c, w, http.StatusOK, s.stateOf(userID))
	}
}

func (s *WebService) drainNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		writer.Write(c, w, http.StatusOK, s.inbox.Drain(mux.Vars(r)["userID"]))
	}
}
