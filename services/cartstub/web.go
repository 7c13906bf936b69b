package cartstub

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/motocart/lib/mycontext"
	"github.com/MarcGrol/motocart/lib/myerrors"
	"github.com/MarcGrol/motocart/lib/myhttp"
	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/lib/mystore"
	"github.com/MarcGrol/motocart/lib/mytime"
	"github.com/MarcGrol/motocart/lib/myuuid"
)

// PathPrefix is where the stub api is mounted; point the cart gateway at host + PathPrefix.
const PathPrefix = "/stub/api"

type WebService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(store mystore.Store[Cart], nower mytime.Nower, uuider myuuid.UUIDer) *WebService {
	logger := mylog.New("cartstub")
	return &WebService{
		logger:  logger,
		service: newService(store, nower, uuider, logger),
	}
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	subRouter := router.PathPrefix(PathPrefix + "/Carts").Subrouter()
	subRouter.HandleFunc("/user/{userID}", s.getCart()).Methods("GET")
	subRouter.HandleFunc("/detail/{detailID}/quantity/{quantity}", s.updateQuantity()).Methods("PUT")
	subRouter.HandleFunc("/detail/{detailID}", s.deleteDetail()).Methods("DELETE")
	subRouter.HandleFunc("/{userID}/add/{productID}", s.addToCart()).Methods("POST")

	return nil
}

func (s *WebService) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		cart, err := s.service.getCart(c, mux.Vars(r)["userID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, envelope{Data: toCartResponse(cart)})
	}
}

func (s *WebService) addToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		quantity := 1
		if q := r.URL.Query().Get("quantity"); q != "" {
			var err error
			quantity, err = strconv.Atoi(q)
			if err != nil {
				writer.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("Invalid quantity %s", q))
				return
			}
		}

		cart, err := s.service.addToCart(c, mux.Vars(r)["userID"], mux.Vars(r)["productID"], quantity)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, envelope{Data: toCartResponse(cart)})
	}
}

func (s *WebService) updateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		quantity, err := strconv.Atoi(mux.Vars(r)["quantity"])
		if err != nil {
			writer.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("Invalid quantity %s", mux.Vars(r)["quantity"]))
			return
		}

		cart, detail, err := s.service.updateDetailQuantity(c, mux.Vars(r)["detailID"], quantity)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, envelope{Data: toUpdatedDetailResponse(cart, detail)})
	}
}

func (s *WebService) deleteDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := s.service.deleteDetail(c, mux.Vars(r)["detailID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, envelope{Data: myhttp.SuccessResponse{Message: "Cart detail deleted"}})
	}
}
