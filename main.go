package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MarcGrol/motocart/lib/myhttpclient"
	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/lib/mypubsub"
	"github.com/MarcGrol/motocart/lib/mystore"
	"github.com/MarcGrol/motocart/lib/mytime"
	"github.com/MarcGrol/motocart/lib/myuuid"
	"github.com/MarcGrol/motocart/services/cart"
	"github.com/MarcGrol/motocart/services/cart/cartevents"
	"github.com/MarcGrol/motocart/services/cart/cartgateway"
	"github.com/MarcGrol/motocart/services/cartstub"
)

const stubPathPrefix = cartstub.PathPrefix

func main() {
	c := context.Background()

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}

	if cfg.ProjectID != "" {
		log.Printf("Using Google Cloud project %s for storage, pubsub and logging", cfg.ProjectID)
	}

	router := mux.NewRouter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")

	if cfg.UseStub {
		cleanup := startStub(c, router)
		defer cleanup()
	}

	cleanup := startCart(c, cfg, registry, router)
	defer cleanup()

	startWebServerBlocking(cfg.Port, router)
}

func startStub(c context.Context, router *mux.Router) func() {
	cartStore, storeCleanup, err := mystore.New[cartstub.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}

	stub := cartstub.NewWebService(cartStore, mytime.RealNower{}, myuuid.RealUUIDer{})
	err = stub.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering stub endpoints: %s", err)
	}

	return storeCleanup
}

func startCart(c context.Context, cfg config, registry *prometheus.Registry, router *mux.Router) func() {
	logger := mylog.New("cart")

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}

	publisher := cartevents.NewPubSubNotifier(pubsub, logger)
	err = publisher.CreateTopic(c)
	if err != nil {
		log.Fatalf("Error creating topic: %s", err)
	}

	inbox := cartevents.NewInbox(0)

	sender := myhttpclient.New(myhttpclient.Options{
		Timeout:     cfg.CartAPITimeout,
		BearerToken: cfg.CartAPIToken,
		Debug:       cfg.CartAPIDebug,
	})
	gateway := cartgateway.New(cfg.CartAPIURL, sender, cartgateway.NewMetrics(registry), logger)

	cartService := cart.NewWebService(gateway, cartevents.Notifiers{inbox, publisher}, inbox, mytime.RealNower{})
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering cart endpoints: %s", err)
	}

	return pubsubCleanup
}

func startWebServerBlocking(port string, router *mux.Router) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s/api/cart/u1)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
