// Package cart keeps the cached view of a user's cart in sync with the remote cart api.
package cart

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/lib/mytime"
	"github.com/MarcGrol/motocart/services/cart/cartevents"
	"github.com/MarcGrol/motocart/services/cart/cartgateway"
)

// Aggregator is the single source of truth for one user's cart view.
//
// Operations never return errors: failures end up in State().Error and as an
// error notification. Mutations are executed one at a time, in arrival order
// as far as the semaphore guarantees, each against the snapshot left by its
// predecessor. Concurrent loads of the same user share one gateway call.
type Aggregator struct {
	userID   string
	gateway  cartgateway.Gateway
	notifier cartevents.Notifier
	nower    mytime.Nower
	logger   mylog.Logger

	mutations *semaphore.Weighted
	loads     singleflight.Group

	mu    sync.Mutex
	state State
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewAggregator(userID string, gateway cartgateway.Gateway, notifier cartevents.Notifier, nower mytime.Nower, logger mylog.Logger) *Aggregator {
	return &Aggregator{
		userID:    userID,
		gateway:   gateway,
		notifier:  notifier,
		nower:     nower,
		logger:    logger,
		mutations: semaphore.NewWeighted(1),
	}
}

// State returns a copy; mutating it has no effect on the aggregator.
func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state.copy()
}

func (a *Aggregator) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Error = ""
}

func (a *Aggregator) update(f func(s *State)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f(&a.state)
}

func (a *Aggregator) setLoading(loading bool) {
	a.update(func(s *State) {
		s.IsLoading = loading
	})
}

// acquire waits for the running mutation to finish. It reports false when the
// caller gave up waiting.
func (a *Aggregator) acquire(c context.Context) bool {
	err := a.mutations.Acquire(c, 1)
	return err == nil
}

func (a *Aggregator) release() {
	a.mutations.Release(1)
}

func (a *Aggregator) traceLabel() string {
	if a.userID != "" {
		return a.userID
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.Cart == nil {
		return ""
	}
	return a.state.Cart.UserID
}

// notify addresses every notification to the user this aggregator serves,
// whether or not a cart has been loaded.
func (a *Aggregator) notify(c context.Context, n cartevents.Notification) {
	n.CreatedAt = a.nower.Now()
	if a.userID != "" {
		n.UserID = a.userID
	}

	a.mu.Lock()
	if a.state.Cart != nil {
		if n.UserID == "" {
			n.UserID = a.state.Cart.UserID
		}
		if n.CartID == "" {
			n.CartID = a.state.Cart.ID
		}
	}
	a.mu.Unlock()

	a.notifier.Notify(c, n)
}

// fail records a gateway failure. A caller that went away gets nothing recorded:
// its result is stale by definition.
func (a *Aggregator) fail(c context.Context, err error, n cartevents.Notification, fallback string) {
	if c.Err() != nil {
		a.logger.Log(c, a.traceLabel(), mylog.SeverityInfo, "Discarding result of %s: %s", n.Operation, c.Err())
		a.setLoading(false)
		return
	}

	msg := userMessage(err, fallback)
	a.logger.Log(c, a.traceLabel(), mylog.SeverityWarn, "Cart operation %s failed: %s", n.Operation, err)

	a.update(func(s *State) {
		s.Error = msg
		s.IsLoading = false
	})

	n.Kind = cartevents.KindError
	n.Message = msg
	a.notify(c, n)
}
