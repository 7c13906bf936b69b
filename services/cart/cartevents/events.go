// Package cartevents carries the user facing notifications the cart emits.
package cartevents

import (
	"context"
	"time"
)

const (
	TopicName        = "cart"
	notificationName = TopicName + ".notification"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Operation string

const (
	OperationLoad           Operation = "load"
	OperationAddItem        Operation = "add_item"
	OperationRemoveDetail   Operation = "remove_detail"
	OperationUpdateQuantity Operation = "update_quantity"
)

// Notification is a toast for the end user. Only Kind and the triggering
// operation are meaningful to machines; Message is presentation.
type Notification struct {
	Kind         Kind      `json:"kind"`
	Operation    Operation `json:"operation"`
	UserID       string    `json:"userId,omitempty"`
	CartID       string    `json:"cartId,omitempty"`
	CartDetailID string    `json:"cartDetailId,omitempty"`
	ProductID    string    `json:"productId,omitempty"`
	ProductName  string    `json:"productName,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (n Notification) GetEventTypeName() string {
	return notificationName + "." + string(n.Kind)
}

func (n Notification) GetAggregateName() string {
	if n.UserID != "" {
		return n.UserID
	}
	return n.CartID
}

//go:generate mockgen -source=events.go -package cartevents -destination notifier_mock.go Notifier
type Notifier interface {
	Notify(c context.Context, n Notification)
}

// Notifiers fans a notification out to all of its members.
type Notifiers []Notifier

func (ns Notifiers) Notify(c context.Context, n Notification) {
	for _, notifier := range ns {
		notifier.Notify(c, n)
	}
}
