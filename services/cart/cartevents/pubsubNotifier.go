package cartevents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/motocart/lib/myevents"
	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/lib/mypubsub"
)

// PubSubNotifier publishes notifications on the cart topic so other components can react.
type PubSubNotifier struct {
	pubsub mypubsub.PubSub
	logger mylog.Logger
}

func NewPubSubNotifier(pubsub mypubsub.PubSub, logger mylog.Logger) *PubSubNotifier {
	return &PubSubNotifier{
		pubsub: pubsub,
		logger: logger,
	}
}

func (p *PubSubNotifier) CreateTopic(c context.Context) error {
	err := p.pubsub.CreateTopic(c, TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %w", TopicName, err)
	}
	return nil
}

// Notify never fails the cart operation: a lost notification only costs a toast.
func (p *PubSubNotifier) Notify(c context.Context, n Notification) {
	envelope, err := myevents.NewEnvelope(TopicName, n, n.CreatedAt)
	if err != nil {
		p.logger.Log(c, n.GetAggregateName(), mylog.SeverityError, "Error enveloping notification: %s", err)
		return
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Log(c, n.GetAggregateName(), mylog.SeverityError, "Error serializing envelope %s: %s", envelope.UID, err)
		return
	}

	err = p.pubsub.Publish(c, TopicName, string(data))
	if err != nil {
		p.logger.Log(c, n.GetAggregateName(), mylog.SeverityWarn, "Error publishing %s: %s", envelope, err)
		return
	}
}
