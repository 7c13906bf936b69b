package cartevents

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/motocart/lib/myevents"
	"github.com/MarcGrol/motocart/lib/mylog"
	"github.com/MarcGrol/motocart/lib/mypubsub"
	"github.com/MarcGrol/motocart/lib/mytime"
)

var (
	added = Notification{
		Kind:        KindSuccess,
		Operation:   OperationAddItem,
		UserID:      "u1",
		ProductID:   "p9",
		ProductName: "Widget",
		Quantity:    2,
		Message:     "Added 2 x Widget to your cart",
		CreatedAt:   mytime.ExampleTime,
	}
	failed = Notification{
		Kind:      KindError,
		Operation: OperationLoad,
		UserID:    "u1",
		Message:   "Could not load your cart",
		CreatedAt: mytime.ExampleTime,
	}
)

func TestNotification(t *testing.T) {
	assert.Equal(t, "cart.notification.success", added.GetEventTypeName())
	assert.Equal(t, "cart.notification.error", failed.GetEventTypeName())
	assert.Equal(t, "u1", added.GetAggregateName())
	assert.Equal(t, "c1", Notification{CartID: "c1"}.GetAggregateName())
}

func TestInbox(t *testing.T) {
	c := context.TODO()

	t.Run("Drain returns oldest first and forgets", func(t *testing.T) {
		sut := NewInbox(0)
		sut.Notify(c, added)
		sut.Notify(c, failed)

		assert.Equal(t, []Notification{added, failed}, sut.Drain("u1"))
		assert.Equal(t, []Notification{}, sut.Drain("u1"))
	})

	t.Run("Inbox is per user", func(t *testing.T) {
		sut := NewInbox(0)
		sut.Notify(c, added)

		assert.Empty(t, sut.Drain("u2"))
		assert.Len(t, sut.Drain("u1"), 1)
	})

	t.Run("Oldest dropped when full", func(t *testing.T) {
		sut := NewInbox(2)
		for i := 1; i <= 3; i++ {
			n := added
			n.Quantity = i
			sut.Notify(c, n)
		}

		got := sut.Drain("u1")
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].Quantity)
		assert.Equal(t, 3, got[1].Quantity)
	})
}

func TestNotifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := NewMockNotifier(ctrl)
	second := NewMockNotifier(ctrl)
	first.EXPECT().Notify(gomock.Any(), added)
	second.EXPECT().Notify(gomock.Any(), added)

	Notifiers{first, second}.Notify(context.TODO(), added)
}

func TestPubSubNotifier(t *testing.T) {

	t.Run("Publishes envelope on cart topic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pubsub := mypubsub.NewMockPubSub(ctrl)
		sut := NewPubSubNotifier(pubsub, mylog.New("cartevents"))

		var published string
		pubsub.EXPECT().Publish(gomock.Any(), TopicName, gomock.Any()).DoAndReturn(func(c context.Context, topic string, data string) error {
			published = data
			return nil
		})

		sut.Notify(context.TODO(), added)

		envelope := myevents.EventEnvelope{}
		err := json.Unmarshal([]byte(published), &envelope)
		assert.NoError(t, err)
		assert.Equal(t, "cart", envelope.Topic)
		assert.Equal(t, "u1", envelope.AggregateUID)
		assert.Equal(t, "cart.notification.success", envelope.EventTypeName)
		assert.Equal(t, mytime.ExampleTime, envelope.CreatedAt)
		assert.NotEmpty(t, envelope.UID)

		payload := Notification{}
		err = json.Unmarshal([]byte(envelope.EventPayload), &payload)
		assert.NoError(t, err)
		assert.Equal(t, added, payload)
	})

	t.Run("Publication failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pubsub := mypubsub.NewMockPubSub(ctrl)
		sut := NewPubSubNotifier(pubsub, mylog.New("cartevents"))

		pubsub.EXPECT().Publish(gomock.Any(), TopicName, gomock.Any()).Return(fmt.Errorf("topic gone"))

		sut.Notify(context.TODO(), failed)
	})

	t.Run("Create topic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pubsub := mypubsub.NewMockPubSub(ctrl)
		sut := NewPubSubNotifier(pubsub, mylog.New("cartevents"))

		pubsub.EXPECT().CreateTopic(gomock.Any(), TopicName).Return(nil)
		assert.NoError(t, sut.CreateTopic(context.TODO()))

		pubsub.EXPECT().CreateTopic(gomock.Any(), TopicName).Return(fmt.Errorf("permission denied"))
		assert.Error(t, sut.CreateTopic(context.TODO()))
	})
}
