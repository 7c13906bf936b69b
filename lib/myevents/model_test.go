package myevents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lineRemoved struct {
	CartUID string
	LineUID string
}

func (e lineRemoved) GetEventTypeName() string { return "cart.line.removed" }
func (e lineRemoved) GetAggregateName() string { return e.CartUID }

func TestNewEnvelope(t *testing.T) {
	now := time.Date(2023, 2, 27, 23, 58, 59, 0, time.UTC)

	first, err := NewEnvelope("cart", lineRemoved{CartUID: "c1", LineUID: "l1"}, now)
	assert.NoError(t, err)
	assert.Equal(t, "cart", first.Topic)
	assert.Equal(t, "c1", first.AggregateUID)
	assert.Equal(t, "cart.line.removed", first.EventTypeName)
	assert.JSONEq(t, `{"CartUID":"c1","LineUID":"l1"}`, first.EventPayload)
	assert.Equal(t, now, first.CreatedAt)
	assert.Equal(t, "cart.cart.line.removed.c1", first.String())

	again, err := NewEnvelope("cart", lineRemoved{CartUID: "c1", LineUID: "l1"}, now.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, first.UID, again.UID)

	other, err := NewEnvelope("cart", lineRemoved{CartUID: "c1", LineUID: "l2"}, now)
	assert.NoError(t, err)
	assert.NotEqual(t, first.UID, other.UID)
}
