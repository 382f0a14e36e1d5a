package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	var bus Bus[int]

	var a, b []int
	bus.Subscribe(func(v int) { a = append(a, v) })
	bus.Subscribe(func(v int) { b = append(b, v) })

	bus.Publish(1)
	bus.Publish(2)

	assert.Equal(t, []int{1, 2}, a)
	assert.Equal(t, []int{1, 2}, b)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	var bus Bus[string]

	var got []string
	unsub := bus.Subscribe(func(v string) { got = append(got, v) })

	bus.Publish("first")
	unsub()
	unsub() // second call is a no-op
	bus.Publish("second")

	assert.Equal(t, []string{"first"}, got)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	var bus Bus[struct{}]
	assert.NotPanics(t, func() { bus.Publish(struct{}{}) })
}
