package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	bus.Subscribe(func(Event) { order = append(order, 1) })
	bus.Subscribe(func(Event) { order = append(order, 2) })
	bus.Subscribe(func(Event) { order = append(order, 3) })

	bus.Publish(Event{Kind: ModuleAdded})
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	cancel := bus.Subscribe(func(Event) { calls++ })

	bus.Publish(Event{Kind: SettingsUpdated})
	cancel()
	bus.Publish(Event{Kind: SettingsUpdated})

	require.Equal(t, 1, calls)

	// Second cancel is a no-op.
	cancel()
}

func TestBus_EventPayload(t *testing.T) {
	bus := NewBus()

	var got Event
	bus.Subscribe(func(ev Event) { got = ev })

	bus.Publish(Event{Kind: ModuleRemoved, ModuleID: "m1"})
	require.Equal(t, ModuleRemoved, got.Kind)
	require.Equal(t, "m1", got.ModuleID)
}
