package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries canopy interaction events through a donburi
// world. Events queue up until the world's events are processed.
var InteractionEventType = events.NewEventType[canopy.InteractionEvent]()

var _ canopy.EntityStore = (*DonburiStore)(nil)

// DonburiStore publishes the interaction events of entity-backed nodes into
// a donburi world.
type DonburiStore struct {
	world donburi.World
	skip  uint32 // bit per canopy.EventType
}

// NewDonburiStore returns a store that publishes every event type into world.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world}
}

// World returns the world events are published into.
func (s *DonburiStore) World() donburi.World {
	return s.world
}

// Skip stops events of the given types from reaching the world. The
// per-frame kinds (pointerover, buttonpressed, drag) are the usual candidates.
func (s *DonburiStore) Skip(types ...canopy.EventType) *DonburiStore {
	for _, t := range types {
		s.skip |= 1 << t
	}
	return s
}

// EmitEvent implements canopy.EntityStore.
func (s *DonburiStore) EmitEvent(event canopy.InteractionEvent) {
	if s.skip&(1<<event.Type) != 0 {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
