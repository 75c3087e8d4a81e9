// Package ecs forwards canopy interaction events into a donburi world.
//
// A [DonburiStore] installed with Renderer.SetEntityStore receives the events
// of every node with a non-zero EntityID and publishes them as
// [InteractionEventType] events. Systems subscribe to that type and drain it
// with ProcessEvents:
//
//	store := ecs.NewDonburiStore(world).Skip(canopy.EventPointerOver)
//	renderer.SetEntityStore(store)
//	ecs.InteractionEventType.Subscribe(world, onInteraction)
package ecs
