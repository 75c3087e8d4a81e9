package canopy

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Keyboard tracks keyboard keys with the same shadow/snapshot double buffer
// as Pointer: raw KeyDown/KeyUp calls accumulate, Update publishes one frame.
type Keyboard struct {
	keys map[ebiten.Key]*Key

	mu  sync.Mutex
	raw map[ebiten.Key]*Key
}

// NewKeyboard returns a keyboard with every key released.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		keys: make(map[ebiten.Key]*Key),
		raw:  make(map[ebiten.Key]*Key),
	}
}

// KeyDown records a raw key press.
func (kb *Keyboard) KeyDown(k ebiten.Key) {
	kb.mu.Lock()
	kb.rawKey(k).Update(ActionDown)
	kb.mu.Unlock()
}

// KeyUp records a raw key release.
func (kb *Keyboard) KeyUp(k ebiten.Key) {
	kb.mu.Lock()
	kb.rawKey(k).Update(ActionUp)
	kb.mu.Unlock()
}

func (kb *Keyboard) rawKey(k ebiten.Key) *Key {
	key, ok := kb.raw[k]
	if !ok {
		key = &Key{}
		kb.raw[k] = key
	}
	return key
}

// Update publishes the raw key state for this frame.
func (kb *Keyboard) Update() {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	for code, shadow := range kb.raw {
		pub, ok := kb.keys[code]
		if !ok {
			pub = &Key{}
			kb.keys[code] = pub
		}
		consumeKey(shadow, pub)
	}
}

// Reset releases every key and drops pending raw events.
func (kb *Keyboard) Reset() {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	clear(kb.keys)
	clear(kb.raw)
}

// Key returns the snapshot state of k.
func (kb *Keyboard) Key(k ebiten.Key) Key {
	if key, ok := kb.keys[k]; ok {
		return *key
	}
	return Key{}
}

// KeyPressed reports whether k is held this frame.
func (kb *Keyboard) KeyPressed(k ebiten.Key) bool {
	return kb.Key(k).Pressed
}

// KeyJustPressed reports whether k went down this frame.
func (kb *Keyboard) KeyJustPressed(k ebiten.Key) bool {
	return kb.Key(k).JustPressed
}

// KeyJustReleased reports whether k went up this frame.
func (kb *Keyboard) KeyJustReleased(k ebiten.Key) bool {
	return kb.Key(k).JustReleased
}

// Modifiers returns the modifier keys held this frame.
func (kb *Keyboard) Modifiers() KeyModifiers {
	var mods KeyModifiers
	if kb.KeyPressed(ebiten.KeyShiftLeft) || kb.KeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if kb.KeyPressed(ebiten.KeyControlLeft) || kb.KeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if kb.KeyPressed(ebiten.KeyAltLeft) || kb.KeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if kb.KeyPressed(ebiten.KeyMetaLeft) || kb.KeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
