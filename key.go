package canopy

// KeyAction is a raw transition fed into a Key.
type KeyAction uint8

const (
	ActionDown  KeyAction = iota // button or key went down
	ActionUp                     // button or key went up
	ActionReset                  // clear the edge flags without changing Pressed
)

// Key is the debounced state of one logical button or keyboard key.
//
// JustPressed and JustReleased are edge flags. They are only set on a real
// transition: repeating ActionDown while already pressed never sets
// JustPressed again.
type Key struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool
}

// Update applies a raw action. Both edge flags are cleared first.
func (k *Key) Update(action KeyAction) {
	k.JustPressed = false
	k.JustReleased = false

	switch action {
	case ActionDown:
		if !k.Pressed {
			k.JustPressed = true
		}
		k.Pressed = true
	case ActionUp:
		if k.Pressed {
			k.JustReleased = true
		}
		k.Pressed = false
	}
}

// Set overwrites all three flags.
func (k *Key) Set(justPressed, pressed, justReleased bool) {
	k.JustPressed = justPressed
	k.Pressed = pressed
	k.JustReleased = justReleased
}

// Reset clears all three flags.
func (k *Key) Reset() {
	*k = Key{}
}

// consume collapses one frame of a shadow key into its public copy.
// An edge already visible in pub for one frame is cleared from shadow,
// then shadow is copied to pub.
func consumeKey(shadow, pub *Key) {
	if shadow.JustPressed && pub.JustPressed {
		shadow.JustPressed = false
	}
	if shadow.JustReleased && pub.JustReleased {
		shadow.JustReleased = false
	}
	*pub = *shadow
}
