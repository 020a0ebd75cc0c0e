package host

import (
	"sync"
	"time"

	"github.com/Jailior/3dgraphicproject/pkg/render"
)

// KeyTracker turns press, repeat and release events into held-key state.
// Terminals without release reporting are covered by the hold window: a key
// counts as held until hold has passed since its last press or repeat.
// It is safe for concurrent use.
type KeyTracker struct {
	mu      sync.Mutex
	hold    time.Duration
	now     func() time.Time
	held    map[render.Key]time.Time
	pressed map[render.Key]bool
}

var _ Input = (*KeyTracker)(nil)

// NewKeyTracker creates a tracker with the given hold window.
func NewKeyTracker(hold time.Duration) *KeyTracker {
	return &KeyTracker{
		hold:    hold,
		now:     time.Now,
		held:    make(map[render.Key]time.Time),
		pressed: make(map[render.Key]bool),
	}
}

// Press records a press or auto-repeat of k. A plain press is fresh unless
// k is still held, and a key past its hold window no longer counts as held.
func (t *KeyTracker) Press(k render.Key, repeat bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	last, down := t.held[k]
	if !repeat && (!down || t.expired(last, now)) {
		t.pressed[k] = true
	}
	t.held[k] = now
}

// expired reports whether a press at last has outlived the hold window.
func (t *KeyTracker) expired(last, now time.Time) bool {
	return t.hold > 0 && now.Sub(last) > t.hold
}

// Release records that k went up.
func (t *KeyTracker) Release(k render.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, k)
}

// IsKeyHeld implements render.KeyState.
func (t *KeyTracker) IsKeyHeld(k render.Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.held[k]
	if !ok {
		return false
	}
	if t.expired(last, t.now()) {
		delete(t.held, k)
		return false
	}
	return true
}

// JustPressed reports whether k was freshly pressed since the last EndFrame.
func (t *KeyTracker) JustPressed(k render.Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressed[k]
}

// EndFrame forgets fresh presses. Call it once per frame after the frame
// callback has run.
func (t *KeyTracker) EndFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.pressed)
}
