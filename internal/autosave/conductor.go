// Package autosave decides when a stream of layout edits is durable enough
// to persist. Edits arrive as rapid small deltas (drag interactions);
// persisting every delta would be wasteful and could interleave out of
// order, so the conductor coalesces them behind a trailing-edge debounce
// and serializes the resulting save cycles.
package autosave

import (
	"sync"
	"time"

	"github.com/seewee/seewee/pkg/types"
)

// Conductor states.
const (
	StateIdle    = "idle"
	StatePending = "pending"
	StateSaving  = "saving"
	StateSaved   = "saved"
	StateError   = "error"
)

// Defaults for the debounce window and the saved-state display hold.
const (
	DefaultDebounce  = 600 * time.Millisecond
	DefaultSavedHold = 1500 * time.Millisecond
)

// SaveFunc persists one layout snapshot together with the variant name.
// The conductor never issues two overlapping calls for its variant.
type SaveFunc func(variantID string, layout *types.Layout, name string) error

// SnapshotFunc returns the current layout and variant name. It is invoked
// at debounce expiry, so the payload reflects the state at expiry time,
// not at the time the window was opened.
type SnapshotFunc func() (*types.Layout, string)

// payload is the canonicalized form used for change detection: section
// order, intra-section entry order, and the variant name.
type payload struct {
	layout *types.Layout
	name   string
}

func (p payload) canonical() string {
	if p.layout == nil {
		return "|" + p.name
	}
	return string(p.layout.Canonical()) + "|" + p.name
}

// Conductor runs the autosave state machine for one editing session of
// one variant. Construct a fresh Conductor when a different variant is
// loaded; the zero baseline set by Load suppresses the spurious save that
// the initial population of state would otherwise trigger.
type Conductor struct {
	mu sync.Mutex

	variantID string
	snapshot  SnapshotFunc
	save      SaveFunc

	debounce  time.Duration
	savedHold time.Duration

	state     string
	lastSaved string // canonical form of the last successfully persisted payload
	baselined bool   // Load has recorded the initial population
	dirty     bool   // edits arrived while a save was in flight
	lastErr   error

	timer    *time.Timer
	timerGen int // a restarted timer supersedes the previous one
}

// Option configures a Conductor.
type Option func(*Conductor)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Conductor) { c.debounce = d }
}

// WithSavedHold overrides how long the saved state is displayed before
// returning to idle. Presentation only; carries no correctness weight.
func WithSavedHold(d time.Duration) Option {
	return func(c *Conductor) { c.savedHold = d }
}

// New creates a Conductor for one variant editing session.
func New(variantID string, snapshot SnapshotFunc, save SaveFunc, opts ...Option) *Conductor {
	c := &Conductor{
		variantID: variantID,
		snapshot:  snapshot,
		save:      save,
		debounce:  DefaultDebounce,
		savedHold: DefaultSavedHold,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current conductor state.
func (c *Conductor) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the failure from the most recent save attempt, or nil.
func (c *Conductor) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Load records the initial population of layout state as the persisted
// baseline. It must be called once, after the layout is first loaded and
// before any edit; without it the first Edit would rewrite an unmodified
// layout on variant switch.
func (c *Conductor) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	layout, name := c.snapshot()
	c.lastSaved = payload{layout: layout, name: name}.canonical()
	c.baselined = true
	c.state = StateIdle
	c.dirty = false
	c.lastErr = nil
}

// Edit notifies the conductor that a layout-affecting operation (or a
// variant-name edit) happened. From idle, saved, or error it opens a new
// debounce window; while pending it restarts the window; while saving it
// queues a follow-up cycle instead of merging into the in-flight write.
func (c *Conductor) Edit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateSaving:
		c.dirty = true
	case StatePending:
		c.restartTimerLocked()
	default:
		c.state = StatePending
		c.lastErr = nil
		c.restartTimerLocked()
	}
}

// Flush cancels any pending window and synchronously persists the current
// snapshot when it differs from the last persisted payload. Used when an
// editing session ends. Returns the save error, if any.
func (c *Conductor) Flush() error {
	c.mu.Lock()
	if c.state == StateSaving {
		// An in-flight save will requeue dirty edits; nothing to do here
		// beyond reporting the known state.
		c.mu.Unlock()
		return nil
	}
	c.stopTimerLocked()
	layout, name := c.snapshot()
	p := payload{layout: layout, name: name}
	if p.canonical() == c.lastSaved {
		c.state = StateIdle
		c.mu.Unlock()
		return nil
	}
	c.state = StateSaving
	c.mu.Unlock()

	err := c.save(c.variantID, p.layout, p.name)
	c.finishSave(p, err)
	return err
}

// Stop cancels any running timer without saving. Pending edits are left
// in memory; the caller is expected to Flush first when they matter.
func (c *Conductor) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

// restartTimerLocked arms the debounce timer, superseding any running
// one. The caller must hold c.mu.
func (c *Conductor) restartTimerLocked() {
	c.timerGen++
	gen := c.timerGen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.timerExpired(gen)
	})
}

// stopTimerLocked cancels the debounce timer if armed. The caller must
// hold c.mu.
func (c *Conductor) stopTimerLocked() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// timerExpired runs when the debounce window closes. A stale generation
// means a newer timer superseded this one. The snapshot is taken here, at
// expiry time, and the save is skipped entirely when the canonical
// payload matches the last successful save.
func (c *Conductor) timerExpired(gen int) {
	c.mu.Lock()
	if gen != c.timerGen || c.state != StatePending {
		c.mu.Unlock()
		return
	}

	layout, name := c.snapshot()
	p := payload{layout: layout, name: name}
	if p.canonical() == c.lastSaved {
		c.state = StateIdle
		c.mu.Unlock()
		return
	}

	c.state = StateSaving
	c.dirty = false
	c.mu.Unlock()

	err := c.save(c.variantID, p.layout, p.name)
	c.finishSave(p, err)
}

// finishSave applies the result of a persistence call. Success records
// the new baseline and either requeues dirty edits or shows saved for the
// display hold; failure moves to the error state while local edits remain
// the source of truth.
func (c *Conductor) finishSave(p payload, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateError
		c.lastErr = err
		return
	}

	c.lastSaved = p.canonical()
	c.lastErr = nil

	if c.dirty {
		c.dirty = false
		c.state = StatePending
		c.restartTimerLocked()
		return
	}

	c.state = StateSaved
	c.timerGen++
	gen := c.timerGen
	c.timer = time.AfterFunc(c.savedHold, func() {
		c.holdExpired(gen)
	})
}

// holdExpired returns the conductor to idle after the saved display hold.
func (c *Conductor) holdExpired(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.timerGen || c.state != StateSaved {
		return
	}
	c.state = StateIdle
}
