package combine

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ErrAlreadyActive is returned by Enter when combine mode is already armed.
var ErrAlreadyActive = errors.New("combine mode already active")

// Handler is the combine mode state machine.
//
// A Handler is not safe for concurrent use. All calls are expected on a single
// event goroutine, and the DoneFunc may call back into the Handler
// synchronously: every public method works on a freshly reset instance.
type Handler struct {
	logger  *log.Logger
	surface Surface
	picks   PickSource
	resolve Resolver
	onDone  DoneFunc
	now     func() time.Time

	active      bool
	startedAt   time.Time
	selection   []Object
	highlighted map[int]Visual
	constraints constraints
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithClock replaces time.Now for duration measurement.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// New returns an idle Handler. picks may be nil when objects are only ever
// passed to Select directly.
func New(surface Surface, picks PickSource, resolve Resolver, onDone DoneFunc, opts ...Option) *Handler {
	h := &Handler{
		logger:      log.New(io.Discard),
		surface:     surface,
		picks:       picks,
		resolve:     resolve,
		onDone:      onDone,
		now:         time.Now,
		highlighted: make(map[int]Visual),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetCombineMode is the entry point for the upstream combine control:
// enabled arms combine mode, disabled finalizes it.
func (h *Handler) SetCombineMode(enabled bool) {
	if enabled {
		_ = h.Enter()
		return
	}
	h.Exit()
}

// Enter arms combine mode and starts listening for picks.
func (h *Handler) Enter() error {
	if h.active {
		h.logger.Warn("combine mode already active, enter rejected", "selected", len(h.selection))
		return ErrAlreadyActive
	}
	if h.picks != nil {
		h.picks.AddPickListener(h)
	}
	h.startedAt = h.now()
	h.active = true
	h.logger.Debug("combine mode entered")
	return nil
}

// Exit finalizes combine mode. It does nothing unless combine mode is armed.
// Two or more selected objects are emitted with the elapsed time; fewer
// produce an empty Result.
func (h *Handler) Exit() {
	if !h.active {
		return
	}
	captured := h.selection
	startedAt := h.startedAt
	h.release()

	if len(captured) > 1 {
		d := h.now().Sub(startedAt)
		if d < 0 {
			d = 0
		}
		h.logger.Info("combine finished", "objects", len(captured), "duration_ms", d.Milliseconds())
		h.emit(Result{Objects: captured, Duration: d})
		return
	}
	h.logger.Debug("combine finished without a combination", "objects", len(captured))
	h.emit(Result{})
}

// Cancel drops the selection and leaves combine mode. It always emits an
// empty Result, even when combine mode was not armed.
func (h *Handler) Cancel() {
	h.release()
	h.logger.Debug("combine cancelled")
	h.emit(Result{})
}

// HandlePick resolves a pick event and toggles the object under it.
func (h *Handler) HandlePick(ev PickEvent) {
	if h.resolve == nil {
		return
	}
	obj, ok := h.resolve(ev)
	if !ok {
		return
	}
	h.Select(obj)
}

// Active reports whether combine mode is armed.
func (h *Handler) Active() bool { return h.active }

// State returns the current state.
func (h *Handler) State() State {
	if h.active {
		return StateArmed
	}
	return StateIdle
}

// Selected returns a copy of the selection in pick order.
func (h *Handler) Selected() []Object {
	out := make([]Object, len(h.selection))
	copy(out, h.selection)
	return out
}

// Fingerprint returns the constraint derived from the first selected object.
func (h *Handler) Fingerprint() (Fingerprint, bool) {
	if h.constraints.fp == nil {
		return Fingerprint{}, false
	}
	return *h.constraints.fp, true
}

// release resets every piece of state. Highlights are removed before the
// handles are forgotten.
func (h *Handler) release() {
	h.constraints.clear()
	if h.picks != nil {
		h.picks.RemovePickListener(h)
	}
	for _, v := range h.highlighted {
		v.RemoveHighlight()
	}
	h.selection = nil
	h.highlighted = make(map[int]Visual)
	h.active = false
}

// emit must only be called after release: onDone may reenter the handler.
func (h *Handler) emit(r Result) {
	if h.onDone != nil {
		h.onDone(r)
	}
}

var _ PickListener = (*Handler)(nil)
