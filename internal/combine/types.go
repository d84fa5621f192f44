// Package combine implements combine mode: the interaction state machine that
// lets a user pick several compatible shapes on a canvas and merge them into
// one object.
//
// A Handler is driven by three kinds of input: the upstream combine control
// (SetCombineMode, Cancel), pick events delivered by the canvas while combine
// mode is armed, and re-render notifications (RepeatSelection). Its only
// output is one Result per Exit/Cancel, delivered through the DoneFunc.
package combine

import "time"

// Object is a reference to an annotated shape. The annotation model owns it;
// the handler only reads the four fields below.
type Object interface {
	ClientID() int
	LabelID() int
	Frame() int
	ObjectType() string
}

// Visual is the on-canvas representation of one object. Handles are borrowed
// from the Surface and may be invalidated by any re-render.
type Visual interface {
	ApplyHighlight()
	RemoveHighlight()
}

// Surface looks up the current visual handle for an object.
type Surface interface {
	FindVisual(clientID int) (Visual, bool)
}

// PickEvent is a pointer click on the canvas, in canvas cell coordinates.
type PickEvent struct {
	X, Y int
}

// PickListener receives pick events from a PickSource.
type PickListener interface {
	HandlePick(ev PickEvent)
}

// PickSource is the event source the handler arms while combine mode is on.
type PickSource interface {
	AddPickListener(l PickListener)
	RemovePickListener(l PickListener)
}

// Resolver returns the object under a pick event, if any.
type Resolver func(ev PickEvent) (Object, bool)

// Result is emitted once per Exit or Cancel. Objects is nil when no
// combination was produced; Duration is only set alongside Objects.
type Result struct {
	Objects  []Object
	Duration time.Duration
}

// Combined reports whether the result carries a combination.
func (r Result) Combined() bool { return r.Objects != nil }

// DoneFunc is notified when combining ends.
type DoneFunc func(Result)

// State enumerates the handler's states.
type State int

const (
	StateIdle State = iota
	StateArmed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	default:
		return "unknown"
	}
}
