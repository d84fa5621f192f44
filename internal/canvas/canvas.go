// Package canvas is the terminal drawing surface for one frame of an
// annotation document. Every Render replaces all shape handles, so handles
// held by other components go stale exactly like DOM nodes after a redraw.
package canvas

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/tracklet/internal/annotation"
	"github.com/fakeyudi/tracklet/internal/combine"
)

// HighlightClass marks a shape that is staged for combining.
const HighlightClass = "combining"

// Options configures colours.
type Options struct {
	HighlightColor string // lipgloss color for highlighted shapes
	DefaultColor   string // used when a label has no color
}

// DefaultOptions returns the built-in colours.
func DefaultOptions() Options {
	return Options{HighlightColor: "205", DefaultColor: "245"}
}

// Canvas renders shapes into a fixed-size cell grid and dispatches pick
// events to registered listeners.
type Canvas struct {
	width, height int
	frame         int
	generation    int
	shapes        []*Shape
	byID          map[int]*Shape
	labels        map[int]annotation.Label
	listeners     []combine.PickListener
	opts          Options
}

// New returns an empty canvas of the given size in cells.
func New(width, height int, opts Options) *Canvas {
	if opts.HighlightColor == "" {
		opts.HighlightColor = DefaultOptions().HighlightColor
	}
	if opts.DefaultColor == "" {
		opts.DefaultColor = DefaultOptions().DefaultColor
	}
	return &Canvas{
		width:  max(width, 1),
		height: max(height, 1),
		byID:   make(map[int]*Shape),
		labels: make(map[int]annotation.Label),
		opts:   opts,
	}
}

// SetLabels sets the label table used for shape colours.
func (c *Canvas) SetLabels(labels []annotation.Label) {
	c.labels = make(map[int]annotation.Label, len(labels))
	for _, l := range labels {
		c.labels[l.ID] = l
	}
}

// Resize changes the grid size. Callers re-render afterwards.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Frame returns the frame of the last Render.
func (c *Canvas) Frame() int { return c.frame }

// Generation counts renders; it changes whenever handles are replaced.
func (c *Canvas) Generation() int { return c.generation }

// Render discards every existing handle and creates new ones for objects,
// drawn in slice order (later objects on top).
func (c *Canvas) Render(frame int, objects []*annotation.Object) {
	for _, s := range c.shapes {
		s.detach()
	}
	c.frame = frame
	c.generation++
	c.shapes = make([]*Shape, 0, len(objects))
	c.byID = make(map[int]*Shape, len(objects))
	for _, o := range objects {
		if o == nil || o.FrameIndex != frame {
			continue
		}
		s := newShape(o)
		c.shapes = append(c.shapes, s)
		c.byID[o.ID] = s
	}
}

// Shape returns the live handle for a client ID.
func (c *Canvas) Shape(clientID int) (*Shape, bool) {
	s, ok := c.byID[clientID]
	return s, ok
}

// Shapes returns the live handles in draw order.
func (c *Canvas) Shapes() []*Shape {
	return append([]*Shape(nil), c.shapes...)
}

// FindVisual implements combine.Surface.
func (c *Canvas) FindVisual(clientID int) (combine.Visual, bool) {
	s, ok := c.byID[clientID]
	if !ok {
		return nil, false
	}
	return s, true
}

// ObjectAt returns the topmost object whose bounding box contains the cell.
func (c *Canvas) ObjectAt(x, y int) (*annotation.Object, bool) {
	for i := len(c.shapes) - 1; i >= 0; i-- {
		if c.shapes[i].contains(x, y) {
			return c.shapes[i].obj, true
		}
	}
	return nil, false
}

// Resolve is a combine.Resolver backed by ObjectAt.
func (c *Canvas) Resolve(ev combine.PickEvent) (combine.Object, bool) {
	o, ok := c.ObjectAt(ev.X, ev.Y)
	if !ok {
		return nil, false
	}
	return o, true
}

// AddPickListener implements combine.PickSource. Adding a listener twice
// registers it once.
func (c *Canvas) AddPickListener(l combine.PickListener) {
	for _, cur := range c.listeners {
		if cur == l {
			return
		}
	}
	c.listeners = append(c.listeners, l)
}

// RemovePickListener implements combine.PickSource.
func (c *Canvas) RemovePickListener(l combine.PickListener) {
	for i, cur := range c.listeners {
		if cur == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of registered pick listeners.
func (c *Canvas) Listeners() int { return len(c.listeners) }

// Pick dispatches a click at cell (x, y) to every registered listener.
// Listeners may add or remove listeners while being notified.
func (c *Canvas) Pick(x, y int) {
	ev := combine.PickEvent{X: x, Y: y}
	for _, l := range append([]combine.PickListener(nil), c.listeners...) {
		l.HandlePick(ev)
	}
}

func (c *Canvas) styleFor(s *Shape) lipgloss.Style {
	if s.HasClass(HighlightClass) {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.opts.HighlightColor)).Bold(true)
	}
	color := c.opts.DefaultColor
	if l, ok := c.labels[s.obj.Label]; ok && l.Color != "" {
		color = l.Color
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var (
	_ combine.Surface    = (*Canvas)(nil)
	_ combine.PickSource = (*Canvas)(nil)
)
