package canvas

import "github.com/fakeyudi/tracklet/internal/annotation"

// Shape is the handle for one rendered object. It is valid until the next
// Render; class changes on a detached handle have no visible effect.
type Shape struct {
	obj     *annotation.Object
	classes map[string]bool
	alive   bool
}

func newShape(o *annotation.Object) *Shape {
	return &Shape{obj: o, classes: make(map[string]bool), alive: true}
}

// Object returns the annotation object drawn by this handle.
func (s *Shape) Object() *annotation.Object { return s.obj }

// Alive reports whether the handle belongs to the current render.
func (s *Shape) Alive() bool { return s.alive }

func (s *Shape) AddClass(name string)      { s.classes[name] = true }
func (s *Shape) RemoveClass(name string)   { delete(s.classes, name) }
func (s *Shape) HasClass(name string) bool { return s.classes[name] }
func (s *Shape) ApplyHighlight()           { s.AddClass(HighlightClass) }
func (s *Shape) RemoveHighlight()          { s.RemoveClass(HighlightClass) }
func (s *Shape) Highlighted() bool         { return s.HasClass(HighlightClass) }
func (s *Shape) detach()                   { s.alive = false }

func (s *Shape) contains(x, y int) bool {
	x0, y0, x1, y1, ok := s.obj.Bounds()
	return ok && x >= x0 && x <= x1 && y >= y0 && y <= y1
}
