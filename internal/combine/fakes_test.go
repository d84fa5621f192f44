package combine

import "time"

// shape is a minimal Object for tests.
type shape struct {
	id    int
	label int
	frame int
	kind  string
}

func (s *shape) ClientID() int      { return s.id }
func (s *shape) LabelID() int       { return s.label }
func (s *shape) Frame() int         { return s.frame }
func (s *shape) ObjectType() string { return s.kind }

func rect(id, label, frame int) *shape {
	return &shape{id: id, label: label, frame: frame, kind: "rectangle"}
}

// fakeVisual records highlight calls.
type fakeVisual struct {
	highlighted bool
	applied     int
	removed     int
}

func (v *fakeVisual) ApplyHighlight()  { v.highlighted = true; v.applied++ }
func (v *fakeVisual) RemoveHighlight() { v.highlighted = false; v.removed++ }

// fakeSurface hands out one visual per rendered client ID. rerender replaces
// every handle, like a canvas redraw does.
type fakeSurface struct {
	visuals map[int]*fakeVisual
}

func newFakeSurface(ids ...int) *fakeSurface {
	s := &fakeSurface{visuals: make(map[int]*fakeVisual)}
	for _, id := range ids {
		s.visuals[id] = &fakeVisual{}
	}
	return s
}

func (s *fakeSurface) FindVisual(id int) (Visual, bool) {
	v, ok := s.visuals[id]
	if !ok {
		return nil, false
	}
	return v, true
}

func (s *fakeSurface) rerender() map[int]*fakeVisual {
	old := s.visuals
	s.visuals = make(map[int]*fakeVisual, len(old))
	for id := range old {
		s.visuals[id] = &fakeVisual{}
	}
	return old
}

func (s *fakeSurface) highlightedIDs() map[int]bool {
	out := make(map[int]bool)
	for id, v := range s.visuals {
		if v.highlighted {
			out[id] = true
		}
	}
	return out
}

// fakePicks is a listener registry that counts registrations.
type fakePicks struct {
	listeners []PickListener
	added     int
}

func (p *fakePicks) AddPickListener(l PickListener) {
	p.added++
	p.listeners = append(p.listeners, l)
}

func (p *fakePicks) RemovePickListener(l PickListener) {
	for i, cur := range p.listeners {
		if cur == l {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return
		}
	}
}

func (p *fakePicks) dispatch(ev PickEvent) {
	for _, l := range append([]PickListener(nil), p.listeners...) {
		l.HandlePick(ev)
	}
}

// recorder collects emitted results.
type recorder struct {
	results []Result
}

func (r *recorder) done(res Result) { r.results = append(r.results, res) }

func (r *recorder) last() Result {
	if len(r.results) == 0 {
		return Result{}
	}
	return r.results[len(r.results)-1]
}

// stepClock advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(step)
		return t
	}
}

func ids(objs []Object) []int {
	out := make([]int, len(objs))
	for i, o := range objs {
		out[i] = o.ClientID()
	}
	return out
}
