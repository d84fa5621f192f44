package tui

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fakeyudi/tracklet/internal/annotation"
	"github.com/fakeyudi/tracklet/internal/canvas"
	"github.com/fakeyudi/tracklet/internal/combine"
)

// editor owns the document and every component wired around the combine
// handler. Bubble Tea copies the Model, so shared state lives here.
type editor struct {
	store    annotation.Store
	doc      *annotation.Document
	canvas   *canvas.Canvas
	handler  *combine.Handler
	control  *Control
	logger   *log.Logger
	now      func() time.Time
	frame    int
	readOnly bool

	status string
	failed bool
}

func newEditor(doc *annotation.Document, store annotation.Store, opts Options) *editor {
	e := &editor{
		store:    store,
		doc:      doc,
		logger:   opts.Logger,
		now:      opts.Now,
		frame:    opts.Frame,
		readOnly: opts.ReadOnly,
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.canvas = canvas.New(opts.Width, opts.Height, canvas.Options{HighlightColor: opts.HighlightColor})
	e.canvas.SetLabels(doc.Labels)
	e.handler = combine.New(e.canvas, e.canvas, e.canvas.Resolve, e.done,
		combine.WithLogger(e.logger), combine.WithClock(e.now))
	e.control = NewControl(e.handler)
	e.refreshControl()
	e.render()
	return e
}

// render redraws the current frame and restores highlights on the new handles.
func (e *editor) render() {
	e.canvas.Render(e.frame, e.doc.Objects)
	e.handler.RepeatSelection()
}

func (e *editor) resize(width, height int) {
	e.canvas.Resize(width, height)
	e.render()
}

// step moves to the previous (delta < 0) or next frame that has objects.
func (e *editor) step(delta int) {
	frames := e.doc.Frames()
	if len(frames) == 0 {
		return
	}
	i := sort.SearchInts(frames, e.frame)
	switch {
	case delta > 0 && i < len(frames) && frames[i] == e.frame:
		i++
	case delta < 0:
		i--
	}
	if i < 0 || i >= len(frames) {
		return
	}
	e.frame = frames[i]
	e.render()
}

// reload replaces the document with the one on disk.
func (e *editor) reload() {
	doc, err := e.store.Load()
	if err != nil {
		e.logger.Warn("reload failed", "path", e.store.Path(), "err", err)
		e.setError(fmt.Errorf("reload failed: %w", err))
		return
	}
	e.doc = doc
	e.canvas.SetLabels(doc.Labels)
	e.refreshControl()
	e.render()
	e.logger.Debug("document reloaded", "path", e.store.Path(), "objects", len(doc.Objects))
}

// done is the combine handler's completion callback. The handler is already
// reset when it runs.
func (e *editor) done(r combine.Result) {
	if r.Combined() {
		e.apply(r)
	}
	e.control.Sync(false)
}

func (e *editor) apply(r combine.Result) {
	ids := make([]int, len(r.Objects))
	for i, o := range r.Objects {
		ids[i] = o.ClientID()
	}
	g, err := e.doc.Combine(ids, e.now())
	if err != nil {
		e.logger.Warn("combine rejected", "objects", ids, "err", err)
		e.setError(err)
		return
	}
	if err := e.store.Save(e.doc); err != nil {
		e.logger.Error("save failed", "path", e.store.Path(), "err", err)
		e.setError(err)
		return
	}
	e.logger.Info("objects combined", "group", g.ID, "objects", ids, "duration_ms", r.Duration.Milliseconds())
	e.setStatus(fmt.Sprintf("combined %d objects into %s", len(ids), shortID(g.ID)))
	e.render()
}

func (e *editor) refreshControl() {
	e.control.SetDisabled(e.readOnly || len(e.doc.Objects) == 0)
}

// describe reports the object under a click while combine mode is off.
func (e *editor) describe(x, y int) {
	o, ok := e.canvas.ObjectAt(x, y)
	if !ok {
		return
	}
	label := fmt.Sprintf("label %d", o.Label)
	if l, ok := e.doc.Label(o.Label); ok && l.Name != "" {
		label = l.Name
	}
	text := fmt.Sprintf("#%d %s %s", o.ID, label, o.Type)
	if o.GroupID != "" {
		text += " in " + shortID(o.GroupID)
	}
	e.setStatus(text)
}

func (e *editor) setStatus(s string) { e.status, e.failed = s, false }
func (e *editor) setError(err error) { e.status, e.failed = err.Error(), true }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
