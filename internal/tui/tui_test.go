package tui

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/tracklet/internal/annotation"
)

func testDocument() *annotation.Document {
	return &annotation.Document{
		Version: annotation.CurrentVersion,
		Labels:  []annotation.Label{{ID: 1, Name: "car"}, {ID: 2, Name: "person"}},
		Objects: []*annotation.Object{
			{ID: 1, Label: 1, FrameIndex: 0, Type: annotation.TypeRectangle, Points: []int{1, 1, 8, 4}},
			{ID: 2, Label: 1, FrameIndex: 0, Type: annotation.TypeRectangle, Points: []int{10, 1, 16, 4}},
			{ID: 3, Label: 2, FrameIndex: 0, Type: annotation.TypeRectangle, Points: []int{20, 1, 26, 4}},
			{ID: 4, Label: 1, FrameIndex: 3, Type: annotation.TypeRectangle, Points: []int{1, 1, 8, 4}},
		},
	}
}

// newTestModel saves doc to a temp file and opens an editor on it.
func newTestModel(t *testing.T, opts Options) (Model, annotation.Store) {
	t.Helper()
	store := annotation.NewFileStore(filepath.Join(t.TempDir(), "doc.json"))
	if err := store.Save(testDocument()); err != nil {
		t.Fatal(err)
	}
	doc, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Width == 0 {
		opts.Width, opts.Height = 40, 10
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	}
	return New(doc, store, opts), store
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// click presses the left button on canvas cell (x, y).
func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y + canvasTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestCombineFlowSavesGroup(t *testing.T) {
	m, store := newTestModel(t, Options{})

	m = send(m, keyPress("c"))
	if !m.Combining() || !m.ed.control.Active() {
		t.Fatal("c should turn combine mode on")
	}
	m = send(m, click(2, 2), click(12, 2))
	if got := m.Selected(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("selected: got %v", got)
	}
	if !strings.Contains(m.View(), "COMBINE 2") {
		t.Errorf("status bar should show the selection count:\n%s", m.View())
	}

	m = send(m, keyPress("c"))
	if m.Combining() || m.ed.control.Active() {
		t.Fatal("second c should finish combine mode")
	}
	if len(m.Document().Groups) != 1 {
		t.Fatalf("expected a group, got %+v", m.Document().Groups)
	}

	saved, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Groups) != 1 || !reflect.DeepEqual(saved.Groups[0].Members, []int{1, 2}) {
		t.Errorf("saved groups: %+v", saved.Groups)
	}
	if !strings.Contains(m.ed.status, "combined 2 objects") {
		t.Errorf("status: %q", m.ed.status)
	}
	if s, _ := m.ed.canvas.Shape(1); s.Highlighted() {
		t.Error("highlight should be gone after combining")
	}
}

func TestSingleObjectDoesNotCombine(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m = send(m, keyPress("c"), click(2, 2), keyPress("c"))

	saved, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Groups) != 0 || len(m.Document().Groups) != 0 {
		t.Error("a single object must not form a group")
	}
}

func TestEscCancels(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(m, keyPress("c"), click(2, 2), click(12, 2), keyPress("esc"))

	if m.Combining() || m.ed.control.Active() {
		t.Error("esc should leave combine mode")
	}
	if len(m.Selected()) != 0 || len(m.Document().Groups) != 0 {
		t.Errorf("cancel must drop the selection: %v", m.Selected())
	}
	if m.ed.canvas.Listeners() != 0 {
		t.Error("pick listener left registered")
	}
}

func TestMismatchedLabelIgnored(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(m, keyPress("c"), click(2, 2), click(22, 2))
	if got := m.Selected(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("selected: got %v", got)
	}
	if s, _ := m.ed.canvas.Shape(3); s.Highlighted() {
		t.Error("rejected object must not be highlighted")
	}
}

func TestClickWhileIdleDescribesObject(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(m, click(2, 2))
	if m.Combining() || len(m.Selected()) != 0 {
		t.Fatal("clicks outside combine mode must not select")
	}
	if !strings.Contains(m.ed.status, "#1 car rectangle") {
		t.Errorf("status: %q", m.ed.status)
	}
}

func TestClickOutsideCanvasIgnored(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(m, keyPress("c"), tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(m.Selected()) != 0 {
		t.Errorf("title bar click selected %v", m.Selected())
	}
}

func TestFrameChangeKeepsSelection(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(m, keyPress("c"), click(2, 2), keyPress("right"))
	if m.ed.frame != 3 {
		t.Fatalf("frame: got %d, want 3", m.ed.frame)
	}
	if _, ok := m.ed.canvas.Shape(1); ok {
		t.Error("object 1 should not be rendered on frame 3")
	}
	m = send(m, keyPress("right"))
	if m.ed.frame != 3 {
		t.Errorf("stepping past the last frame moved to %d", m.ed.frame)
	}

	m = send(m, keyPress("left"))
	if m.ed.frame != 0 {
		t.Fatalf("frame: got %d, want 0", m.ed.frame)
	}
	if got := m.Selected(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("selected: got %v", got)
	}
	if s, _ := m.ed.canvas.Shape(1); !s.Highlighted() {
		t.Error("highlight should come back with the frame")
	}
}

func TestResizeRestoresHighlights(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(m, keyPress("c"), click(2, 2))
	before, _ := m.ed.canvas.Shape(1)

	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	after, _ := m.ed.canvas.Shape(1)
	if after == before {
		t.Fatal("resize should re-render")
	}
	if !after.Highlighted() {
		t.Error("new handle should carry the highlight")
	}
	if w, h := m.ed.canvas.Size(); w != 60 || h != 20-chromeLines {
		t.Errorf("canvas size: %dx%d", w, h)
	}
}

func TestReadOnlyDisablesControl(t *testing.T) {
	m, _ := newTestModel(t, Options{ReadOnly: true})
	m = send(m, keyPress("c"))
	if m.Combining() {
		t.Error("read-only editor must not enter combine mode")
	}
	if !strings.Contains(m.View(), "combine unavailable") {
		t.Errorf("status bar should show the disabled control:\n%s", m.View())
	}
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m = send(m, keyPress("c"), click(2, 2))

	doc := testDocument()
	doc.Objects = append(doc.Objects, &annotation.Object{
		ID: 9, Label: 1, FrameIndex: 0, Type: annotation.TypeRectangle, Points: []int{28, 1, 34, 4},
	})
	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}

	m = send(m, reloadMsg{}, click(30, 2))
	if got := m.Selected(); !reflect.DeepEqual(got, []int{1, 9}) {
		t.Errorf("selected after reload: got %v", got)
	}
	if s, _ := m.ed.canvas.Shape(1); !s.Highlighted() {
		t.Error("reload should restore highlights")
	}
}

func TestReloadErrorShownInStatus(t *testing.T) {
	m, store := newTestModel(t, Options{})
	if err := os.WriteFile(store.Path(), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = send(m, reloadMsg{})
	if !m.ed.failed || !strings.Contains(m.ed.status, "reload failed") {
		t.Errorf("status: %q failed=%v", m.ed.status, m.ed.failed)
	}
	if len(m.Document().Objects) != 4 {
		t.Error("a failed reload must keep the current document")
	}
}

func TestQuitCancelsCombine(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(m, keyPress("c"), click(2, 2))
	next, cmd := m.Update(keyPress("q"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if m.Combining() || m.ed.canvas.Listeners() != 0 {
		t.Error("quitting must release combine mode")
	}
}
