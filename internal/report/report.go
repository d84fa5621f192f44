// Package report renders an annotation document, and the group produced by
// a combine, for the terminal or for scripts.
package report

import (
	"slices"
	"strconv"

	"github.com/fakeyudi/tracklet/internal/annotation"
)

// Report is the complete, renderable summary of a document.
type Report struct {
	Source   string             `json:"source"`
	Frames   []Frame            `json:"frames"`
	Groups   []annotation.Group `json:"groups"`
	Combined *annotation.Group  `json:"combined,omitempty"` // set after a combine
	DryRun   bool               `json:"dry_run,omitempty"`
}

// Frame lists the objects of one frame.
type Frame struct {
	Index   int      `json:"frame"`
	Objects []Object `json:"objects"`
}

// Object is one row of a frame listing.
type Object struct {
	ClientID int    `json:"client_id"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	GroupID  string `json:"group_id,omitempty"`
}

// Build summarises doc. When frames is non-empty only those frames and the
// groups on them are included.
func Build(source string, doc *annotation.Document, frames ...int) *Report {
	r := &Report{Source: source, Frames: []Frame{}, Groups: []annotation.Group{}}
	want := func(f int) bool { return len(frames) == 0 || slices.Contains(frames, f) }

	for _, f := range doc.Frames() {
		if !want(f) {
			continue
		}
		fr := Frame{Index: f}
		for _, o := range doc.ObjectsOnFrame(f) {
			fr.Objects = append(fr.Objects, Object{
				ClientID: o.ID,
				Label:    labelName(doc, o.Label),
				Type:     string(o.Type),
				GroupID:  o.GroupID,
			})
		}
		r.Frames = append(r.Frames, fr)
	}
	for _, g := range doc.Groups {
		if want(g.Frame) {
			r.Groups = append(r.Groups, g)
		}
	}
	return r
}

// ObjectCount returns the number of listed objects.
func (r *Report) ObjectCount() int {
	n := 0
	for _, f := range r.Frames {
		n += len(f.Objects)
	}
	return n
}

func labelName(doc *annotation.Document, id int) string {
	if l, ok := doc.Label(id); ok && l.Name != "" {
		return l.Name
	}
	return "#" + strconv.Itoa(id)
}
