// Package annotation holds the annotation document tracklet edits: labels,
// the per-frame shapes drawn on the canvas, and the groups produced by
// combining shapes.
package annotation

import (
	"sort"
	"time"
)

// CurrentVersion is the document format version written by Save.
const CurrentVersion = 1

// ShapeType is the object-type tag of a shape.
type ShapeType string

const (
	TypeRectangle ShapeType = "rectangle"
	TypePolygon   ShapeType = "polygon"
	TypePolyline  ShapeType = "polyline"
	TypePoints    ShapeType = "points"
	TypeEllipse   ShapeType = "ellipse"
	TypeCuboid    ShapeType = "cuboid"
)

// Valid reports whether t is a known shape type.
func (t ShapeType) Valid() bool {
	switch t {
	case TypeRectangle, TypePolygon, TypePolyline, TypePoints, TypeEllipse, TypeCuboid:
		return true
	}
	return false
}

// Document is the on-disk annotation file.
type Document struct {
	Version int       `json:"version"`
	Labels  []Label   `json:"labels"`
	Objects []*Object `json:"objects"`
	Groups  []Group   `json:"groups"`
}

// Label names a class of objects. Color is any lipgloss color
// ("39", "#ff8800"); empty means the canvas default.
type Label struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Object is one shape drawn on one frame. Points are flat x,y pairs in canvas
// cell units.
type Object struct {
	ID         int       `json:"client_id"`
	Label      int       `json:"label_id"`
	FrameIndex int       `json:"frame"`
	Type       ShapeType `json:"type"`
	Points     []int     `json:"points"`
	GroupID    string    `json:"group_id,omitempty"`
}

func (o *Object) ClientID() int      { return o.ID }
func (o *Object) LabelID() int       { return o.Label }
func (o *Object) Frame() int         { return o.FrameIndex }
func (o *Object) ObjectType() string { return string(o.Type) }

// Bounds returns the bounding box of the object's points as min and max
// corners. ok is false when the object has no complete point.
func (o *Object) Bounds() (x0, y0, x1, y1 int, ok bool) {
	if len(o.Points) < 2 {
		return 0, 0, 0, 0, false
	}
	x0, y0 = o.Points[0], o.Points[1]
	x1, y1 = x0, y0
	for i := 2; i+1 < len(o.Points); i += 2 {
		x, y := o.Points[i], o.Points[i+1]
		x0, x1 = min(x0, x), max(x1, x)
		y0, y1 = min(y0, y), max(y1, y)
	}
	return x0, y0, x1, y1, true
}

// Group is a combination of objects sharing label, frame and type.
type Group struct {
	ID        string    `json:"id"`
	LabelID   int       `json:"label_id"`
	Frame     int       `json:"frame"`
	Type      ShapeType `json:"type"`
	Members   []int     `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// Object returns the object with the given client ID.
func (d *Document) Object(id int) (*Object, bool) {
	for _, o := range d.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Label returns the label with the given ID.
func (d *Document) Label(id int) (Label, bool) {
	for _, l := range d.Labels {
		if l.ID == id {
			return l, true
		}
	}
	return Label{}, false
}

// Group returns the group with the given ID.
func (d *Document) Group(id string) (Group, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// ObjectsOnFrame returns the objects of one frame in document order.
func (d *Document) ObjectsOnFrame(frame int) []*Object {
	var out []*Object
	for _, o := range d.Objects {
		if o.FrameIndex == frame {
			out = append(out, o)
		}
	}
	return out
}

// Frames returns the distinct frame indexes in ascending order.
func (d *Document) Frames() []int {
	seen := make(map[int]bool)
	var out []int
	for _, o := range d.Objects {
		if !seen[o.FrameIndex] {
			seen[o.FrameIndex] = true
			out = append(out, o.FrameIndex)
		}
	}
	sort.Ints(out)
	return out
}
