package annotation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrTooFewMembers is returned by Combine when fewer than two objects are given.
var ErrTooFewMembers = errors.New("a combination needs at least two objects")

// Combine groups the objects with the given client IDs. Members must share
// label, frame and type. Objects that already belonged to another group are
// moved; groups left with fewer than two members are dissolved.
func (d *Document) Combine(ids []int, now time.Time) (Group, error) {
	if len(ids) < 2 {
		return Group{}, ErrTooFewMembers
	}

	members := make([]*Object, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return Group{}, fmt.Errorf("object %d listed twice", id)
		}
		seen[id] = true
		o, ok := d.Object(id)
		if !ok {
			return Group{}, fmt.Errorf("object %d not found", id)
		}
		members = append(members, o)
	}

	first := members[0]
	for _, o := range members[1:] {
		if o.Label != first.Label || o.FrameIndex != first.FrameIndex || o.Type != first.Type {
			return Group{}, fmt.Errorf("object %d does not match object %d (label, frame or type differ)", o.ID, first.ID)
		}
	}

	g := Group{
		ID:        uuid.New().String(),
		LabelID:   first.Label,
		Frame:     first.FrameIndex,
		Type:      first.Type,
		Members:   append([]int(nil), ids...),
		CreatedAt: now.UTC(),
	}
	for _, o := range members {
		if o.GroupID != "" {
			d.removeMember(o.GroupID, o.ID)
		}
		o.GroupID = g.ID
	}
	d.Groups = append(d.Groups, g)
	d.pruneGroups()
	return g, nil
}

func (d *Document) removeMember(groupID string, id int) {
	for i := range d.Groups {
		if d.Groups[i].ID != groupID {
			continue
		}
		kept := d.Groups[i].Members[:0]
		for _, m := range d.Groups[i].Members {
			if m != id {
				kept = append(kept, m)
			}
		}
		d.Groups[i].Members = kept
		return
	}
}

// pruneGroups dissolves groups with fewer than two members.
func (d *Document) pruneGroups() {
	kept := d.Groups[:0]
	for _, g := range d.Groups {
		if len(g.Members) >= 2 {
			kept = append(kept, g)
			continue
		}
		for _, id := range g.Members {
			if o, ok := d.Object(id); ok && o.GroupID == g.ID {
				o.GroupID = ""
			}
		}
	}
	d.Groups = kept
}
