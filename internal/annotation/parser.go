package annotation

import (
	"encoding/json"
	"fmt"
)

// ValidationError reports a document that parsed but is inconsistent.
type ValidationError struct {
	ClientID int // 0 when the problem is not tied to one object
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.ClientID != 0 {
		return fmt.Sprintf("invalid annotation document: object %d: %s", e.ClientID, e.Reason)
	}
	return "invalid annotation document: " + e.Reason
}

// Parse decodes and validates a JSON annotation document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse annotation document: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks identities, types and label references.
func (d *Document) Validate() error {
	if d.Version > CurrentVersion {
		return &ValidationError{Reason: fmt.Sprintf("unsupported version %d", d.Version)}
	}
	labels := make(map[int]bool, len(d.Labels))
	for _, l := range d.Labels {
		if labels[l.ID] {
			return &ValidationError{Reason: fmt.Sprintf("duplicate label id %d", l.ID)}
		}
		labels[l.ID] = true
	}

	ids := make(map[int]bool, len(d.Objects))
	for _, o := range d.Objects {
		if o == nil {
			return &ValidationError{Reason: "null object"}
		}
		if o.ID <= 0 {
			return &ValidationError{Reason: fmt.Sprintf("client_id must be positive, got %d", o.ID)}
		}
		if ids[o.ID] {
			return &ValidationError{ClientID: o.ID, Reason: "duplicate client_id"}
		}
		ids[o.ID] = true
		if !o.Type.Valid() {
			return &ValidationError{ClientID: o.ID, Reason: fmt.Sprintf("unknown type %q", o.Type)}
		}
		if len(o.Points) < 2 || len(o.Points)%2 != 0 {
			return &ValidationError{ClientID: o.ID, Reason: "points must be non-empty x,y pairs"}
		}
		if len(d.Labels) > 0 && !labels[o.Label] {
			return &ValidationError{ClientID: o.ID, Reason: fmt.Sprintf("unknown label_id %d", o.Label)}
		}
	}

	for _, g := range d.Groups {
		for _, m := range g.Members {
			if !ids[m] {
				return &ValidationError{Reason: fmt.Sprintf("group %s references missing object %d", g.ID, m)}
			}
		}
	}
	return nil
}
