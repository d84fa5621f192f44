package combine

// Select toggles obj in the selection. A selected object is removed. An
// unselected object is added only when the surface currently renders it and
// it matches the fingerprint of the first selected object; otherwise the pick
// is ignored.
func (h *Handler) Select(obj Object) {
	if obj == nil {
		return
	}
	id := obj.ClientID()
	if i := h.indexOf(id); i >= 0 {
		h.selection = append(h.selection[:i:i], h.selection[i+1:]...)
		if v, ok := h.highlighted[id]; ok {
			delete(h.highlighted, id)
			v.RemoveHighlight()
		}
		if len(h.selection) == 0 {
			h.constraints.clear()
		}
		h.logger.Debug("object deselected", "client_id", id, "selected", len(h.selection))
		return
	}

	var v Visual
	var ok bool
	if h.surface != nil {
		v, ok = h.surface.FindVisual(id)
	}
	if !ok || v == nil {
		h.logger.Debug("pick ignored, object not rendered", "client_id", id)
		return
	}
	if !h.constraints.isEligible(obj) {
		h.logger.Debug("pick ignored, constraint mismatch",
			"client_id", id,
			"label_id", obj.LabelID(),
			"frame", obj.Frame(),
			"type", obj.ObjectType(),
		)
		return
	}

	h.selection = append(h.selection, obj)
	h.highlighted[id] = v
	v.ApplyHighlight()
	if len(h.selection) == 1 {
		h.constraints.deriveFrom(obj)
	}
	h.logger.Debug("object selected", "client_id", id, "selected", len(h.selection))
}

// RepeatSelection reapplies highlights after the surface re-rendered and
// replaced its visual handles. Membership is unchanged; an object that is not
// rendered right now keeps its previous entry.
func (h *Handler) RepeatSelection() {
	if h.surface == nil {
		return
	}
	for _, obj := range h.selection {
		v, ok := h.surface.FindVisual(obj.ClientID())
		if !ok || v == nil {
			continue
		}
		h.highlighted[obj.ClientID()] = v
		v.ApplyHighlight()
	}
}

func (h *Handler) indexOf(clientID int) int {
	for i, obj := range h.selection {
		if obj.ClientID() == clientID {
			return i
		}
	}
	return -1
}
