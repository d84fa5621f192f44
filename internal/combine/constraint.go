package combine

// Fingerprint holds the fields every member of one combination must share.
type Fingerprint struct {
	LabelID    int
	Frame      int
	ObjectType string
}

func fingerprintOf(obj Object) Fingerprint {
	return Fingerprint{
		LabelID:    obj.LabelID(),
		Frame:      obj.Frame(),
		ObjectType: obj.ObjectType(),
	}
}

// constraints gates which objects may join the current selection. A nil
// fingerprint means nothing is selected yet and everything is eligible.
type constraints struct {
	fp *Fingerprint
}

func (c *constraints) deriveFrom(first Object) {
	fp := fingerprintOf(first)
	c.fp = &fp
}

func (c *constraints) clear() { c.fp = nil }

func (c *constraints) isEligible(obj Object) bool {
	if c.fp == nil {
		return true
	}
	return fingerprintOf(obj) == *c.fp
}
