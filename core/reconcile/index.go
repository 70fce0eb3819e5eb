package reconcile

// ElementIndex maps tracking keys to placed columns.
type ElementIndex struct {
	byKey map[string]*Instance
}

// NewElementIndex indexes every instance carrying a non-empty mark.
// When two instances share a mark the last one wins.
func NewElementIndex(instances []Instance) *ElementIndex {
	idx := &ElementIndex{byKey: make(map[string]*Instance, len(instances))}
	for i := range instances {
		if instances[i].Mark == "" {
			continue
		}
		idx.byKey[instances[i].Mark] = &instances[i]
	}
	return idx
}

// Lookup returns the instance tracked under key.
func (x *ElementIndex) Lookup(key string) (*Instance, bool) {
	inst, ok := x.byKey[key]
	return inst, ok
}

// Put tracks inst under key.
func (x *ElementIndex) Put(key string, inst *Instance) {
	x.byKey[key] = inst
}

// Len returns the number of tracked keys.
func (x *ElementIndex) Len() int { return len(x.byKey) }

// snapshot copies the key set so later Puts do not affect it.
func (x *ElementIndex) snapshot() map[string]*Instance {
	out := make(map[string]*Instance, len(x.byKey))
	for k, v := range x.byKey {
		out[k] = v
	}
	return out
}
