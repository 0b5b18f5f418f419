package objects

// Members is an ordered name -> Object mapping. Ordering is insertion
// order as encountered in source. Redefining a name
// replaces the binding in place without changing its position, except
// for brand new names which are appended.
type Members struct {
	order []string
	byName map[string]Object
}

// NewMembers returns an empty, ready-to-use Members map.
func NewMembers() *Members {
	return &Members{byName: make(map[string]Object)}
}

// Set inserts or replaces the binding for name.
func (m *Members) Set(name string, obj Object) {
	if _, exists := m.byName[name]; !exists {
		m.order = append(m.order, name)
	}
	m.byName[name] = obj
}

// Get returns the object bound to name, if any.
func (m *Members) Get(name string) (Object, bool) {
	obj, ok := m.byName[name]
	return obj, ok
}

// Delete removes a binding entirely.
func (m *Members) Delete(name string) {
	if _, ok := m.byName[name]; !ok {
		return
	}
	delete(m.byName, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Keys returns bound names in insertion order.
func (m *Members) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of bound names.
func (m *Members) Len() int { return len(m.order) }

// Each calls visit for every (name, object) pair in insertion order.
func (m *Members) Each(visit func(name string, obj Object)) {
	for _, name := range m.order {
		visit(name, m.byName[name])
	}
}

// AddMember binds child under its own Name() in parent.Members(),
// maintaining the invariant that o.parent.members[o.name] is o.
// Callers must have constructed child with parent already set as its
// Parent(); AddMember only wires the forward (members) direction.
func AddMember(parent Object, child Object) {
	parent.Members().Set(child.Name(), child)
}
