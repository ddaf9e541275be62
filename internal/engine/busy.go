package engine

// busySet tracks which timeslots are already committed for a given
// teacher, group, or room code within one generation run. It is owned
// by the run and discarded afterwards; nothing here is shared state.
type busySet map[string]map[string]struct{}

func newBusySet() busySet {
	return make(busySet)
}

func (b busySet) busy(code, slotID string) bool {
	set, ok := b[code]
	if !ok {
		return false
	}
	_, taken := set[slotID]
	return taken
}

func (b busySet) mark(code, slotID string) {
	set, ok := b[code]
	if !ok {
		set = make(map[string]struct{})
		b[code] = set
	}
	set[slotID] = struct{}{}
}
