package section

// ActiveIndex identifies the single expanded entry of a section, or None.
type ActiveIndex int

// None means every entry is collapsed.
const None ActiveIndex = -1

// OnInsert makes the newly appended entry active.
func OnInsert(newLen int) ActiveIndex {
	return ActiveIndex(newLen - 1)
}

// OnRemove adjusts the active index after entry removed was deleted leaving newLen entries.
// An index pointing at or after the removed entry shifts back by one (never below 0);
// an index before it is unchanged. The result is clamped to the new last entry.
func OnRemove(removed int, current ActiveIndex, newLen int) ActiveIndex {
	if current == None {
		return None
	}
	next := current
	if int(current) >= removed {
		next = max(0, current-1)
	}
	if newLen > 0 && int(next) > newLen-1 {
		next = ActiveIndex(newLen - 1)
	}
	return next
}

// OnToggle collapses i if it is active, otherwise expands it exclusively.
func OnToggle(i int, current ActiveIndex) ActiveIndex {
	if current == ActiveIndex(i) {
		return None
	}
	return ActiveIndex(i)
}

// Expanded reports whether entry i is the active one.
func (a ActiveIndex) Expanded(i int) bool {
	return a != None && int(a) == i
}
