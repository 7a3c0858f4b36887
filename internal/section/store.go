package section

// MinEntries is the number of entries a section keeps once initialized.
const MinEntries = 1

// Section holds the parallel field sequences of one repeated section.
// A Section is immutable: every mutating method returns a new value whose
// slices never alias the receiver's.
type Section struct {
	name   string
	keys   []string
	values map[string][]string
}

// New builds a Section for schema from form values. Fields missing from values
// start empty, and ragged sequences are padded with "" to the longest one so that
// every field has the same length.
func New(schema *Schema, values map[string][]string) Section {
	keys := schema.Keys()
	n := 0
	for _, k := range keys {
		n = max(n, len(values[k]))
	}

	out := make(map[string][]string, len(keys))
	for _, k := range keys {
		seq := make([]string, n)
		copy(seq, values[k])
		out[k] = seq
	}
	return Section{name: schema.Name, keys: keys, values: out}
}

// Name returns the section name.
func (s Section) Name() string { return s.name }

// Len returns the number of entries.
func (s Section) Len() int {
	if len(s.keys) == 0 {
		return 0
	}
	return len(s.values[s.keys[0]])
}

// Values returns a copy of every field sequence keyed by form key.
func (s Section) Values() map[string][]string {
	out := make(map[string][]string, len(s.keys))
	for _, k := range s.keys {
		out[k] = append([]string{}, s.values[k]...)
	}
	return out
}

// Value returns the value of field key at entry i.
func (s Section) Value(key string, i int) (string, error) {
	seq, ok := s.values[key]
	if !ok {
		return "", &FieldError{Section: s.name, Field: key}
	}
	if i < 0 || i >= len(seq) {
		return "", &BoundsError{Op: "value", Index: i, Len: len(seq)}
	}
	return seq[i], nil
}

// Entry returns the tuple of values at index i.
func (s Section) Entry(i int) (map[string]string, error) {
	if i < 0 || i >= s.Len() {
		return nil, &BoundsError{Op: "entry", Index: i, Len: s.Len()}
	}
	entry := make(map[string]string, len(s.keys))
	for _, k := range s.keys {
		entry[k] = s.values[k][i]
	}
	return entry, nil
}

// Append adds an empty entry at the end of every field sequence.
func (s Section) Append() Section {
	next := s.clone(1)
	for _, k := range next.keys {
		next.values[k] = append(next.values[k], "")
	}
	return next
}

// RemoveAt deletes entry i from every field sequence. It fails without changing
// anything when i is out of bounds or when the section would drop below MinEntries.
func (s Section) RemoveAt(i int) (Section, error) {
	n := s.Len()
	if n <= MinEntries {
		return s, &CardinalityError{Op: "remove", Min: MinEntries}
	}
	if i < 0 || i >= n {
		return s, &BoundsError{Op: "remove", Index: i, Len: n}
	}

	next := Section{name: s.name, keys: s.keys, values: make(map[string][]string, len(s.keys))}
	for _, k := range s.keys {
		seq := make([]string, 0, n-1)
		seq = append(seq, s.values[k][:i]...)
		seq = append(seq, s.values[k][i+1:]...)
		next.values[k] = seq
	}
	return next, nil
}

// UpdateField replaces the value of field key at entry i.
func (s Section) UpdateField(key string, i int, value string) (Section, error) {
	seq, ok := s.values[key]
	if !ok {
		return s, &FieldError{Section: s.name, Field: key}
	}
	if i < 0 || i >= len(seq) {
		return s, &BoundsError{Op: "update", Index: i, Len: len(seq)}
	}

	next := s.clone(0)
	next.values[key][i] = value
	return next, nil
}

func (s Section) clone(extra int) Section {
	next := Section{name: s.name, keys: s.keys, values: make(map[string][]string, len(s.keys))}
	for _, k := range s.keys {
		seq := make([]string, len(s.values[k]), len(s.values[k])+extra)
		copy(seq, s.values[k])
		next.values[k] = seq
	}
	return next
}
