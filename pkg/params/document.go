package params

// Entry is a single key/value pair of a Document.
type Entry struct {
	Key   string
	Value Value
}

// Document is an ordered mapping from parameter names to values.
// The order of the keys is the order of the entries in the serialized file.
type Document struct {
	keys   []string
	values map[string]Value
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		values: make(map[string]Value),
	}
}

// Get returns the value stored for key.
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Set stores v for key. An existing key keeps its position, a new key is appended.
func (d *Document) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Delete removes key and reports whether it was present.
func (d *Document) Delete(key string) bool {
	if _, ok := d.values[key]; !ok {
		return false
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}

	return true
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)

	return keys
}

// Entries returns the entries in document order.
func (d *Document) Entries() []Entry {
	entries := make([]Entry, len(d.keys))
	for i, k := range d.keys {
		entries[i] = Entry{Key: k, Value: d.values[k]}
	}

	return entries
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		keys:   make([]string, len(d.keys)),
		values: make(map[string]Value, len(d.values)),
	}
	copy(c.keys, d.keys)
	for k, v := range d.values {
		c.values[k] = Clone(v)
	}

	return c
}

// Equal reports whether both documents hold the same entries in the same order.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.keys) != len(o.keys) {
		return false
	}
	for i, k := range d.keys {
		if o.keys[i] != k || !Equal(d.values[k], o.values[k]) {
			return false
		}
	}

	return true
}

// FromEntries builds a document from entries, in order. Later duplicates replace earlier ones.
func FromEntries(entries ...Entry) *Document {
	d := NewDocument()
	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}

	return d
}
