package sheet

// Columns is the ordered list of header names read from row 1
type Columns []string

// Field is one name/value entry of a Record
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from column name to cell value.
//
// Setting a name that is already present replaces its value in place, so a
// header with duplicate names yields one field per distinct name, positioned
// at the first occurrence and holding the last value written.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord creates an empty record with room for size fields
func NewRecord(size int) *Record {
	return &Record{
		fields: make([]Field, 0, size),
		index:  make(map[string]int, size),
	}
}

// Set assigns value to name
func (r *Record) Set(name string, value Value) {
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Fields returns the fields in insertion order. The slice must not be modified.
func (r *Record) Fields() []Field {
	return r.fields
}

// Len returns the number of distinct field names
func (r *Record) Len() int {
	return len(r.fields)
}

// Names returns the field names in order
func (r *Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}
