package types

import "fmt"

// Field pairs a name with its descriptor for schema construction.
type Field struct {
	Name string
	Desc FieldDescriptor
}

// Schema is an ordered, immutable field-name to descriptor table. One
// schema instance is built per payload family and shared read-only by
// every payload of that family; it is never mutated after construction.
type Schema struct {
	names  []string
	fields map[string]FieldDescriptor
}

// NewSchema builds a schema from the given fields, preserving declaration
// order. Schemas are declarative package-level tables, so a malformed
// descriptor or duplicate name is a programming error and panics.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: make(map[string]FieldDescriptor, len(fields))}
	for _, f := range fields {
		if err := f.Desc.Check(); err != nil {
			panic(fmt.Sprintf("schema field %q: %v", f.Name, err))
		}
		if _, dup := s.fields[f.Name]; dup {
			panic(fmt.Sprintf("schema field %q declared twice", f.Name))
		}
		s.names = append(s.names, f.Name)
		s.fields[f.Name] = f.Desc
	}
	return s
}

// Extend returns a new schema that is the union of this schema and the
// given fields. Later entries override earlier ones by name, keeping the
// original position; new names append in declaration order. This is how
// family schemas layer over the common payload keys, including pinning
// PayloadType and PayloadVersion to fixed values.
func (s *Schema) Extend(fields ...Field) *Schema {
	out := &Schema{
		names:  make([]string, len(s.names), len(s.names)+len(fields)),
		fields: make(map[string]FieldDescriptor, len(s.fields)+len(fields)),
	}
	copy(out.names, s.names)
	for name, desc := range s.fields {
		out.fields[name] = desc
	}
	for _, f := range fields {
		if err := f.Desc.Check(); err != nil {
			panic(fmt.Sprintf("schema field %q: %v", f.Name, err))
		}
		if _, exists := out.fields[f.Name]; !exists {
			out.names = append(out.names, f.Name)
		}
		out.fields[f.Name] = f.Desc
	}
	return out
}

// Get returns the descriptor for the named field.
func (s *Schema) Get(name string) (FieldDescriptor, bool) {
	d, ok := s.fields[name]
	return d, ok
}

// Has reports whether the named field is declared in the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.names)
}
