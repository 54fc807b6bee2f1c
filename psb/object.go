package psb

// ObjectMapper is implemented by any aggregate with a declarative field
// list driving PSB encode/decode -- the Go re-expression of the "object
// map" entry point described for schema traversal: a trait exposing
// read_into/write_from is here a single method returning the bound field
// descriptors, consumed by ReadObject/WriteObject.
type ObjectMapper interface {
	ObjectMap() []Field
}

// Field is one descriptor in an object map: a name bound to a value
// reference plus the presence semantics (required/optional/defaulted/
// variant) that govern it. Field values are built by the constructors in
// schema.go; this type itself stays free of any single wire kind so one
// traversal engine drives every field kind uniformly.
type Field struct {
	Name     string
	Required bool
	Variant  *VariantGroup
	Present  func() bool
	Reset    func()
	Read     func(r *Reader)
	Write    func(w *Writer)
}

// VariantGroup tracks, across a set of Field alternatives sharing one
// sum-typed binding, which single alternative is active. Re-expresses the
// source's destructor-driven "scoped variant lifetime" check as an
// explicit mark-then-verify step integrated into ReadObject/WriteObject.
type VariantGroup struct {
	active string
}

func (g *VariantGroup) mark(name string) {
	if g.active != "" && g.active != name {
		panic(ErrSchemaInvalidKey)
	}
	g.active = name
}

// Active reports which alternative name is currently marked, or "" if
// none.
func (g *VariantGroup) Active() string { return g.active }

// ReadObject decodes the current object (precondition: r.lastTag ==
// TypeObject) into the bindings named in fields, per the five-step
// traversal: open, dispatch-by-key, duplicate/required accounting,
// reset-on-absence, close.
func ReadObject(r *Reader, fields []Field) {
	names := make(map[string]int, len(fields))
	for i, f := range fields {
		names[f.Name] = i
	}
	seen := make([]bool, len(fields))
	remaining := r.StartObject()

	for {
		idx, ok := r.Key(names, &remaining)
		if !ok {
			break
		}
		if seen[idx] {
			panic(ErrSchemaInvalidKey)
		}
		seen[idx] = true
		f := fields[idx]
		if f.Variant != nil {
			f.Variant.mark(f.Name)
		}
		r.path = append(r.path, f.Name)
		f.Read(r)
		r.path = r.path[:len(r.path)-1]
	}

	missing := 0
	for i, f := range fields {
		if seen[i] {
			continue
		}
		if f.Required {
			missing++
			continue
		}
		if f.Reset != nil {
			f.Reset()
		}
	}
	if missing > 0 {
		panic(ErrSchemaMissingKey)
	}
	r.EndObject()
}

// WriteObject emits the current object from the bindings named in
// fields, in declaration order, omitting absent optional/defaulted/
// inactive-variant fields.
func WriteObject(w *Writer, fields []Field) {
	present := make([]bool, len(fields))
	count := 0
	groupHits := make(map[*VariantGroup]int)
	for i, f := range fields {
		ok := f.Required || (f.Present != nil && f.Present())
		present[i] = ok
		if ok {
			count++
			if f.Variant != nil {
				groupHits[f.Variant]++
			}
		}
	}
	for _, n := range groupHits {
		if n > 1 {
			panic(ErrSchemaInvalidKey)
		}
	}

	w.StartObject(count)
	for i, f := range fields {
		if present[i] {
			w.Key(f.Name)
			w.path = append(w.path, f.Name)
			f.Write(w)
			w.path = w.path[:len(w.path)-1]
		}
	}
	w.EndObject()
}

// ReadNestedObject reads a sub-object bound to an ObjectMapper value that
// has already had its own tag consumed by the enclosing Key() dispatch.
func ReadNestedObject(r *Reader, m ObjectMapper) {
	ReadObject(r, m.ObjectMap())
}

// WriteNestedObject writes a sub-object; the caller is expected to have
// already armed the writer via Key() (or array context) before calling.
func WriteNestedObject(w *Writer, m ObjectMapper) {
	WriteObject(w, m.ObjectMap())
}
