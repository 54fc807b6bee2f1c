package psb

import "fmt"

// FromBytes and ToBytes are the public boundary the rest of the process
// talks to the core through, grounded in
// utils/cser/binary.go's MarshalBinaryAdapter/UnmarshalBinaryAdapter: set
// up the engine, run the schema traversal, convert any panic raised deep
// in the engine into a returned error carrying the active field path.

// FromBytes decodes input into dst according to dst's object map.
func FromBytes(dst ObjectMapper, input []byte) (err error) {
	r := NewReader(input)
	defer func() {
		if rec := recover(); rec != nil {
			err = wrapPath(r.path, toError(rec))
		}
	}()
	ReadObject(r, dst.ObjectMap())
	r.CheckComplete()
	return nil
}

// ToBytes encodes src according to its object map and returns the
// resulting bytes. On failure the caller must discard any partial buffer
// state -- ToBytes itself never returns one.
func ToBytes(src ObjectMapper) (out []byte, err error) {
	w := NewWriter()
	defer func() {
		if rec := recover(); rec != nil {
			err = wrapPath(w.path, toError(rec))
			out = nil
		}
	}()
	WriteObject(w, src.ObjectMap())
	return w.Take(), nil
}

func toError(rec interface{}) error {
	if e, ok := rec.(error); ok {
		return e
	}
	return fmt.Errorf("psb: %v", rec)
}
