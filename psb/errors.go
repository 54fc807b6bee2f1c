package psb

import "fmt"

// Sentinel errors for the format-level faults named in the wire spec:
// anything that means "these bytes are not a valid PSB stream" regardless
// of the schema being applied to them.
var (
	ErrBadSignature      = fmt.Errorf("psb: bad magic signature")
	ErrBadVersion        = fmt.Errorf("psb: unsupported format version")
	ErrVarintSize        = fmt.Errorf("psb: varint exceeds platform width")
	ErrInvalidTag        = fmt.Errorf("psb: invalid tag byte")
	ErrInvalidVarintType = fmt.Errorf("psb: invalid varint width selector")
	ErrKeySize           = fmt.Errorf("psb: field name exceeds 255 bytes")
	ErrNotEnoughBytes    = fmt.Errorf("psb: not enough bytes remaining in input")
)

// Sentinel errors for the schema-level faults: the bytes are well-formed
// PSB, but they don't satisfy the object map applied to them.
var (
	ErrSchemaBoolean       = fmt.Errorf("psb: expected boolean")
	ErrSchemaInteger       = fmt.Errorf("psb: expected integer")
	ErrSchemaNumber        = fmt.Errorf("psb: expected real number")
	ErrSchemaString        = fmt.Errorf("psb: expected string")
	ErrSchemaBinary        = fmt.Errorf("psb: expected binary")
	ErrSchemaFixedBinary   = fmt.Errorf("psb: fixed binary length mismatch")
	ErrSchemaArray         = fmt.Errorf("psb: array constraint violated")
	ErrSchemaObject        = fmt.Errorf("psb: expected object")
	ErrSchemaMissingKey    = fmt.Errorf("psb: required field missing")
	ErrSchemaInvalidKey    = fmt.Errorf("psb: invalid or duplicate field")
	ErrIntegerOutOfRange   = fmt.Errorf("psb: integer narrows out of range")
	ErrMaxDepth            = fmt.Errorf("psb: maximum nesting depth exceeded")
	ErrIncompleteTraversal = fmt.Errorf("psb: reader did not finish at a closed top-level object")
)

// Error attaches the field-name path active when a fault was raised. The
// engines themselves panic with a bare sentinel; FromBytes/ToBytes recover
// and wrap it here before returning to the caller.
type Error struct {
	Path []string
	Err  error
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	path := e.Path[0]
	for _, p := range e.Path[1:] {
		path = path + "." + p
	}
	return fmt.Sprintf("%s: %s", path, e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

func wrapPath(path []string, err error) error {
	if err == nil {
		return nil
	}
	if len(path) == 0 {
		return err
	}
	cp := make([]string, len(path))
	copy(cp, path)
	return &Error{Path: cp, Err: err}
}
