// Package storage provides the discriminated storage cell backing every
// JSON value. A cell holds exactly one payload at a time, identified by a
// kind tag: word-sized payloads (booleans, numbers) are packed into an
// inline 64-bit word, wider payloads (strings, arrays, objects) live in a
// separately allocated cell addressed through the reference slot.
//
// The cell only knows bit patterns and pointers. It has no notion of deep
// copy; cloning container payloads is the job of the owning value layer.
package storage

import (
	"math"

	"github.com/mcncl/jsondom/internal/errors"
)

// Kind identifies which payload a cell currently holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the name of the kind as it appears in error messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// heapStored reports, per kind, whether the payload lives in its own
// allocated cell. The rule is decided once, statically: a payload wider
// than one machine word is heap-backed. Booleans fit trivially; a float64
// is exactly one word wide, which still counts as inline (the boundary is
// strictly greater-than). String, array and object payloads are wider.
var heapStored = [...]bool{
	KindNull:   false,
	KindBool:   false,
	KindNumber: false,
	KindString: true,
	KindArray:  true,
	KindObject: true,
}

// HeapBacked reports whether payloads of kind k occupy their own
// allocated cell rather than the inline word.
func (k Kind) HeapBacked() bool {
	return int(k) < len(heapStored) && heapStored[k]
}

// Cell is a discriminated union over the closed payload set
// {bool, float64, string, A, O} plus an empty (null) tag. A and O are the
// array and object payload types; the owning layer instantiates them with
// types that refer back to itself, closing the recursion.
//
// The zero Cell holds null. Payloads are released by the garbage
// collector once the cell stops referencing them; a heap payload is
// referenced by at most one live cell, which MoveFrom preserves by
// emptying its source.
type Cell[A, O any] struct {
	kind Kind
	word uint64
	ref  any
}

// Kind returns the active tag.
func (c *Cell[A, O]) Kind() Kind { return c.kind }

// SetBool stores a boolean payload, dropping whatever the cell held.
func (c *Cell[A, O]) SetBool(b bool) {
	c.kind = KindBool
	c.word = 0
	if b {
		c.word = 1
	}
	c.ref = nil
}

// SetNumber stores a number payload inline as its IEEE-754 bit pattern.
func (c *Cell[A, O]) SetNumber(f float64) {
	c.kind = KindNumber
	c.word = math.Float64bits(f)
	c.ref = nil
}

// SetString stores a string payload. When the cell already holds a string
// the existing heap cell is written through rather than reallocated.
func (c *Cell[A, O]) SetString(s string) {
	if c.kind == KindString {
		*(c.ref.(*string)) = s
		return
	}
	c.kind = KindString
	c.word = 0
	c.ref = &s
}

// SetArray stores an array payload, reusing the existing heap cell when
// the cell already holds an array.
func (c *Cell[A, O]) SetArray(a A) {
	if c.kind == KindArray {
		*(c.ref.(*A)) = a
		return
	}
	c.kind = KindArray
	c.word = 0
	c.ref = &a
}

// SetObject stores an object payload, reusing the existing heap cell when
// the cell already holds an object.
func (c *Cell[A, O]) SetObject(m O) {
	if c.kind == KindObject {
		*(c.ref.(*O)) = m
		return
	}
	c.kind = KindObject
	c.word = 0
	c.ref = &m
}

// GetBool returns the boolean payload.
func (c *Cell[A, O]) GetBool() (bool, error) {
	if c.kind != KindBool {
		return false, errors.NewTypeMismatchError(c.kind.String(), KindBool.String())
	}
	return c.word != 0, nil
}

// GetNumber returns the number payload.
func (c *Cell[A, O]) GetNumber() (float64, error) {
	if c.kind != KindNumber {
		return 0, errors.NewTypeMismatchError(c.kind.String(), KindNumber.String())
	}
	return math.Float64frombits(c.word), nil
}

// GetString returns a pointer to the string payload's heap cell, so the
// owning layer can read or write it in place.
func (c *Cell[A, O]) GetString() (*string, error) {
	if c.kind != KindString {
		return nil, errors.NewTypeMismatchError(c.kind.String(), KindString.String())
	}
	return c.ref.(*string), nil
}

// GetArray returns a pointer to the array payload's heap cell.
func (c *Cell[A, O]) GetArray() (*A, error) {
	if c.kind != KindArray {
		return nil, errors.NewTypeMismatchError(c.kind.String(), KindArray.String())
	}
	return c.ref.(*A), nil
}

// GetObject returns a pointer to the object payload's heap cell.
func (c *Cell[A, O]) GetObject() (*O, error) {
	if c.kind != KindObject {
		return nil, errors.NewTypeMismatchError(c.kind.String(), KindObject.String())
	}
	return c.ref.(*O), nil
}

// MoveFrom transfers other's tag and payload into c and resets other to
// null, so no payload is ever referenced by two live cells.
func (c *Cell[A, O]) MoveFrom(other *Cell[A, O]) {
	c.kind, c.word, c.ref = other.kind, other.word, other.ref
	other.kind, other.word, other.ref = KindNull, 0, nil
}

// Reset empties the cell back to null. Any heap payload is left for the
// garbage collector.
func (c *Cell[A, O]) Reset() {
	c.kind, c.word, c.ref = KindNull, 0, nil
}
