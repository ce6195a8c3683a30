// Package value implements the JSON document tree. A Value is one node:
// null, boolean, number, string, array or object, backed by a single
// storage cell. Arrays own their elements and objects own their entries;
// no node is ever shared between two parents, so mutating one tree never
// disturbs another.
package value

import (
	"math"

	"github.com/mcncl/jsondom/internal/errors"
	"github.com/mcncl/jsondom/internal/storage"
)

// Kind re-exports the storage tag for callers of this package.
type Kind = storage.Kind

const (
	KindNull   = storage.KindNull
	KindBool   = storage.KindBool
	KindNumber = storage.KindNumber
	KindString = storage.KindString
	KindArray  = storage.KindArray
	KindObject = storage.KindObject
)

type cell = storage.Cell[[]Value, map[string]*Value]

// Value is a single node of a JSON document tree. The zero Value is null.
//
// Values are not safe for concurrent mutation; callers serialize access.
type Value struct {
	cell cell
}

// Null returns a null node. Equivalent to the zero Value.
func Null() Value { return Value{} }

// Bool returns a boolean node.
func Bool(b bool) Value {
	var v Value
	v.cell.SetBool(b)
	return v
}

// Number returns a number node.
func Number(f float64) Value {
	var v Value
	v.cell.SetNumber(f)
	return v
}

// String returns a string node.
func String(s string) Value {
	var v Value
	v.cell.SetString(s)
	return v
}

// Array returns an array node holding elems. The array takes ownership of
// the given elements; a caller that needs to keep using one independently
// should pass its Clone.
func Array(elems ...Value) Value {
	var v Value
	v.cell.SetArray(elems)
	return v
}

// Object returns an empty object node.
func Object() Value {
	var v Value
	v.cell.SetObject(make(map[string]*Value))
	return v
}

// Kind returns the node's active tag.
func (v *Value) Kind() Kind { return v.cell.Kind() }

// IsNull reports whether the node is null.
func (v *Value) IsNull() bool { return v.cell.Kind() == KindNull }

// AsBool extracts the boolean payload.
func (v *Value) AsBool() (bool, error) { return v.cell.GetBool() }

// AsNumber extracts the number payload.
func (v *Value) AsNumber() (float64, error) { return v.cell.GetNumber() }

// AsString extracts the string payload.
func (v *Value) AsString() (string, error) {
	p, err := v.cell.GetString()
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Elems returns the array elements. The slice aliases the node's payload:
// writes through it are writes into the tree.
func (v *Value) Elems() ([]Value, error) {
	p, err := v.cell.GetArray()
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// Entries returns the object entries. The map aliases the node's payload.
// Iteration order is unspecified.
func (v *Value) Entries() (map[string]*Value, error) {
	p, err := v.cell.GetObject()
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// Index returns the element at i for reading or writing. Fails unless the
// node is an array, and with an index error when i is out of range.
func (v *Value) Index(i int) (*Value, error) {
	p, err := v.cell.GetArray()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(*p) {
		return nil, errors.NewIndexError(i, len(*p))
	}
	return &(*p)[i], nil
}

// Key is the read-only object lookup. Fails unless the node is an object,
// and with a key error when key is absent.
func (v *Value) Key(key string) (*Value, error) {
	p, err := v.cell.GetObject()
	if err != nil {
		return nil, err
	}
	entry, ok := (*p)[key]
	if !ok {
		return nil, errors.NewKeyError(key)
	}
	return entry, nil
}

// GetOrInsert is the mutable object lookup. When key is absent it inserts
// a null entry and returns it, so looking up a missing key through the
// mutable path creates it. This side effect is deliberate.
func (v *Value) GetOrInsert(key string) (*Value, error) {
	p, err := v.cell.GetObject()
	if err != nil {
		return nil, err
	}
	entry, ok := (*p)[key]
	if !ok {
		entry = &Value{}
		(*p)[key] = entry
	}
	return entry, nil
}

// SetKey inserts or replaces the entry for key, taking ownership of child.
func (v *Value) SetKey(key string, child Value) error {
	p, err := v.cell.GetObject()
	if err != nil {
		return err
	}
	(*p)[key] = &child
	return nil
}

// Append appends elements to an array node, taking ownership of them.
func (v *Value) Append(elems ...Value) error {
	p, err := v.cell.GetArray()
	if err != nil {
		return err
	}
	*p = append(*p, elems...)
	return nil
}

// Size returns the element count of an array or object node.
func (v *Value) Size() (int, error) {
	switch v.cell.Kind() {
	case KindArray:
		p, _ := v.cell.GetArray()
		return len(*p), nil
	case KindObject:
		p, _ := v.cell.GetObject()
		return len(*p), nil
	default:
		return 0, errors.NewTypeMismatchError(v.cell.Kind().String(), "array or object")
	}
}

// Length returns the character count of a string node.
func (v *Value) Length() (int, error) {
	p, err := v.cell.GetString()
	if err != nil {
		return 0, err
	}
	return len(*p), nil
}

// SetBool replaces the node's content with a boolean.
func (v *Value) SetBool(b bool) { v.cell.SetBool(b) }

// SetNumber replaces the node's content with a number.
func (v *Value) SetNumber(f float64) { v.cell.SetNumber(f) }

// SetString replaces the node's content with a string. A node that is
// already a string keeps its storage cell.
func (v *Value) SetString(s string) { v.cell.SetString(s) }

// SetArray replaces the node's content with an array, taking ownership of
// elems.
func (v *Value) SetArray(elems []Value) { v.cell.SetArray(elems) }

// SetObject replaces the node's content with an object, taking ownership
// of entries.
func (v *Value) SetObject(entries map[string]*Value) { v.cell.SetObject(entries) }

// Assign replaces the node's content with a deep copy of other. The two
// trees share nothing afterwards.
func (v *Value) Assign(other *Value) {
	c := other.Clone()
	v.cell.MoveFrom(&c.cell)
}

// Take moves the node's content out, leaving the node null. The returned
// value is the sole owner of the payload.
func (v *Value) Take() Value {
	var out Value
	out.cell.MoveFrom(&v.cell)
	return out
}

// Clone returns a recursive deep copy. The storage cell cannot clone its
// own payloads, so the copy dispatches on the tag here: scalars copy by
// value, arrays and objects clone every descendant.
func (v *Value) Clone() Value {
	switch v.cell.Kind() {
	case KindBool:
		b, _ := v.cell.GetBool()
		return Bool(b)
	case KindNumber:
		f, _ := v.cell.GetNumber()
		return Number(f)
	case KindString:
		p, _ := v.cell.GetString()
		return String(*p)
	case KindArray:
		p, _ := v.cell.GetArray()
		elems := make([]Value, len(*p))
		for i := range *p {
			elems[i] = (*p)[i].Clone()
		}
		return Array(elems...)
	case KindObject:
		p, _ := v.cell.GetObject()
		entries := make(map[string]*Value, len(*p))
		for k, e := range *p {
			c := e.Clone()
			entries[k] = &c
		}
		var out Value
		out.cell.SetObject(entries)
		return out
	default:
		return Value{}
	}
}

// Equal reports structural equality: same kinds, same scalar payloads,
// same elements and entries. NaN numbers compare equal to each other.
// Object entry order plays no part.
func (v *Value) Equal(other *Value) bool {
	if v.cell.Kind() != other.cell.Kind() {
		return false
	}
	switch v.cell.Kind() {
	case KindNull:
		return true
	case KindBool:
		a, _ := v.cell.GetBool()
		b, _ := other.cell.GetBool()
		return a == b
	case KindNumber:
		a, _ := v.cell.GetNumber()
		b, _ := other.cell.GetNumber()
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case KindString:
		a, _ := v.cell.GetString()
		b, _ := other.cell.GetString()
		return *a == *b
	case KindArray:
		a, _ := v.cell.GetArray()
		b, _ := other.cell.GetArray()
		if len(*a) != len(*b) {
			return false
		}
		for i := range *a {
			if !(*a)[i].Equal(&(*b)[i]) {
				return false
			}
		}
		return true
	case KindObject:
		a, _ := v.cell.GetObject()
		b, _ := other.cell.GetObject()
		if len(*a) != len(*b) {
			return false
		}
		for k, ea := range *a {
			eb, ok := (*b)[k]
			if !ok || !ea.Equal(eb) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
