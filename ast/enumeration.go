package ast

import (
	"fmt"
	"strings"

	"github.com/flatdata/schemac/errs"
)

// EnumerationValue is one named entry of an Enumeration, mirroring
// tree/nodes/trivial/enumeration_value.py.
type EnumerationValue struct {
	coreNode
	Doc           string
	Value         int64
	AutoGenerated bool
}

func newEnumerationValue(name, doc string, value int64, auto bool) *EnumerationValue {
	v := &EnumerationValue{Doc: doc, Value: value, AutoGenerated: auto}
	v.init(v, name)
	return v
}

// Enumeration is a named, typed, closed set of integer values
// (`enum NAME : u8 { ... }`), mirroring tree/nodes/trivial/enumeration.py.
type Enumeration struct {
	coreNode
	Doc  string
	Type *BasicType
}

// EnumerationValueSpec describes one declared enumerator before assignment:
// Value is nil when the schema left the value implicit (auto-incremented
// from the previous entry, starting at 0).
type EnumerationValueSpec struct {
	Name string
	Doc  string
	Value *int64
}

// NewEnumeration builds an Enumeration and inserts one EnumerationValue per
// spec, auto-incrementing unset values. It then fills every integer in the
// type's value range not explicitly named with a synthesized
// "UNKNOWN_VALUE_<n>" entry (sparse enums are rejected first), mirroring
// Enumeration.create's full sequence: assign → sparse check → gap-fill →
// per-value width check.
func NewEnumeration(name, doc, typeName string, specs []EnumerationValueSpec) (*Enumeration, error) {
	t, err := NewBasicType(typeName, nil)
	if err != nil {
		return nil, err
	}
	e := &Enumeration{Doc: doc, Type: t}
	e.init(e, name)

	seen := make(map[int64]bool)
	var current int64
	for _, spec := range specs {
		value := current
		if spec.Value != nil {
			value = *spec.Value
		}
		if seen[value] {
			return nil, errs.DuplicateEnumValue(name, value)
		}
		seen[value] = true
		current = value + 1

		v := newEnumerationValue(spec.Name, spec.Doc, value, false)
		if err := e.Insert(v); err != nil {
			return nil, err
		}
	}

	if t.Width >= 63 || int64(len(specs))*2+256 < int64(1)<<uint(t.Width) {
		return nil, errs.SparseEnum(name, t.Width)
	}

	lo, hi := t.ValueRange()
	for v := lo; v <= hi; v++ {
		if seen[v] {
			continue
		}
		unknownName := fmt.Sprintf("UNKNOWN_VALUE_%s", strings.ReplaceAll(fmt.Sprintf("%d", v), "-", "MINUS_"))
		uv := newEnumerationValue(unknownName, "", v, true)
		if err := e.Insert(uv); err != nil {
			return nil, err
		}
	}

	for _, child := range e.Children() {
		ev := child.(*EnumerationValue)
		required, err := t.BitsRequired(ev.Value)
		if err != nil {
			return nil, err
		}
		if required > t.Width {
			return nil, errs.InvalidEnumValue(name, ev.Value)
		}
	}

	return e, nil
}

// Values returns the enumeration's declared and synthesized values, in
// insertion order.
func (e *Enumeration) Values() []*EnumerationValue {
	return ChildrenLike[*EnumerationValue](e)
}
