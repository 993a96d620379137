package ast

import "github.com/flatdata/schemac/errs"

// Constant is a named, typed scalar value declared at namespace scope
// (`const u32 NAME = value;`), mirroring tree/nodes/trivial/constant.py.
type Constant struct {
	coreNode
	Doc   string
	Type  *BasicType
	Value int64
}

// NewConstant builds a Constant, returning errs.InvalidConstantValue if
// value does not fit typeName's natural width.
func NewConstant(name, doc, typeName string, value int64) (*Constant, error) {
	t, err := NewBasicType(typeName, nil)
	if err != nil {
		return nil, err
	}
	required, err := t.BitsRequired(value)
	if err != nil {
		return nil, err
	}
	if required > t.Width {
		return nil, errs.InvalidConstantValue(name, value)
	}
	c := &Constant{Doc: doc, Type: t, Value: value}
	c.init(c, name)
	return c, nil
}
