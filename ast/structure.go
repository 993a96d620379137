package ast

import "math"

// Structure is a fixed-size, bit-packed record type (`struct NAME { ... }`),
// mirroring tree/nodes/trivial/structure.py. SizeInBits is computed by the
// layout pass (validate's computeLayout), in dependency order, after
// resolution.
type Structure struct {
	coreNode
	Doc        string
	SizeInBits int
}

// NewStructure builds a Structure and inserts one Field per spec, in
// declaration order, mirroring Structure.create.
func NewStructure(name, doc string, fields []FieldSpec) (*Structure, error) {
	s := &Structure{Doc: doc}
	s.init(s, name)
	for _, spec := range fields {
		f, err := NewField(spec)
		if err != nil {
			return nil, err
		}
		if err := s.Insert(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Fields returns the structure's fields in declaration order.
func (s *Structure) Fields() []*Field {
	return ChildrenLike[*Field](s)
}

// SizeInBytes returns the byte-rounded-up size, mirroring
// Structure.size_in_bytes.
func (s *Structure) SizeInBytes() int {
	return int(math.Ceil(float64(s.SizeInBits) / 8))
}

// HasRange reports whether any field of s opens a @range decoration; used by
// the validator to restrict range-bearing structures to Vector resources.
func (s *Structure) HasRange() bool {
	for _, f := range s.Fields() {
		if f.RangeName != "" {
			return true
		}
	}
	return false
}
