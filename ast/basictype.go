package ast

import (
	"fmt"

	"github.com/flatdata/schemac/errs"
)

// basicTypeWidths mirrors flatdata-generator's BasicType._WIDTH table: the
// natural bit width of each of the nine built-in scalar types.
var basicTypeWidths = map[string]int{
	"bool": 1,
	"i8":   8,
	"u8":   8,
	"i16":  16,
	"u16":  16,
	"i32":  32,
	"u32":  32,
	"i64":  64,
	"u64":  64,
}

// IsBasicType reports whether name names one of the nine built-in scalar types.
func IsBasicType(name string) bool {
	_, ok := basicTypeWidths[name]
	return ok
}

// BasicType is a resolved scalar field type: one of the built-in names,
// together with the bit width actually occupied by the field (which may be
// narrower than the type's natural width).
type BasicType struct {
	TypeName string
	Width    int
}

// NewBasicType builds a BasicType, defaulting width to the type's natural
// width when width is nil. It returns errs.InvalidWidth if an explicit width
// exceeds the type's natural capacity.
func NewBasicType(name string, width *int) (*BasicType, error) {
	natural, ok := basicTypeWidths[name]
	if !ok {
		return nil, fmt.Errorf("not a basic type: %s", name)
	}
	w := natural
	if width != nil {
		w = *width
		if w > natural {
			return nil, errs.InvalidWidth(w, name)
		}
	}
	return &BasicType{TypeName: name, Width: w}, nil
}

// IsSigned reports whether the type is one of the signed integer types.
func (t *BasicType) IsSigned() bool {
	return len(t.TypeName) > 0 && t.TypeName[0] == 'i'
}

// BitsRequired returns the minimum number of bits needed to represent value
// in this type, mirroring BasicType.bits_required. It returns errs.InvalidSign
// if value is negative and the type is unsigned.
func (t *BasicType) BitsRequired(value int64) (int, error) {
	if t.IsSigned() {
		if value >= 0 {
			return bitLength(value) + 1, nil
		}
		return bitLength(-value-1) + 1, nil
	}
	if value < 0 {
		return 0, errs.InvalidSign(value)
	}
	return bitLength(value), nil
}

func bitLength(v int64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// ValueRange returns the inclusive [min, max] range representable by the
// type's declared Width, mirroring BasicType.value_range used by sparse-enum
// gap filling.
func (t *BasicType) ValueRange() (min, max int64) {
	if t.IsSigned() {
		max = (int64(1) << (t.Width - 1)) - 1
		min = -(int64(1) << (t.Width - 1))
		return min, max
	}
	return 0, (int64(1) << t.Width) - 1
}
