// Package errs defines the flatdata schema compiler's error taxonomy.
//
// Every condition in this package is fatal: the compiler never recovers
// from one and never returns a partial tree alongside an error. Each kind
// mirrors one exception class in the original flatdata-generator's
// tree/errors.py, translated to a Go error with a stable, assertable
// message.
package errs

import "fmt"

// Kind tags a SchemaError with the taxonomy entry it belongs to.
type Kind string

// Error kinds, one per spec.md §7 entry.
const (
	KindParse                          Kind = "parse_error"
	KindSymbolRedefinition             Kind = "symbol_redefinition"
	KindMissingSymbol                  Kind = "missing_symbol"
	KindIncorrectReferenceType         Kind = "incorrect_reference_type"
	KindUnexpectedResourceType         Kind = "unexpected_resource_type"
	KindCircularReferencing            Kind = "circular_referencing"
	KindInvalidWidth                   Kind = "invalid_width"
	KindInvalidSign                    Kind = "invalid_sign"
	KindDuplicateEnumValue              Kind = "duplicate_enum_value"
	KindInvalidEnumValue                Kind = "invalid_enum_value"
	KindInvalidEnumWidth                Kind = "invalid_enum_width"
	KindInvalidConstantValue             Kind = "invalid_constant_value"
	KindInvalidConstReference            Kind = "invalid_const_reference"
	KindInvalidConstValueReference        Kind = "invalid_const_value_reference"
	KindDuplicateInvalidValueReference     Kind = "duplicate_invalid_value_reference"
	KindInvalidRangeName                Kind = "invalid_range_name"
	KindInvalidRangeReference            Kind = "invalid_range_reference"
	KindOptionalRange                   Kind = "optional_range"
	KindInvalidStructInExplicitReference  Kind = "invalid_struct_in_explicit_reference"
	KindSparseEnum                     Kind = "sparse_enum"
)

// SchemaError is implemented by every error this package raises.
type SchemaError interface {
	error
	Kind() Kind
}

type schemaError struct {
	kind Kind
	msg  string
}

func (e *schemaError) Error() string { return e.msg }
func (e *schemaError) Kind() Kind    { return e.kind }

func newf(kind Kind, format string, args ...any) *schemaError {
	return &schemaError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// SymbolRedefinition reports that a sibling with the given name already exists.
func SymbolRedefinition(duplicatePath, existingPath string) SchemaError {
	return newf(KindSymbolRedefinition,
		"Symbol redefined: %s already exists at %s", duplicatePath, existingPath)
}

// CircularReferencing reports a dependency cycle discovered during DFS.
func CircularReferencing(from, to string) SchemaError {
	return newf(KindCircularReferencing,
		"Circular reference in schema: %s -> %s", from, to)
}

// MissingSymbol reports that the resolver could not find target relative to path.
// suggestion is the empty string when no close match was found.
func MissingSymbol(target, path, suggestion string) SchemaError {
	msg := fmt.Sprintf("Missing symbol %q in %s.", target, path)
	if suggestion != "" {
		msg += fmt.Sprintf(" Did you mean %q?", suggestion)
	}
	return newf(KindMissingSymbol, "%s", msg)
}

// IncorrectReferenceType reports that a resolved reference points at a node
// of the wrong kind.
func IncorrectReferenceType(name, actual, expected string) SchemaError {
	return newf(KindIncorrectReferenceType,
		"%s referring to incorrect type. Expected %s, actual %s", name, expected, actual)
}

// UnexpectedResourceType reports a resource type the builder does not recognize.
func UnexpectedResourceType(name string) SchemaError {
	return newf(KindUnexpectedResourceType, "Unexpected resource type: %s", name)
}

// InvalidWidth reports a bit-field width that exceeds its basic type's capacity.
func InvalidWidth(width int, typeName string) SchemaError {
	return newf(KindInvalidWidth,
		"Bit field of %dbit width cannot fit in %s", width, typeName)
}

// InvalidSign reports a negative literal assigned to an unsigned type.
func InvalidSign(value int64) SchemaError {
	return newf(KindInvalidSign, "Value has wrong sign: %d", value)
}

// DuplicateEnumValue reports two enumerators resolving to the same integer.
func DuplicateEnumValue(enumName string, value int64) SchemaError {
	return newf(KindDuplicateEnumValue,
		"Enumeration %s has duplicate entries for value %d", enumName, value)
}

// InvalidEnumValue reports a value that does not fit the enum's declared width.
func InvalidEnumValue(enumName string, value int64) SchemaError {
	return newf(KindInvalidEnumValue,
		"Enumeration %s has not enough bits for value %d", enumName, value)
}

// InvalidEnumWidth reports a declared width that cannot hold the enum's values,
// or a field width annotation disagreeing with the enum's declaration.
func InvalidEnumWidth(enumName string, width, providedWidth int) SchemaError {
	return newf(KindInvalidEnumWidth,
		"Enumeration %s needs at least %d bits, but only has %d", enumName, width, providedWidth)
}

// InvalidConstantValue reports a constant whose value does not fit its type.
func InvalidConstantValue(name string, value int64) SchemaError {
	return newf(KindInvalidConstantValue,
		"Constant %s has not enough bits for value %d", name, value)
}

// InvalidConstReference reports a const-value reference whose basic type
// differs from the field's basic type.
func InvalidConstReference(fieldPath, constPath string) SchemaError {
	return newf(KindInvalidConstReference,
		"Field %s has const reference to %s of incompatible type", fieldPath, constPath)
}

// InvalidConstValueReference reports a const-value reference whose value does
// not fit the field's width.
func InvalidConstValueReference(fieldPath, constPath string, value int64) SchemaError {
	return newf(KindInvalidConstValueReference,
		"Field %s const reference to %s: value %d does not fit field width", fieldPath, constPath, value)
}

// DuplicateInvalidValueReference reports a field with more than one
// invalid-value mark.
func DuplicateInvalidValueReference(fieldPath string) SchemaError {
	return newf(KindDuplicateInvalidValueReference,
		"Field %s has more than one invalid-value reference", fieldPath)
}

// InvalidRangeName reports a range name colliding with a sibling field name.
func InvalidRangeName(structPath, rangeName string) SchemaError {
	return newf(KindInvalidRangeName,
		"Range name %s in %s collides with a sibling field", rangeName, structPath)
}

// InvalidRangeReference reports a range-bearing struct used outside a Vector resource.
func InvalidRangeReference(structPath, resourcePath string) SchemaError {
	return newf(KindInvalidRangeReference,
		"Structure %s has a range field but is referenced from non-vector resource %s", structPath, resourcePath)
}

// OptionalRange reports a range field also marked with an invalid-value decoration.
func OptionalRange(fieldPath string) SchemaError {
	return newf(KindOptionalRange,
		"Field %s combines @range with an invalid-value reference, which is disallowed", fieldPath)
}

// InvalidStructInExplicitReference reports an explicit reference whose
// source struct is not actually used by the declaring resource.
func InvalidStructInExplicitReference(resourcePath, structPath string) SchemaError {
	return newf(KindInvalidStructInExplicitReference,
		"Resource %s has an explicit reference naming structure %s which it does not use", resourcePath, structPath)
}

// SparseEnum reports an enumeration whose declared width is exponentially
// wider than its declared population.
func SparseEnum(enumName string, width int) SchemaError {
	return newf(KindSparseEnum,
		"Enumeration %s declared with width %d is too sparse relative to its population", enumName, width)
}

// ParseError reports a grammar violation, with enough context to render a
// caret-pointer diagnostic.
type ParseError struct {
	Line    int
	Column  int
	Source  string // the offending source line, for caret rendering
	Message string
}

// Kind implements SchemaError.
func (e *ParseError) Kind() Kind { return KindParse }

// Error implements error, matching the original generator's
// "Failed to parse the schema. Details below: <line>\n<caret>\n<message>" shape.
func (e *ParseError) Error() string {
	caret := ""
	if e.Column > 0 {
		pad := e.Column - 1
		if pad < 0 {
			pad = 0
		}
		for i := 0; i < pad; i++ {
			caret += " "
		}
		caret += "^"
	}
	return fmt.Sprintf("Failed to parse the schema. Details below:\n  %s\n  %s\n  %s",
		e.Source, caret, e.Message)
}
