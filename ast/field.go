package ast

// Field is one member of a Structure: a name, a type (either a BasicType or
// a reference to an Enumeration), a bit width, and the bit offset computed
// by the layout pass. Mirrors tree/nodes/trivial/field.py.
type Field struct {
	coreNode
	Doc string

	// Basic is non-nil when the field's type is one of the nine built-in
	// scalar types; EnumRef is non-nil when it names an Enumeration. Exactly
	// one of the two is set. EnumBasic is filled in by validate's
	// enum-reference field typing pass once EnumRef resolves: the backing
	// basic type copied from the enum declaration.
	Basic     *BasicType
	EnumRef   *EnumerationReference
	EnumBasic *BasicType

	Width  int
	Offset int // bit offset within the owning Structure; set by the layout pass

	RangeName string // non-empty if this field opens a `@range(name)` decoration
	Invalid   *int64 // non-nil if this field carries an @invalid_value(N) mark
}

// FieldSpec describes one parsed field before its type is resolved to a
// BasicType or an EnumerationReference child.
type FieldSpec struct {
	Name      string
	Doc       string
	TypeName  string
	Width     *int
	RangeName string
	Invalid   *int64
	ConstRefs []string
}

// NewField builds a Field. When TypeName names a basic type, Basic is set
// directly; otherwise an EnumerationReference child is inserted, to be
// resolved later by the resolver, mirroring Field.create's
// "basic type vs enumeration reference" branch.
func NewField(spec FieldSpec) (*Field, error) {
	f := &Field{
		Doc:       spec.Doc,
		Width:     0,
		RangeName: spec.RangeName,
		Invalid:   spec.Invalid,
	}
	f.init(f, spec.Name)

	if IsBasicType(spec.TypeName) {
		t, err := NewBasicType(spec.TypeName, spec.Width)
		if err != nil {
			return nil, err
		}
		f.Basic = t
		f.Width = t.Width
	} else {
		ref := NewEnumerationReference(spec.TypeName, spec.Width)
		if err := f.Insert(ref); err != nil {
			return nil, err
		}
		f.EnumRef = ref
		if spec.Width != nil {
			f.Width = *spec.Width
		}
	}

	for _, target := range spec.ConstRefs {
		if err := f.Insert(NewConstantReference(target)); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// TypeName returns the field's canonical type name: the basic type name, or
// the (possibly still unqualified) target of its enum reference.
func (f *Field) TypeName() string {
	if f.Basic != nil {
		return f.Basic.TypeName
	}
	return f.EnumRef.Target()
}

// ConstRefs returns the field's @const(...) constant references.
func (f *Field) ConstRefs() []*ConstantReference {
	return ChildrenLike[*ConstantReference](f)
}

// AddConstRef attaches a @const(...) reference to this field.
func (f *Field) AddConstRef(target string) error {
	return f.Insert(NewConstantReference(target))
}
