package ast

import (
	"fmt"
	"strings"
)

// Reference names are encoded with a reserved '@' sigil so they can live in
// the same child-name index as ordinary identifiers without ever colliding
// with one, mirroring references.py's Reference._referencify /
// _dereferencify. A reference whose target is already fully qualified
// (begins with PathSeparator) encodes to a name starting with "@@", which
// IsQualified checks for directly, exactly as the original's is_qualified.
func referencify(target string) string {
	return "@" + strings.ReplaceAll(target, PathSeparator, "@")
}

func dereferencify(name string) string {
	return strings.ReplaceAll(name[1:], "@", PathSeparator)
}

// Reference is implemented by every reference node: a leaf child that
// stands in for another node until the resolver rewrites it in place.
type Reference interface {
	Node
	// Target returns the (possibly unqualified) path this reference names.
	Target() string
	// IsQualified reports whether Target is already an absolute path.
	IsQualified() bool
	// Resolve looks up Target starting from root and returns the resolved node.
	Resolve(root Node) (Node, error)
	// UpdateReference rewrites the reference to point at newTarget, which
	// must end with the current Target (the resolver only ever qualifies a
	// reference, never renames it to something unrelated).
	UpdateReference(newTarget string) error
}

// TypeReference is implemented by references that traversal treats as real
// graph edges for dependency ordering and cycle detection (struct/archive/
// constant/enum references): mirroring the TypeReference/RuntimeReference
// split in references.py, where only TypeReference-derived kinds
// participate in _Traversal.children.
type TypeReference interface {
	Reference
	isTypeReference()
}

// RuntimeReference is implemented by references that traversal ignores when
// computing dependency order (resource/vector/field references): these can
// legally form cycles (e.g. an ExplicitReference naming a resource that in
// turn contains the referencing structure).
type RuntimeReference interface {
	Reference
	isRuntimeReference()
}

type refCore struct {
	coreNode
}

func (r *refCore) initRef(self Node, target string) {
	r.init(self, referencify(target))
}

func (r *refCore) Target() string { return dereferencify(r.name) }

func (r *refCore) IsQualified() bool { return strings.HasPrefix(r.name, "@@") }

func (r *refCore) Resolve(root Node) (Node, error) { return root.Find(r.Target()) }

func (r *refCore) UpdateReference(newTarget string) error {
	if !strings.HasSuffix(newTarget, r.Target()) {
		return fmt.Errorf("cannot update reference %s to unrelated target %s", r.Target(), newTarget)
	}
	return r.SetName(referencify(newTarget))
}

// --- TypeReference kinds ---

// StructureReference names a Structure.
type StructureReference struct{ refCore }

func NewStructureReference(target string) *StructureReference {
	r := &StructureReference{}
	r.initRef(r, target)
	return r
}
func (*StructureReference) isTypeReference() {}

// BuiltinStructureReference names a compiler-synthesized Structure (a
// multivector index type).
type BuiltinStructureReference struct{ refCore }

func NewBuiltinStructureReference(target string) *BuiltinStructureReference {
	r := &BuiltinStructureReference{}
	r.initRef(r, target)
	return r
}
func (*BuiltinStructureReference) isTypeReference() {}

// ArchiveReference names an Archive.
type ArchiveReference struct{ refCore }

func NewArchiveReference(target string) *ArchiveReference {
	r := &ArchiveReference{}
	r.initRef(r, target)
	return r
}
func (*ArchiveReference) isTypeReference() {}

// ConstantReference names a Constant.
type ConstantReference struct{ refCore }

func NewConstantReference(target string) *ConstantReference {
	r := &ConstantReference{}
	r.initRef(r, target)
	return r
}
func (*ConstantReference) isTypeReference() {}

// EnumerationReference names an Enumeration, optionally pinning the field
// width the enum's values must fit within (set when a field declares an
// explicit ": N" bit width alongside an enum type).
type EnumerationReference struct {
	refCore
	Width *int
}

func NewEnumerationReference(target string, width *int) *EnumerationReference {
	r := &EnumerationReference{Width: width}
	r.initRef(r, target)
	return r
}
func (*EnumerationReference) isTypeReference() {}

// --- RuntimeReference kinds ---

// ResourceReference names a resource (by its archive-relative or fully
// qualified path) from an ExplicitReference or a BoundResource decoration.
type ResourceReference struct{ refCore }

func NewResourceReference(target string) *ResourceReference {
	r := &ResourceReference{}
	r.initRef(r, target)
	return r
}
func (*ResourceReference) isRuntimeReference() {}

// VectorReference names a resource from a SubArchive's nested index, or a
// multivector's indexed vector.
type VectorReference struct{ refCore }

func NewVectorReference(target string) *VectorReference {
	r := &VectorReference{}
	r.initRef(r, target)
	return r
}
func (*VectorReference) isRuntimeReference() {}

// FieldReference names a Field from an ExplicitReference's source clause.
type FieldReference struct{ refCore }

func NewFieldReference(target string) *FieldReference {
	r := &FieldReference{}
	r.initRef(r, target)
	return r
}
func (*FieldReference) isRuntimeReference() {}

var (
	_ Node = (*StructureReference)(nil)
	_ Node = (*Field)(nil)
)
