package ast

// ResourceBase is implemented by every kind of archive member: Instance,
// Vector, Multivector, RawData and SubArchive, mirroring
// tree/nodes/resources/base.py's ResourceBase ABC.
type ResourceBase interface {
	Node
	IsOptional() bool
	ExplicitReferences() []*ExplicitReference
	ReferencedStructures() []TypeReference
	SetMaxElements(n uint64)
	MaxElements() (uint64, bool)
}

// resourceCore is embedded by every resource kind; it supplies the Optional
// decoration and the shared ExplicitReferences/ReferencedStructures queries.
type resourceCore struct {
	coreNode
	Doc         string
	Optional    bool
	maxElements uint64
	hasMax      bool
}

func (r *resourceCore) IsOptional() bool { return r.Optional }

// SetMaxElements records the resource's derived element-count upper bound,
// computed by validate's resource-size-bounds pass from the widths of the
// ExplicitReferences that index into it.
func (r *resourceCore) SetMaxElements(n uint64) {
	if !r.hasMax || n < r.maxElements {
		r.maxElements = n
		r.hasMax = true
	}
}

// MaxElements returns the resource's derived element-count upper bound, if
// any ExplicitReference constrains it.
func (r *resourceCore) MaxElements() (uint64, bool) { return r.maxElements, r.hasMax }

func (r *resourceCore) ExplicitReferences() []*ExplicitReference {
	return ChildrenLike[*ExplicitReference](r.self)
}

// referencedStructuresOf collects a resource's own BuiltinStructureReference
// and StructureReference children, mirroring ResourceBase.referenced_structures.
func referencedStructuresOf(n Node) []TypeReference {
	var out []TypeReference
	for _, c := range n.Children() {
		switch c.(type) {
		case *BuiltinStructureReference, *StructureReference:
			out = append(out, c.(TypeReference))
		}
	}
	return out
}

func (r *resourceCore) ReferencedStructures() []TypeReference {
	return referencedStructuresOf(r.self)
}

// Instance is a `Type` (single-object) resource: one fixed-size record, no index.
type Instance struct {
	resourceCore
	TypeRef *StructureReference
}

// NewInstance builds an Instance resource naming structType.
func NewInstance(name, doc string, optional bool, structType string) (*Instance, error) {
	i := &Instance{resourceCore: resourceCore{Doc: doc, Optional: optional}}
	i.init(i, name)
	ref := NewStructureReference(structType)
	if err := i.Insert(ref); err != nil {
		return nil, err
	}
	i.TypeRef = ref
	return i, nil
}

// Vector is a `vector<Type>` resource: a contiguous run of fixed-size records.
type Vector struct {
	resourceCore
	TypeRef *StructureReference
}

// NewVector builds a Vector resource naming structType.
func NewVector(name, doc string, optional bool, structType string) (*Vector, error) {
	v := &Vector{resourceCore: resourceCore{Doc: doc, Optional: optional}}
	v.init(v, name)
	ref := NewStructureReference(structType)
	if err := v.Insert(ref); err != nil {
		return nil, err
	}
	v.TypeRef = ref
	return v, nil
}

// Multivector is a `multivector<Width, Type...>` resource: a variable number
// of heterogeneous records per logical index slot, addressed through a
// compiler-synthesized index structure of width Width bits.
type Multivector struct {
	resourceCore
	Width     int
	TypeRefs  []*StructureReference
	IndexRef  *BuiltinStructureReference // attached by the builder once the index structure exists
}

// NewMultivector builds a Multivector naming its variant structure types;
// the builder attaches IndexRef once the shared index structure is created.
func NewMultivector(name, doc string, optional bool, width int, structTypes []string) (*Multivector, error) {
	m := &Multivector{resourceCore: resourceCore{Doc: doc, Optional: optional}, Width: width}
	m.init(m, name)
	for _, t := range structTypes {
		ref := NewStructureReference(t)
		if err := m.Insert(ref); err != nil {
			return nil, err
		}
		m.TypeRefs = append(m.TypeRefs, ref)
	}
	return m, nil
}

// AttachIndex attaches the (deduplicated) builtin index structure reference,
// mirroring builder.py's _append_builtin_structures.
func (m *Multivector) AttachIndex(ref *BuiltinStructureReference) error {
	if err := m.Insert(ref); err != nil {
		return err
	}
	m.IndexRef = ref
	return nil
}

// IndexStructureName is the canonical name of the per-width shared index
// structure this multivector uses, e.g. "IndexType33".
func IndexStructureName(width int) string {
	return "IndexType" + itoa(width)
}

// BuiltinNamespacePath is the fixed namespace that hosts every synthesized
// multivector index structure, mirroring builder.py's "._builtin.multivector".
const BuiltinNamespacePath = "_builtin.multivector"

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// RawData is an untyped byte-blob resource.
type RawData struct {
	resourceCore
}

// NewRawData builds a RawData resource.
func NewRawData(name, doc string, optional bool) *RawData {
	r := &RawData{resourceCore: resourceCore{Doc: doc, Optional: optional}}
	r.init(r, name)
	return r
}

// SubArchive is an `archive Name` resource nesting another Archive.
type SubArchive struct {
	resourceCore
	TargetRef *ArchiveReference
}

// NewSubArchive builds a SubArchive resource naming archiveType.
func NewSubArchive(name, doc string, optional bool, archiveType string) (*SubArchive, error) {
	a := &SubArchive{resourceCore: resourceCore{Doc: doc, Optional: optional}}
	a.init(a, name)
	ref := NewArchiveReference(archiveType)
	if err := a.Insert(ref); err != nil {
		return nil, err
	}
	a.TargetRef = ref
	return a, nil
}

// BoundResource groups a set of resources that are always present or absent
// together (`@bound_implicitly(Name: r1, r2, ...)`), mirroring
// tree/nodes/bound_resource.py.
type BoundResource struct {
	coreNode
	ResourceRefs []*ResourceReference
}

// NewBoundResource builds a BoundResource naming the grouped resources.
func NewBoundResource(name string, resourceNames []string) (*BoundResource, error) {
	b := &BoundResource{}
	b.init(b, name)
	for _, rn := range resourceNames {
		ref := NewResourceReference(rn)
		if err := b.Insert(ref); err != nil {
			return nil, err
		}
		b.ResourceRefs = append(b.ResourceRefs, ref)
	}
	return b, nil
}

// ReferencedStructures returns the union of the referenced structures of
// every resource this group binds, mirroring BoundResource.referenced_structures.
func (b *BoundResource) ReferencedStructures(resolve func(*ResourceReference) (ResourceBase, bool)) []TypeReference {
	var out []TypeReference
	for _, ref := range b.ResourceRefs {
		if res, ok := resolve(ref); ok {
			out = append(out, res.ReferencedStructures()...)
		}
	}
	return out
}

var (
	_ ResourceBase = (*Instance)(nil)
	_ ResourceBase = (*Vector)(nil)
	_ ResourceBase = (*Multivector)(nil)
	_ ResourceBase = (*RawData)(nil)
	_ ResourceBase = (*SubArchive)(nil)
)
