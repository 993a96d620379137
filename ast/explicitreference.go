package ast

import "strings"

// ExplicitReference declares that one structure's field indexes into
// another resource (`@explicit_reference(Source.field, Destination)`),
// mirroring tree/nodes/explicit_reference.py. Its synthesized name is
// `er_<Source>_<field>_<Destination>` with dots replaced by underscores, so
// it never collides with a sibling decoration on the same resource.
type ExplicitReference struct {
	coreNode
	StructureRef *StructureReference
	FieldRef     *FieldReference
	ResourceRef  *ResourceReference
}

// NewExplicitReference builds an ExplicitReference. sourceType is the
// unqualified structure name preceding the dot (e.g. "Source" in
// "Source.field"); sourceField is the full "Source.field" qualified path;
// destination is the resource name being pointed at.
func NewExplicitReference(sourceType, sourceField, destination string) (*ExplicitReference, error) {
	name := "er_" + strings.ReplaceAll(sourceField, ".", "_") + "_" + strings.ReplaceAll(destination, ".", "_")
	e := &ExplicitReference{}
	e.init(e, name)

	structRef := NewStructureReference(sourceType)
	fieldRef := NewFieldReference(sourceField)
	resourceRef := NewResourceReference(destination)
	if err := e.Insert(structRef, fieldRef, resourceRef); err != nil {
		return nil, err
	}
	e.StructureRef = structRef
	e.FieldRef = fieldRef
	e.ResourceRef = resourceRef
	return e, nil
}

// Destination returns the unresolved or resolved target path of the
// referenced resource.
func (e *ExplicitReference) Destination() string { return e.ResourceRef.Target() }

// Field returns the unresolved or resolved "Source.field" path.
func (e *ExplicitReference) Field() string { return e.FieldRef.Target() }

// Structure returns the unresolved or resolved source structure path.
func (e *ExplicitReference) Structure() string { return e.StructureRef.Target() }
