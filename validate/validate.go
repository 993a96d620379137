// Package validate runs the semantic validation and layout passes that,
// per spec, execute in a fixed order after resolution: enum-reference field
// typing, structure layout, resource size bounds, range name uniqueness,
// range usage restriction, constant-reference fit checks, and cycle
// detection (the last of which the dependency-order walk that layout
// itself requires already performs, over the whole graph, not just
// structures).
package validate

import (
	"fmt"

	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/errs"
	"github.com/flatdata/schemac/traversal"
)

// Validate runs every semantic pass, in spec order, over a resolved tree.
func Validate(root ast.Node) error {
	if err := fixEnumFieldTypes(root); err != nil {
		return err
	}

	// Dependency order both drives structure layout (pass 2) and, by
	// construction, performs the cycle check (pass 7): a cycle anywhere in
	// the graph surfaces here as errs.CircularReferencing before layout
	// ever runs.
	order, err := traversal.DependencyOrder(root)
	if err != nil {
		return err
	}
	computeLayout(order)

	computeResourceSizeBounds(root)

	if err := checkRangeNameUniqueness(root); err != nil {
		return err
	}
	if err := checkRangeUsage(root); err != nil {
		return err
	}
	if err := checkConstantReferenceFits(root); err != nil {
		return err
	}
	// Open Question (c) (spec.md §9) is resolved in favor of enforcing
	// this: an ExplicitReference's source struct must be structurally used
	// by the resource that declares it.
	if err := checkExplicitReferenceStructUsage(root); err != nil {
		return err
	}
	return nil
}

// fixEnumFieldTypes is pass 1: for every Field whose type is an
// EnumerationReference, copy the enum's backing basic type onto the field
// and validate the field's declared width (if any) against the enum's.
func fixEnumFieldTypes(root ast.Node) error {
	for _, f := range ast.IterateLike[*ast.Field](root) {
		if f.EnumRef == nil {
			continue
		}
		target, err := root.Find(f.EnumRef.Target())
		if err != nil {
			return fmt.Errorf("unresolved enum reference on field %s: %w", f.Path(), err)
		}
		enum, ok := target.(*ast.Enumeration)
		if !ok {
			return errs.IncorrectReferenceType(f.EnumRef.Target(), "Node", "Enumeration")
		}
		f.EnumBasic = enum.Type
		if f.Width == 0 {
			f.Width = enum.Type.Width
		} else if f.Width != enum.Type.Width {
			return errs.InvalidEnumWidth(enum.Name(), enum.Type.Width, f.Width)
		}
	}
	return nil
}

// computeLayout is pass 2: in dependency order, assign each Structure's
// fields sequential, contiguous bit offsets and set the structure's total
// size_in_bits.
func computeLayout(order []ast.Node) {
	for _, n := range order {
		s, ok := n.(*ast.Structure)
		if !ok {
			continue
		}
		offset := 0
		for _, f := range s.Fields() {
			f.Offset = offset
			offset += f.Width
		}
		s.SizeInBits = offset
	}
}

// computeResourceSizeBounds is pass 3: for every ExplicitReference whose
// source field has width W < 64, the destination resource's element count
// is bounded by 2^W; keep the minimum of all such bounds.
func computeResourceSizeBounds(root ast.Node) {
	for _, er := range ast.IterateLike[*ast.ExplicitReference](root) {
		fieldNode, err := root.Find(er.Field())
		if err != nil {
			continue
		}
		field, ok := fieldNode.(*ast.Field)
		if !ok || field.Width >= 64 {
			continue
		}
		resourceNode, err := root.Find(er.Destination())
		if err != nil {
			continue
		}
		resource, ok := resourceNode.(ast.ResourceBase)
		if !ok {
			continue
		}
		resource.SetMaxElements(uint64(1) << uint(field.Width))
	}
}

// checkRangeNameUniqueness is pass 4: a field's declared range name must
// not collide with any sibling field's own name.
func checkRangeNameUniqueness(root ast.Node) error {
	for _, s := range ast.IterateLike[*ast.Structure](root) {
		names := make(map[string]bool)
		for _, f := range s.Fields() {
			names[f.Name()] = true
		}
		for _, f := range s.Fields() {
			if f.RangeName != "" && names[f.RangeName] && f.RangeName != f.Name() {
				return errs.InvalidRangeName(s.Path(), f.RangeName)
			}
		}
	}
	return nil
}

// checkRangeUsage is pass 5: a structure with a range-anchor field may only
// be referenced from a Vector resource, and a range field may not also
// carry an invalid-value mark.
func checkRangeUsage(root ast.Node) error {
	for _, s := range ast.IterateLike[*ast.Structure](root) {
		for _, f := range s.Fields() {
			if f.RangeName != "" && f.Invalid != nil {
				return errs.OptionalRange(f.Path())
			}
		}
	}

	for _, resource := range ast.IterateLike[ast.ResourceBase](root) {
		switch resource.(type) {
		case *ast.Vector:
			continue
		}
		for _, ref := range resource.ReferencedStructures() {
			target, err := root.Find(ref.Target())
			if err != nil {
				continue
			}
			s, ok := target.(*ast.Structure)
			if !ok || !s.HasRange() {
				continue
			}
			return errs.InvalidRangeReference(s.Path(), resource.Path())
		}
	}
	return nil
}

// checkConstantReferenceFits is pass 6: every @const reference on a field
// must name a constant of the field's own basic type, whose value fits the
// field's declared width.
func checkConstantReferenceFits(root ast.Node) error {
	for _, f := range ast.IterateLike[*ast.Field](root) {
		basic := f.Basic
		if basic == nil {
			basic = f.EnumBasic
		}
		if basic == nil {
			continue
		}
		for _, ref := range f.ConstRefs() {
			target, err := root.Find(ref.Target())
			if err != nil {
				continue
			}
			c, ok := target.(*ast.Constant)
			if !ok {
				continue
			}
			if c.Type.TypeName != basic.TypeName {
				return errs.InvalidConstReference(f.Path(), c.Path())
			}
			required, err := basic.BitsRequired(c.Value)
			if err != nil || required > f.Width {
				return errs.InvalidConstValueReference(f.Path(), c.Path(), c.Value)
			}
		}
	}
	return nil
}

// checkExplicitReferenceStructUsage rejects an ExplicitReference whose
// named source struct is not among the structures its declaring resource
// actually references (spec.md §9 Open Question (c), adopted).
func checkExplicitReferenceStructUsage(root ast.Node) error {
	for _, resource := range ast.IterateLike[ast.ResourceBase](root) {
		used := make(map[string]bool)
		for _, ref := range resource.ReferencedStructures() {
			used[ref.Target()] = true
		}
		for _, er := range resource.ExplicitReferences() {
			if !used[er.Structure()] {
				return errs.InvalidStructInExplicitReference(resource.Path(), er.Structure())
			}
		}
	}
	return nil
}
