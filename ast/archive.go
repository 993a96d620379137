package ast

// Archive is a named container of resources (`archive NAME { ... }`),
// mirroring tree/nodes/archive.py. Resources and BoundResource groups are
// inserted as children in declaration order.
type Archive struct {
	coreNode
	Doc string
}

// NewArchive builds an empty Archive; the builder inserts its resources.
func NewArchive(name, doc string) *Archive {
	a := &Archive{Doc: doc}
	a.init(a, name)
	return a
}

// Resources returns the archive's resource members in declaration order,
// via the shared ResourceBase interface.
func (a *Archive) Resources() []ResourceBase {
	var out []ResourceBase
	for _, c := range a.Children() {
		if r, ok := c.(ResourceBase); ok {
			out = append(out, r)
		}
	}
	return out
}

// BoundResources returns the archive's @bound_implicitly groups.
func (a *Archive) BoundResources() []*BoundResource {
	return ChildrenLike[*BoundResource](a)
}

// IsBoundImplicitly reports whether resource is named by one of the
// archive's BoundResource groups, mirroring SyntaxTree.is_bound_implicitly.
func (a *Archive) IsBoundImplicitly(resource ResourceBase) bool {
	return len(a.BindingResources(resource)) > 0
}

// BindingResources returns the BoundResource groups (if any) that name
// resource, mirroring SyntaxTree.binding_resources.
func (a *Archive) BindingResources(resource ResourceBase) []*BoundResource {
	var out []*BoundResource
	for _, b := range a.BoundResources() {
		for _, ref := range b.ResourceRefs {
			if ref.Target() == resource.Name() || ref.Target() == resource.Path() {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// BindingResourcesOrSelf returns the groups binding resource, or nil when no
// group binds it. It does not return resource itself; callers handle the
// "or self" fallback explicitly.
func (a *Archive) BindingResourcesOrSelf(resource ResourceBase) []*BoundResource {
	if bound := a.BindingResources(resource); len(bound) > 0 {
		return bound
	}
	return nil
}
