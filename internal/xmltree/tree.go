// Package xmltree provides the small mutable element tree the codec builds
// on encode and walks on decode. Only element content, attributes, and the
// default namespace are modeled; comments and processing instructions are dropped.
package xmltree

import "strings"

// Element is one node of the tree. Text is only meaningful on leaves.
type Element struct {
	name      string
	namespace string
	attrs     []Attr
	children  []*Element
	parent    *Element
	text      string
}

// Attr is an unqualified attribute.
type Attr struct {
	Name  string
	Value string
}

// NewElement returns a detached element.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// Name returns the local name.
func (e *Element) Name() string {
	return e.name
}

// Namespace returns the resolved namespace URI, or "" when unqualified.
func (e *Element) Namespace() string {
	return e.namespace
}

// SetNamespace sets the default namespace declared on this element.
func (e *Element) SetNamespace(uri string) {
	e.namespace = uri
}

// Parent returns the parent element; nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Text returns the direct character data of the element.
func (e *Element) Text() string {
	return e.text
}

// SetText replaces the direct character data of the element.
func (e *Element) SetText(text string) {
	e.text = text
}

// Attr returns the attribute value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr adds or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// Attrs returns a copy of the element attributes in document order.
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Children returns a copy of the child element slice.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// AddChild appends a new child element and returns it.
func (e *Element) AddChild(name string) *Element {
	child := &Element{name: name, namespace: e.namespace, parent: e}
	e.children = append(e.children, child)
	return child
}

// Child returns the last child named name, or nil.
func (e *Element) Child(name string) *Element {
	for i := len(e.children) - 1; i >= 0; i-- {
		if e.children[i].name == name {
			return e.children[i]
		}
	}
	return nil
}

// ChildrenNamed returns every child named name in document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find follows path from e and returns the element at its end, or nil.
// Each step selects the first child with the step's name.
func (e *Element) Find(path ...string) *Element {
	cur := e
	for _, step := range path {
		var next *Element
		for _, c := range cur.children {
			if c.name == step {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// FindAll follows all but the last step of path like Find and returns every
// sibling matching the last step.
func (e *Element) FindAll(path ...string) []*Element {
	if len(path) == 0 {
		return []*Element{e}
	}
	parent := e.Find(path[:len(path)-1]...)
	if parent == nil {
		return nil
	}
	return parent.ChildrenNamed(path[len(path)-1])
}

// Ensure returns the element at path, creating missing steps. Existing steps
// are reused, so fields sharing an intermediate element share one instance.
func (e *Element) Ensure(path ...string) *Element {
	cur := e
	for _, step := range path {
		next := cur.Child(step)
		if next == nil {
			next = cur.AddChild(step)
		}
		cur = next
	}
	return cur
}

// Path returns the slash-separated names from the root to e.
func (e *Element) Path() string {
	var parts []string
	for cur := e; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}
