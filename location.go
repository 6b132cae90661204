package spb

import (
	"slices"
	"strings"
)

// Element names of the fixed document frame.
const (
	RootElement    = "DOC"
	ControlElement = "BCMSG"
	BodyElement    = "SISMSG"

	SenderElement          = "IdentdEmissor"
	RecipientElement       = "IdentdDestinatario"
	DomainElement          = "DomSist"
	OperationNumberElement = "NUOp"

	// ErrorAttribute carries error codes on overlay documents.
	ErrorAttribute = "CodErro"
)

// Location is the place of a value inside a message element: a path of
// element names below the message element and, optionally, an attribute on
// the element at the end of that path. An empty path with an attribute
// addresses the message element itself.
type Location struct {
	path []string
	attr string
}

// At returns the location of the element reached by path.
func At(path ...string) Location {
	return Location{path: slices.Clone(path)}
}

// Attr returns a copy of l that selects attribute name on its element.
func (l Location) Attr(name string) Location {
	return Location{path: slices.Clone(l.path), attr: name}
}

// Path returns a copy of the element path.
func (l Location) Path() []string {
	return slices.Clone(l.path)
}

// Attribute returns the attribute selector, or "".
func (l Location) Attribute() string {
	return l.attr
}

// Equal reports whether l and o address the same element and attribute.
func (l Location) Equal(o Location) bool {
	return l.attr == o.attr && slices.Equal(l.path, o.path)
}

// HasPrefix reports whether l lies at or below the element addressed by prefix.
func (l Location) HasPrefix(prefix Location) bool {
	if len(prefix.path) > len(l.path) {
		return false
	}
	return slices.Equal(l.path[:len(prefix.path)], prefix.path)
}

// Trim returns l relative to prefix. The caller checks HasPrefix first.
func (l Location) Trim(prefix Location) Location {
	return Location{path: slices.Clone(l.path[len(prefix.path):]), attr: l.attr}
}

// Join returns the absolute path of l below base.
func (l Location) Join(base []string) []string {
	out := make([]string, 0, len(base)+len(l.path))
	out = append(out, base...)
	return append(out, l.path...)
}

// String renders A/B/C or A/B@attr.
func (l Location) String() string {
	s := strings.Join(l.path, "/")
	if l.attr != "" {
		s += "@" + l.attr
	}
	return s
}

func (l Location) key() string {
	return l.String()
}

// Binding is one entry of a schema walk: a named value and its absolute
// location from the document root.
type Binding struct {
	Field     string
	Path      []string
	Attribute string
	Kind      string
	Required  bool
	// Group marks the root of a repeatable group; Members lists the bindings
	// of one record, with paths below Path.
	Group   bool
	Members []Binding
	// Companion marks an overlay error-code attribute bound next to Field.
	Companion bool
}

// String renders the absolute location.
func (b Binding) String() string {
	s := strings.Join(b.Path, "/")
	if b.Attribute != "" {
		s += "@" + b.Attribute
	}
	return s
}

// Walk is the ordered binding list of a schema plus its group boundaries.
type Walk struct {
	Bindings []Binding
	// Groups holds the absolute path of every repeatable group, outermost first.
	Groups [][]string
}
