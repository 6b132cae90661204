package spb

import (
	"fmt"

	"github.com/jacoelho/spb/internal/xmltree"
)

// EncodeOptions configures document serialization.
type EncodeOptions struct {
	// Indent is repeated once per nesting level; empty writes a single line.
	Indent string
	// OmitDeclaration drops the leading XML declaration.
	OmitDeclaration bool
}

// DefaultEncodeOptions indents with two spaces and writes the declaration.
var DefaultEncodeOptions = EncodeOptions{Indent: "  "}

// Encode validates m and renders it as a document.
func (s *Schema[M]) Encode(m M) ([]byte, error) {
	return s.EncodeWith(m, DefaultEncodeOptions)
}

// EncodeWith is Encode with explicit serialization options. Invalid messages
// are rejected with an errors.ValidationList and produce no output.
func (s *Schema[M]) EncodeWith(m M, opts EncodeOptions) ([]byte, error) {
	root, err := s.tree(m)
	if err != nil {
		return nil, err
	}
	return xmltree.Marshal(root, xmltree.WriteOptions{
		Indent:          opts.Indent,
		OmitDeclaration: opts.OmitDeclaration,
	}), nil
}

// EncodeAny encodes v, which must be an M or a non-nil *M.
func (s *Schema[M]) EncodeAny(v any, opts EncodeOptions) ([]byte, error) {
	switch m := v.(type) {
	case M:
		return s.EncodeWith(m, opts)
	case *M:
		if m != nil {
			return s.EncodeWith(*m, opts)
		}
	}
	return nil, fmt.Errorf("schema %s: cannot encode %T", s.code, v)
}

func (s *Schema[M]) tree(m M) (*xmltree.Element, error) {
	v := s.Normalize(m)
	if list := s.check(&v, nil); len(list) > 0 {
		return nil, list
	}

	root := xmltree.NewElement(RootElement)
	root.SetNamespace(s.namespace)

	control := root.AddChild(ControlElement)
	for _, f := range s.control(&v).fields() {
		control.AddChild(f.name).SetText(*f.ptr)
	}

	msg := root.AddChild(BodyElement).AddChild(s.tag)
	body := s.body(&v)
	var errs *ErrorCodes
	if s.errs != nil {
		errs = s.errs(&v)
	}

	for _, b := range s.fields {
		if b.group == nil {
			if err := writeField(msg, b, body, errs.Field(b.name)); err != nil {
				return nil, fmt.Errorf("encode %s: %w", s.code, err)
			}
			continue
		}
		parent := msg.Ensure(b.loc.path[:len(b.loc.path)-1]...)
		last := b.loc.path[len(b.loc.path)-1]
		for i := range b.group.length(body) {
			item := b.group.item(body, i)
			entry := parent.AddChild(last)
			for _, f := range b.group.fields {
				if err := writeField(entry, f, item, errs.Member(b.name, i, f.name)); err != nil {
					return nil, fmt.Errorf("encode %s: %w", s.code, err)
				}
			}
		}
	}

	if errs != nil && errs.General != "" {
		msg.SetAttr(ErrorAttribute, errs.General)
	}
	return root, nil
}

// writeField places one scalar below scope. An absent value writes nothing
// unless it carries an error code, which still needs its element.
func writeField(scope *xmltree.Element, b *binding, p any, code string) error {
	text, set, err := b.text(p)
	if err != nil {
		return fmt.Errorf("field %s: %w", b.name, err)
	}
	if !set && code == "" {
		return nil
	}
	el := scope.Ensure(b.loc.path...)
	if set {
		if b.loc.attr != "" {
			el.SetAttr(b.loc.attr, text)
		} else {
			el.SetText(text)
		}
	}
	if code != "" {
		el.SetAttr(ErrorAttribute, code)
	}
	return nil
}
