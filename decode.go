package spb

import (
	"io"
	"strings"

	"github.com/jacoelho/spb/errors"
	"github.com/jacoelho/spb/internal/lexical"
	"github.com/jacoelho/spb/internal/xmltree"
)

// Decode parses data as a document of this schema. Malformed input fails with
// *errors.ParseError and a foreign layout with *errors.StructuralMismatchError;
// every per-field problem is collected into one errors.ValidationList.
func (s *Schema[M]) Decode(data []byte) (M, error) {
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		var zero M
		return zero, &errors.ParseError{Err: err}
	}
	return s.decodeRoot(root)
}

// DecodeReader is Decode over a stream.
func (s *Schema[M]) DecodeReader(r io.Reader) (M, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		var zero M
		return zero, &errors.ParseError{Err: err}
	}
	return s.decodeRoot(root)
}

func (s *Schema[M]) decodeRoot(root *xmltree.Element) (M, error) {
	m, err := s.decodeTree(root)
	if err != nil {
		var zero M
		return zero, err
	}
	return *m, nil
}

// decodeAny serves generic dispatch through a Registry.
func (s *Schema[M]) decodeAny(root *xmltree.Element) (any, error) {
	m, err := s.decodeTree(root)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Schema[M]) decodeTree(root *xmltree.Element) (*M, error) {
	msg, err := messageElement(root, s.tag)
	if err != nil {
		return nil, err
	}

	m := new(M)
	present := make(presence)
	var out errors.ValidationList

	if control := root.Child(ControlElement); control != nil {
		for _, f := range s.control(m).fields() {
			if el := control.Child(f.name); el != nil {
				present[f.name] = true
				*f.ptr = el.Text()
			}
		}
	}

	body := s.body(m)
	var errs *ErrorCodes
	if s.errs != nil {
		errs = s.errs(m)
		if code, ok := msg.Attr(ErrorAttribute); ok {
			errs.General = code
		}
	}

	for _, b := range s.fields {
		if b.group == nil {
			out = s.readField(out, msg, b, body, b.name, s.location(b, nil, 0), present, errs)
			continue
		}
		b.group.reset(body)
		for i, entry := range msg.FindAll(b.loc.path...) {
			item := b.group.add(body)
			for _, f := range b.group.fields {
				out = s.readField(out, entry, f, item, memberKey(b.name, i, f.name), s.location(f, b, i), present, errs)
			}
		}
	}

	v := s.Normalize(*m)
	out = append(out, s.check(&v, present)...)
	if len(out) > 0 {
		return nil, out
	}
	return &v, nil
}

// readField reads one scalar below scope and records its presence. An
// overlay element that holds only an error code counts as absent.
func (s *Schema[M]) readField(out errors.ValidationList, scope *xmltree.Element, b *binding, p any, key, path string, present presence, errs *ErrorCodes) errors.ValidationList {
	el := scope.Find(b.loc.path...)
	if el == nil {
		return out
	}
	code, hasCode := "", false
	if errs != nil {
		if code, hasCode = el.Attr(ErrorAttribute); hasCode {
			errs.Set(key, code)
		}
	}

	var text string
	if b.loc.attr != "" {
		v, ok := el.Attr(b.loc.attr)
		if !ok {
			return out
		}
		text = v
	} else {
		text = el.Text()
		if hasCode && len(el.Children()) == 0 && lexical.TrimWhitespace(text) == "" {
			return out
		}
	}

	present[key] = true
	if err := b.assign(p, text); err != nil {
		return append(out, valueViolation(key, path, text, err))
	}
	return out
}

// messageElement checks the fixed frame of root and returns the single message
// element below the body. An empty tag accepts any message element.
func messageElement(root *xmltree.Element, tag string) (*xmltree.Element, error) {
	if root.Name() != RootElement {
		return nil, &errors.StructuralMismatchError{Expected: RootElement, Actual: root.Name()}
	}
	body := root.Child(BodyElement)
	if body == nil {
		return nil, &errors.StructuralMismatchError{Expected: BodyElement, Path: RootElement}
	}
	children := body.Children()
	if len(children) == 1 && (tag == "" || children[0].Name() == tag) {
		return children[0], nil
	}
	names := make([]string, 0, len(children))
	for _, c := range children {
		names = append(names, c.Name())
	}
	expected := tag
	if expected == "" {
		expected = "message element"
	}
	return nil, &errors.StructuralMismatchError{
		Expected: expected,
		Actual:   strings.Join(names, ","),
		Path:     RootElement + "/" + BodyElement,
	}
}
