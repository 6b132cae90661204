package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	errDoctype     = errors.New("document type declarations are not allowed")
	errOutsideRoot = errors.New("character data outside the root element")
	errSecondRoot  = errors.New("more than one root element")
)

// outsideRoot is what may surround the root element: whitespace and a BOM.
const outsideRoot = " \t\r\n\uFEFF"

// Parse builds a tree from XML input and returns its root element.
// Document type declarations are rejected so no entity can be defined or
// expanded; undefined entity references fail in the strict decoder.
func Parse(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.Strict = true

	var b builder
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return b.finish()
		}
		if err != nil {
			return nil, err
		}
		if err := b.add(tok); err != nil {
			return nil, err
		}
	}
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*Element, error) {
	return Parse(bytes.NewReader(data))
}

// builder assembles elements from the decoder token stream.
type builder struct {
	open []*Element
	root *Element
	done bool
}

func (b *builder) add(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		return b.start(t)
	case xml.EndElement:
		b.open = b.open[:len(b.open)-1]
		b.done = len(b.open) == 0
	case xml.CharData:
		if len(b.open) == 0 {
			if strings.Trim(string(t), outsideRoot) != "" {
				return errOutsideRoot
			}
			return nil
		}
		b.open[len(b.open)-1].text += string(t)
	case xml.Directive:
		if declaresDoctype(t) {
			return errDoctype
		}
	}
	return nil
}

func (b *builder) start(t xml.StartElement) error {
	if b.done {
		return fmt.Errorf("%w: %s", errSecondRoot, t.Name.Local)
	}
	e := &Element{name: t.Name.Local, namespace: t.Name.Space}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		e.attrs = append(e.attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}
	if n := len(b.open); n > 0 {
		parent := b.open[n-1]
		e.parent = parent
		parent.children = append(parent.children, e)
	} else {
		b.root = e
	}
	b.open = append(b.open, e)
	return nil
}

func (b *builder) finish() (*Element, error) {
	if b.root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	if !b.done {
		return nil, fmt.Errorf("element %s is not closed: %w", b.open[len(b.open)-1].name, io.ErrUnexpectedEOF)
	}
	return b.root, nil
}

func declaresDoctype(d xml.Directive) bool {
	keyword, _, _ := strings.Cut(strings.TrimSpace(string(d)), " ")
	keyword = strings.ToUpper(keyword)
	return strings.HasPrefix(keyword, "DOCTYPE") || strings.HasPrefix(keyword, "ENTITY")
}
