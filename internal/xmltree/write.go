package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Declaration is the XML declaration emitted ahead of the root element.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// WriteOptions configures serialization.
type WriteOptions struct {
	// Indent is repeated once per depth level; empty writes everything on one line.
	Indent string
	// OmitDeclaration suppresses the XML declaration.
	OmitDeclaration bool
}

// Marshal serializes the tree rooted at e.
func Marshal(e *Element, opts WriteOptions) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail.
	_ = Write(&buf, e, opts)
	return buf.Bytes()
}

// Write serializes the tree rooted at e to w. A namespace is declared as the
// default namespace wherever it differs from the parent's.
func Write(w io.Writer, e *Element, opts WriteOptions) error {
	ew := &errWriter{w: w}
	if !opts.OmitDeclaration {
		ew.str(Declaration)
		if opts.Indent != "" {
			ew.str("\n")
		}
	}
	writeElement(ew, e, "", 0, opts.Indent)
	if opts.Indent != "" {
		ew.str("\n")
	}
	return ew.err
}

func writeElement(w *errWriter, e *Element, parentNS string, depth int, indent string) {
	if indent != "" && depth > 0 {
		w.str("\n")
		w.str(strings.Repeat(indent, depth))
	}
	w.str("<")
	w.str(e.name)
	if e.namespace != parentNS {
		w.str(` xmlns="`)
		w.escape(e.namespace)
		w.str(`"`)
	}
	for _, a := range e.attrs {
		w.str(" ")
		w.str(a.Name)
		w.str(`="`)
		w.escape(a.Value)
		w.str(`"`)
	}

	switch {
	case len(e.children) > 0:
		w.str(">")
		for _, c := range e.children {
			writeElement(w, c, e.namespace, depth+1, indent)
		}
		if indent != "" {
			w.str("\n")
			w.str(strings.Repeat(indent, depth))
		}
	case e.text != "":
		w.str(">")
		w.escape(e.text)
	default:
		w.str("/>")
		return
	}
	w.str("</")
	w.str(e.name)
	w.str(">")
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) str(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *errWriter) escape(s string) {
	if w.err != nil {
		return
	}
	w.err = xml.EscapeText(w.w, []byte(s))
}
