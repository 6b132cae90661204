package spb

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jacoelho/spb/errors"
	"github.com/jacoelho/spb/pkg/docid"
)

// Control is the control segment shared by every message. Message types embed
// it, which also gives them the ControlBlock method NewSchema requires.
type Control struct {
	SenderID        string `spb:"IdentdEmissor" validate:"omitempty,len=8,numeric"`
	RecipientID     string `spb:"IdentdDestinatario" validate:"omitempty,len=8,numeric"`
	Domain          string `spb:"DomSist" validate:"omitempty,max=5"`
	OperationNumber string `spb:"NUOp" validate:"omitempty,max=23"`
}

// ControlBlock returns c.
func (c *Control) ControlBlock() *Control {
	return c
}

type controlField struct {
	name string
	ptr  *string
}

// fields lists the control values in wire order.
func (c *Control) fields() [4]controlField {
	return [4]controlField{
		{SenderElement, &c.SenderID},
		{RecipientElement, &c.RecipientID},
		{DomainElement, &c.Domain},
		{OperationNumberElement, &c.OperationNumber},
	}
}

// Option configures a schema.
type Option func(*options)

type options struct {
	namespace string
	tag       string
	rules     []Rule
	upper     bool
	checker   docid.Checker
}

// WithNamespace declares the default namespace written on the root element.
func WithNamespace(uri string) Option {
	return func(o *options) { o.namespace = uri }
}

// WithTag overrides the message element name. It defaults to the message
// code, or to the code plus "E" for overlays.
func WithTag(tag string) Option {
	return func(o *options) { o.tag = tag }
}

// WithRules attaches conditional cross-field rules.
func WithRules(rules ...Rule) Option {
	return func(o *options) { o.rules = append(o.rules, rules...) }
}

// WithUpperCase upper-cases every Text field during normalization.
func WithUpperCase() Option {
	return func(o *options) { o.upper = true }
}

// WithDocumentChecker replaces the identity document checksum used by
// DocumentRule.
func WithDocumentChecker(c docid.Checker) Option {
	return func(o *options) { o.checker = c }
}

// Schema binds message type M to its document layout. A Schema is immutable
// once built and safe for concurrent use.
type Schema[M any] struct {
	code      string
	tag       string
	namespace string
	overlay   bool
	upper     bool
	checker   docid.Checker

	fields []*binding
	byName map[string]*binding
	rules  []compiledRule
	walk   Walk

	control func(*M) *Control
	body    func(*M) any
	errs    func(*M) *ErrorCodes
}

// NewSchema walks the field declarations of message type M once and returns
// the compiled schema. P is inferred as *M.
func NewSchema[M any, P interface {
	*M
	ControlBlock() *Control
}](code string, fields []FieldDef[M], opts ...Option) (*Schema[M], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if code == "" {
		return nil, &errors.SchemaError{Schema: "<unnamed>", Reason: "empty message code"}
	}
	if o.checker == nil {
		o.checker = docid.Default
	}
	s := &Schema[M]{
		code:      code,
		tag:       cmp.Or(o.tag, code),
		namespace: o.namespace,
		upper:     o.upper,
		checker:   o.checker,
		control:   func(m *M) *Control { return P(m).ControlBlock() },
		body:      func(m *M) any { return m },
	}
	defs := make([]*binding, 0, len(fields))
	for i, f := range fields {
		if f.b == nil {
			return nil, &errors.SchemaError{Schema: code, Reason: fmt.Sprintf("field %d is undeclared", i)}
		}
		defs = append(defs, f.b)
	}
	if err := s.compile(defs, o.rules); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSchema is NewSchema for static message catalogs; it panics on error.
func MustSchema[M any, P interface {
	*M
	ControlBlock() *Control
}](code string, fields []FieldDef[M], opts ...Option) *Schema[M] {
	s, err := NewSchema[M, P](code, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Code returns the message code the schema is registered under.
func (s *Schema[M]) Code() string { return s.code }

// Tag returns the message element name.
func (s *Schema[M]) Tag() string { return s.tag }

// Namespace returns the declared default namespace, or "".
func (s *Schema[M]) Namespace() string { return s.namespace }

// IsOverlay reports whether the schema carries error-code attributes.
func (s *Schema[M]) IsOverlay() bool { return s.overlay }

// Bindings returns the walk computed when the schema was built. The result is
// shared and must not be modified.
func (s *Schema[M]) Bindings() Walk { return s.walk }

func (s *Schema[M]) compile(defs []*binding, rules []Rule) error {
	if len(defs) == 0 {
		return &errors.BaseLocationNotFoundError{Schema: s.code}
	}
	s.byName = make(map[string]*binding, len(defs))
	seen := make(map[string]string, len(defs))
	for _, b := range defs {
		if err := s.checkDeclared(b, s.byName, seen); err != nil {
			return err
		}
		if b.group != nil {
			g, err := s.compileGroup(b)
			if err != nil {
				return err
			}
			b = g
		}
		s.fields = append(s.fields, b)
		s.byName[b.name] = b
	}
	for _, r := range rules {
		c, err := r.compile(s.byName)
		if err != nil {
			return &errors.SchemaError{Schema: s.code, Reason: err.Error()}
		}
		s.rules = append(s.rules, c)
	}
	s.walk = s.buildWalk()
	return nil
}

// checkDeclared rejects unnamed, unlocated, and colliding fields.
func (s *Schema[M]) checkDeclared(b *binding, names map[string]*binding, locs map[string]string) error {
	switch {
	case b.name == "":
		return &errors.SchemaError{Schema: s.code, Reason: fmt.Sprintf("field at %s has no name", b.loc)}
	case names[b.name] != nil:
		return &errors.SchemaError{Schema: s.code, Reason: fmt.Sprintf("field %s declared twice", b.name)}
	case len(b.loc.path) == 0 && b.loc.attr == "":
		return &errors.SchemaError{Schema: s.code, Reason: fmt.Sprintf("field %s has no location", b.name)}
	case b.loc.attr == ErrorAttribute:
		return &errors.SchemaError{Schema: s.code, Reason: fmt.Sprintf("field %s binds reserved attribute %s", b.name, ErrorAttribute)}
	}
	if prev, ok := locs[b.loc.key()]; ok {
		return &errors.SchemaError{
			Schema: s.code,
			Reason: fmt.Sprintf("fields %s and %s share location %s", prev, b.name, b.loc),
		}
	}
	locs[b.loc.key()] = b.name
	names[b.name] = b
	return nil
}

// compileGroup checks that every member lies below the group element and
// rebases member locations onto it.
func (s *Schema[M]) compileGroup(b *binding) (*binding, error) {
	if b.loc.attr != "" || len(b.loc.path) == 0 {
		return nil, &errors.SchemaError{Schema: s.code, Reason: fmt.Sprintf("group %s must bind an element", b.name)}
	}
	if len(b.group.fields) == 0 {
		return nil, &errors.BaseLocationNotFoundError{Schema: s.code + "." + b.name}
	}
	names := make(map[string]*binding, len(b.group.fields))
	locs := make(map[string]string, len(b.group.fields))
	members := make([]*binding, 0, len(b.group.fields))
	for _, m := range b.group.fields {
		if m == nil {
			return nil, &errors.SchemaError{Schema: s.code, Reason: fmt.Sprintf("group %s has an undeclared field", b.name)}
		}
		if m.group != nil {
			return nil, &errors.SchemaError{Schema: s.code, Reason: fmt.Sprintf("group %s nests group %s", b.name, m.name)}
		}
		if !m.loc.HasPrefix(b.loc) || (len(m.loc.path) == len(b.loc.path) && m.loc.attr == "") {
			return nil, &errors.InconsistentGroupPrefixError{
				Schema: s.code,
				Group:  b.name,
				Prefix: b.loc.String(),
				Field:  m.name,
				Path:   m.loc.String(),
			}
		}
		rebased := *m
		rebased.loc = m.loc.Trim(b.loc)
		if err := s.checkDeclared(&rebased, names, locs); err != nil {
			return nil, err
		}
		members = append(members, &rebased)
	}
	ops := *b.group
	ops.fields = members
	g := *b
	g.group = &ops
	return &g, nil
}

func (s *Schema[M]) basePath() []string {
	return []string{RootElement, BodyElement, s.tag}
}

func (s *Schema[M]) buildWalk() Walk {
	var w Walk
	for _, name := range []string{SenderElement, RecipientElement, DomainElement, OperationNumberElement} {
		w.Bindings = append(w.Bindings, Binding{
			Field:    name,
			Path:     []string{RootElement, ControlElement, name},
			Kind:     "text",
			Required: true,
		})
	}
	base := s.basePath()
	if s.overlay {
		w.Bindings = append(w.Bindings, Binding{Field: ErrorAttribute, Path: base, Attribute: ErrorAttribute, Kind: "text", Companion: true})
	}
	for _, b := range s.fields {
		if b.group == nil {
			w.Bindings = append(w.Bindings, s.scalarBindings(b, base)...)
			continue
		}
		g := Binding{Field: b.name, Path: b.loc.Join(base), Kind: b.kind, Group: true}
		for _, m := range b.group.fields {
			g.Members = append(g.Members, s.scalarBindings(m, g.Path)...)
		}
		w.Groups = append(w.Groups, g.Path)
		w.Bindings = append(w.Bindings, g)
	}
	return w
}

func (s *Schema[M]) scalarBindings(b *binding, base []string) []Binding {
	out := []Binding{{
		Field:     b.name,
		Path:      b.loc.Join(base),
		Attribute: b.loc.attr,
		Kind:      b.kind,
		Required:  b.required,
	}}
	if s.overlay {
		out = append(out, Binding{
			Field:     b.name,
			Path:      b.loc.Join(base),
			Attribute: ErrorAttribute,
			Kind:      "text",
			Companion: true,
		})
	}
	return out
}

// location renders the absolute position of field b for violation reports.
// group is nil for top-level fields.
func (s *Schema[M]) location(b, group *binding, index int) string {
	parts := s.basePath()
	if group != nil {
		parts = append(parts, group.loc.path...)
		parts[len(parts)-1] += fmt.Sprintf("[%d]", index)
	}
	parts = append(parts, b.loc.path...)
	out := strings.Join(parts, "/")
	if b.loc.attr != "" {
		out += "@" + b.loc.attr
	}
	return out
}
