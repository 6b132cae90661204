package spb

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/jacoelho/spb/errors"
	"github.com/jacoelho/spb/internal/xmltree"
)

// AnySchema is the type-erased view of a Schema used for generic dispatch.
type AnySchema interface {
	Code() string
	Tag() string
	Namespace() string
	IsOverlay() bool
	Bindings() Walk
	// EncodeAny encodes a message value or pointer of the schema's type.
	EncodeAny(v any, opts EncodeOptions) ([]byte, error)

	decodeAny(root *xmltree.Element) (any, error)
}

var (
	_ AnySchema = (*Schema[Control])(nil)
	_ AnySchema = (*Schema[Overlaid[Control]])(nil)
)

// Entry is one registration.
type Entry struct {
	Code    string
	Version string
	Schema  AnySchema
}

type registryKey struct {
	code    string
	version string
}

// RegistryBuilder collects registrations. It is not safe for concurrent use;
// populate it during startup and call Build once.
type RegistryBuilder struct {
	logger  zerolog.Logger
	schemas map[registryKey]AnySchema
	tags    map[registryKey]AnySchema
}

// NewRegistryBuilder returns an empty builder that logs registrations to logger.
func NewRegistryBuilder(logger zerolog.Logger) *RegistryBuilder {
	return &RegistryBuilder{
		logger:  logger,
		schemas: make(map[registryKey]AnySchema),
		tags:    make(map[registryKey]AnySchema),
	}
}

// Register adds s under (code, version). A repeated key, or a second schema
// with the same message element in one version, fails with
// *errors.DuplicateRegistrationError and leaves the first registration in place.
func (b *RegistryBuilder) Register(code, version string, s AnySchema) error {
	if code == "" || version == "" || s == nil {
		return fmt.Errorf("register message: code, version, and schema are required")
	}
	key := registryKey{code: code, version: version}
	tag := registryKey{code: s.Tag(), version: version}
	if _, exists := b.schemas[key]; exists {
		return &errors.DuplicateRegistrationError{Code: code, Version: version}
	}
	if _, exists := b.tags[tag]; exists {
		return &errors.DuplicateRegistrationError{Code: s.Tag(), Version: version}
	}
	b.schemas[key] = s
	b.tags[tag] = s
	b.logger.Debug().
		Str("code", code).
		Str("version", version).
		Str("tag", s.Tag()).
		Bool("overlay", s.IsOverlay()).
		Msg("registered message schema")
	return nil
}

// Build freezes the registrations into a Registry. Later Register calls on b
// do not affect the returned Registry.
func (b *RegistryBuilder) Build() *Registry {
	r := &Registry{
		schemas: maps.Clone(b.schemas),
		tags:    maps.Clone(b.tags),
	}
	r.entries = lo.MapToSlice(r.schemas, func(k registryKey, s AnySchema) Entry {
		return Entry{Code: k.code, Version: k.version, Schema: s}
	})
	slices.SortFunc(r.entries, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Code, b.Code), cmp.Compare(a.Version, b.Version))
	})
	b.logger.Debug().Int("messages", len(r.entries)).Msg("message registry built")
	return r
}

// Registry maps (message code, version) to schemas. It is immutable, so
// lookups take no locks.
type Registry struct {
	schemas map[registryKey]AnySchema
	tags    map[registryKey]AnySchema
	entries []Entry
}

// Resolve returns the schema registered under (code, version).
func (r *Registry) Resolve(code, version string) (AnySchema, error) {
	s, ok := r.schemas[registryKey{code: code, version: version}]
	if !ok {
		return nil, &errors.MessageNotImplementedError{Code: code, Version: version}
	}
	return s, nil
}

// Entries lists registrations ordered by code then version.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Versions lists the versions registered for code.
func (r *Registry) Versions(code string) []string {
	return lo.FilterMap(r.entries, func(e Entry, _ int) (string, bool) {
		return e.Version, e.Code == code
	})
}

// Decode reads the message element name from data, resolves it for version,
// and decodes with the matching schema. The result is a pointer to the
// schema's message type.
func (r *Registry) Decode(data []byte, version string) (any, error) {
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, &errors.ParseError{Err: err}
	}
	return r.decodeRoot(root, version)
}

// DecodeReader is Decode over a stream.
func (r *Registry) DecodeReader(rd io.Reader, version string) (any, error) {
	root, err := xmltree.Parse(rd)
	if err != nil {
		return nil, &errors.ParseError{Err: err}
	}
	return r.decodeRoot(root, version)
}

// DecodeSchema is Decode that also returns the schema the document resolved
// to. The document is parsed once; the schema is set whenever the message
// element was recognized, even when field decoding fails.
func (r *Registry) DecodeSchema(data []byte, version string) (AnySchema, any, error) {
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, nil, &errors.ParseError{Err: err}
	}
	s, err := r.identify(root, version)
	if err != nil {
		return nil, nil, err
	}
	msg, err := s.decodeAny(root)
	if err != nil {
		return s, nil, err
	}
	return s, msg, nil
}

// Identify returns the schema for a document without decoding its fields.
func (r *Registry) Identify(data []byte, version string) (AnySchema, error) {
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, &errors.ParseError{Err: err}
	}
	return r.identify(root, version)
}

func (r *Registry) identify(root *xmltree.Element, version string) (AnySchema, error) {
	msg, err := messageElement(root, "")
	if err != nil {
		return nil, err
	}
	s, ok := r.tags[registryKey{code: msg.Name(), version: version}]
	if !ok {
		return nil, &errors.MessageNotImplementedError{Code: msg.Name(), Version: version}
	}
	return s, nil
}

func (r *Registry) decodeRoot(root *xmltree.Element, version string) (any, error) {
	s, err := r.identify(root, version)
	if err != nil {
		return nil, err
	}
	return s.decodeAny(root)
}
