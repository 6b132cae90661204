package catalog

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/jacoelho/spb"
)

// Version is the catalog version every schema in this package is registered
// under.
const Version = "5.02"

// Schemas returns the schemas of this package in registration order.
func Schemas() []spb.AnySchema {
	return []spb.AnySchema{
		GEN0001Schema,
		GEN0001ESchema,
		GEN0014Schema,
		STR0008Schema,
		STR0008ESchema,
		STR0008R1Schema,
	}
}

// NewRegistry registers Schemas under Version. Registrations are logged at
// debug level.
func NewRegistry(logger zerolog.Logger) (*spb.Registry, error) {
	b := spb.NewRegistryBuilder(logger)
	for _, s := range Schemas() {
		if err := b.Register(s.Code(), Version, s); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Registry returns the process-wide registry, built on first use. It is safe
// for concurrent use.
var Registry = sync.OnceValues(func() (*spb.Registry, error) {
	return NewRegistry(zerolog.Nop())
})
