package introspect

import (
	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/naming"
)

// Config holds the global binding defaults consulted when no tag applies.
type Config struct {
	// Nillable is the class-level default for serializing nil values.
	Nillable bool
	// DateFormat is the default date format (a Go layout or one of the
	// meta sentinels).
	DateFormat string
	// DateLocale is the default BCP 47 locale for formatted values.
	DateLocale string
	// Visibility decides which members take part in binding when no
	// visibility tag applies.
	Visibility meta.VisibilityStrategy
	// NamingStrategy translates raw member and parameter names.
	NamingStrategy naming.Strategy
	// RequiredCreatorParams marks creator parameters required by default.
	RequiredCreatorParams bool
	// ZeroTimeDefaulting makes pattern date parsing default missing time
	// fields to zero instead of failing.
	ZeroTimeDefaulting bool
}

// DefaultConfig returns the library defaults.
func DefaultConfig() Config {
	return Config{
		Nillable:       false,
		DateFormat:     meta.DefaultFormat,
		Visibility:     ExportedMembers{},
		NamingStrategy: naming.Identity,
	}
}

// normalized fills zero-valued fields so the engine never consults a nil
// strategy.
func (c Config) normalized() Config {
	if c.DateFormat == "" {
		c.DateFormat = meta.DefaultFormat
	}
	if c.Visibility == nil {
		c.Visibility = ExportedMembers{}
	}
	if c.NamingStrategy == nil {
		c.NamingStrategy = naming.Identity
	}
	return c
}
