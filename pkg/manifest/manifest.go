// Package manifest loads declarative binding metadata from YAML files.
// Applications that keep binding configuration out of source code register
// their types under names and let a manifest attach package tags, type
// tags, per-property tags and type-discrimination declarations to them.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Manifest is the root document of a binding manifest file.
type Manifest struct {
	Version  int           `yaml:"version" validate:"required,eq=1"`
	Defaults *Defaults     `yaml:"defaults"`
	Packages []PackageDecl `yaml:"packages" validate:"dive"`
	Types    []TypeDecl    `yaml:"types" validate:"dive"`
}

// Defaults maps onto the global binding configuration.
type Defaults struct {
	Naming     string `yaml:"naming" validate:"omitempty,oneof=identity lower-camel upper-camel lower-snake upper-snake kebab"`
	Nillable   *bool  `yaml:"nillable"`
	DateFormat string `yaml:"dateFormat"`
	DateLocale string `yaml:"dateLocale"`
}

// PackageDecl attaches tags to every type of one package.
type PackageDecl struct {
	Path string `yaml:"path" validate:"required"`
	Tags TagSet `yaml:"tags"`
}

// TypeDecl attaches tags to one registered type. Name references a type
// registered under that name before the manifest is applied.
type TypeDecl struct {
	Name       string         `yaml:"name" validate:"required"`
	Tags       TagSet         `yaml:"tags"`
	Properties []PropertyDecl `yaml:"properties" validate:"dive"`
}

// PropertyDecl attaches tags to one accessor scope of a property.
type PropertyDecl struct {
	Name  string `yaml:"name" validate:"required"`
	Scope string `yaml:"scope" validate:"omitempty,oneof=property getter setter"`
	Tags  TagSet `yaml:"tags"`
}

// TagSet is the declarative counterpart of the tag kinds. Zero values mean
// the tag is absent.
type TagSet struct {
	Name          string        `yaml:"name"`
	Nillable      *bool         `yaml:"nillable"`
	Transient     bool          `yaml:"transient"`
	DateFormat    string        `yaml:"dateFormat"`
	DateLocale    string        `yaml:"dateLocale"`
	NumberFormat  string        `yaml:"numberFormat"`
	NumberLocale  string        `yaml:"numberLocale"`
	Adapter       string        `yaml:"adapter"`
	Serializer    string        `yaml:"serializer"`
	Deserializer  string        `yaml:"deserializer"`
	PropertyOrder []string      `yaml:"propertyOrder"`
	TypeInfo      *TypeInfoDecl `yaml:"typeInfo"`
}

// TypeInfoDecl declares polymorphic type discrimination. Subtypes maps a
// discriminator alias to a registered type name.
type TypeInfoDecl struct {
	Key      string            `yaml:"key"`
	Subtypes map[string]string `yaml:"subtypes"`
}

var validate = validator.New()

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}
