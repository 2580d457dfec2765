package manifest

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jsonbind/pkg/introspect"
	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/registry"
)

const sampleManifest = `
version: 1
defaults:
  naming: lower-snake
  nillable: true
  dateFormat: "2006-01-02"
packages:
  - path: example.com/app/model
    tags:
      nillable: true
types:
  - name: document
    tags:
      propertyOrder: [Title, Body]
      typeInfo:
        key: kind
        subtypes:
          note: note
    properties:
      - name: Body
        scope: getter
        tags:
          name: content
`

type document struct {
	Title string
	Body  string
}

type note struct {
	document
}

func registerFixtures(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.RegisterTypeName("document", document{}))
	require.NoError(t, reg.RegisterTypeName("note", note{}))
	return reg
}

func TestParseAndApply(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	reg := registerFixtures(t)
	require.NoError(t, m.Apply(reg))

	pkgTags := reg.PackageTags("example.com/app/model")
	require.Len(t, pkgTags, 1)
	assert.Equal(t, meta.KindNillable, pkgTags[0].Kind())

	docType := reflect.TypeOf(document{})
	typeTags := reg.TypeTags(docType)
	require.Len(t, typeTags, 2)
	assert.Equal(t, meta.KindPropertyOrder, typeTags[0].Kind())

	info := typeTags[1].(meta.TypeInfoTag)
	assert.Equal(t, "kind", info.Key)
	require.Len(t, info.Subtypes, 1)
	assert.Equal(t, "note", info.Subtypes[0].Alias)
	assert.Equal(t, reflect.TypeOf(note{}), info.Subtypes[0].Type)

	getterTags := reg.AccessorTags(docType, "Body", meta.ScopeGetter)
	require.Len(t, getterTags, 1)
	assert.Equal(t, "content", getterTags[0].(meta.NameTag).Value)
}

func TestApplyDefaults(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	cfg := introspect.DefaultConfig()
	require.NoError(t, m.ApplyDefaults(&cfg))

	assert.True(t, cfg.Nillable)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Equal(t, "user_name", cfg.NamingStrategy.Translate("UserName"))
}

func TestApplyFeedsIntrospection(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	reg := registerFixtures(t)
	require.NoError(t, m.Apply(reg))

	ctx := introspect.NewContext(introspect.DefaultConfig(), reg, nil)
	cust, err := ctx.Customization(reflect.TypeOf(document{}))
	require.NoError(t, err)

	body, ok := cust.Property("Body")
	require.True(t, ok)
	assert.Equal(t, "content", body.SerializedName)
	assert.Equal(t, "Body", body.DeserializedName)

	require.NotNil(t, cust.Polymorphism)
	assert.Equal(t, "kind", cust.Polymorphism.FieldName)

	ordered := cust.OrderedProperties()
	require.Len(t, ordered, 2)
	assert.Equal(t, "Title", ordered[0].Property.Name())
}

func TestUnknownVersionRejected(t *testing.T) {
	_, err := Parse([]byte("version: 2"))
	require.Error(t, err)
}

func TestUnknownTypeNameRejected(t *testing.T) {
	m, err := Parse([]byte("version: 1\ntypes:\n  - name: ghost"))
	require.NoError(t, err)

	require.Error(t, m.Apply(registry.New()))
}

func TestUnknownNamingStrategyRejected(t *testing.T) {
	_, err := Parse([]byte("version: 1\ndefaults:\n  naming: screaming"))
	require.Error(t, err)
}

func TestUnknownSubtypeNameRejected(t *testing.T) {
	m, err := Parse([]byte(`
version: 1
types:
  - name: document
    tags:
      typeInfo:
        subtypes:
          ghost: ghost
`))
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, reg.RegisterTypeName("document", document{}))
	require.Error(t, m.Apply(reg))
}
