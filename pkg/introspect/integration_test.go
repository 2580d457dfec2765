package introspect

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jsonbind/pkg/component"
	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/naming"
	"github.com/example/jsonbind/pkg/registry"
)

// The fixtures below model a small payments domain exercising tag parsing,
// registered metadata, polymorphism, components and creator resolution in
// one pass.

type paymentMethod interface {
	Charge(amount cents) error
}

type cardPayment struct {
	Number  string    `json:"card_number"`
	Expires time.Time `jsonb:"dateformat=01/2006"`
}

func (cardPayment) Charge(cents) error { return nil }

type transferPayment struct {
	IBAN string `json:"iban"`
}

func (transferPayment) Charge(cents) error { return nil }

type payment struct {
	Amount cents         `jsonb:"adapter=decimal"`
	Method paymentMethod `jsonb:"impl=card"`
	Note   string        `json:"note,nillable"`
	Trace  string        `json:"-"`
}

func newPayment(amount cents, note string) payment {
	return payment{Amount: amount, Note: note}
}

func TestPaymentsResolution(t *testing.T) {
	reg := registry.New()
	reg.RegisterInterface((*paymentMethod)(nil), registry.WithTags(meta.TypeInfoTag{
		Key: "method",
		Subtypes: []meta.SubtypeAlias{
			{Type: reflect.TypeOf(cardPayment{}), Alias: "card"},
			{Type: reflect.TypeOf(transferPayment{}), Alias: "transfer"},
		},
	}))
	require.NoError(t, reg.RegisterTypeName("card", cardPayment{}))
	require.NoError(t, reg.RegisterConstructor(payment{}, newPayment,
		registry.ParamNames("amount", "note")))

	comps := component.NewRegistry()
	require.NoError(t, comps.Register("decimal", centsAdapter{}))

	cfg := DefaultConfig()
	cfg.NamingStrategy = naming.LowerCamelCase
	ctx := NewContext(cfg, reg, comps)

	cust, err := ctx.Customization(reflect.TypeOf(payment{}))
	require.NoError(t, err)

	amount, ok := cust.Property("Amount")
	require.True(t, ok)
	assert.Equal(t, "amount", amount.SerializedName)
	require.NotNil(t, amount.Adapter)
	assert.Equal(t, reflect.TypeOf(cents(0)), amount.Adapter.Original)

	method, ok := cust.Property("Method")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(cardPayment{}), method.Implementation)

	note, ok := cust.Property("Note")
	require.True(t, ok)
	assert.Equal(t, "note", note.SerializedName)
	assert.True(t, note.Nillable, "the deprecated flag applies without an explicit nillable tag")

	trace, ok := cust.Property("Trace")
	require.True(t, ok)
	assert.True(t, trace.Transient)

	// the fully-named constructor is picked up by convention
	require.NotNil(t, cust.Creator)
	assert.Equal(t, "newPayment", cust.Creator.FuncName)
	require.Len(t, cust.Creator.Params, 2)
	assert.Equal(t, "amount", cust.Creator.Params[0].Name)

	// both concrete methods resolve the interface-declared discriminator
	card, err := ctx.Customization(reflect.TypeOf(cardPayment{}))
	require.NoError(t, err)
	require.NotNil(t, card.Polymorphism)
	assert.Equal(t, "method", card.Polymorphism.FieldName)
	alias, ok := card.Polymorphism.Alias(reflect.TypeOf(cardPayment{}))
	require.True(t, ok)
	assert.Equal(t, "card", alias)

	transfer, err := ctx.Customization(reflect.TypeOf(transferPayment{}))
	require.NoError(t, err)
	require.NotNil(t, transfer.Polymorphism)
	assert.Equal(t, card.Polymorphism.FieldName, transfer.Polymorphism.FieldName)

	expires, ok := card.Property("Expires")
	require.True(t, ok)
	formatter := expires.DateFormatters[meta.ScopeProperty]
	require.NotNil(t, formatter)
	assert.Equal(t, "01/2006", formatter.Format)
}
