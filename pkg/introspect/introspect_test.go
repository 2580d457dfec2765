package introspect

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/jsonbind/pkg/meta"
	"github.com/example/jsonbind/pkg/naming"
	"github.com/example/jsonbind/pkg/registry"
)

type profile struct {
	DisplayName string `json:"display_name" getter:"name=shownName"`
	Email       string `json:"email,nillable" jsonb:"nillable=false"`
	Secret      string `json:"-"`
	hidden      string
}

type account struct {
	Balance int
	Owner   string
}

func (a account) GetBalance() int     { return a.Balance }
func (a *account) SetOwner(v string)  { a.Owner = v }
func (a *account) SetBalance(v int)   { a.Balance = v }
func (a account) GetOwner() string    { return a.Owner }
func (a account) GetMissing() float64 { return 0 }

type maybeInt struct {
	Value int
	Valid bool
}

type conflicted struct {
	Stamp string `jsonb:"transient,dateformat=2006-01-02"`
}

func mustCustomization(t *testing.T, ctx *Context, v any) *ClassCustomization {
	t.Helper()
	cust, err := ctx.Customization(reflect.TypeOf(v))
	if err != nil {
		t.Fatalf("Customization(%T): %v", v, err)
	}
	return cust
}

func mustProperty(t *testing.T, cust *ClassCustomization, name string) *PropertyCustomization {
	t.Helper()
	p, ok := cust.Property(name)
	if !ok {
		t.Fatalf("property %s not resolved on %s", name, cust.Type)
	}
	return p
}

func TestPropertyNamePrecedence(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	cust := mustCustomization(t, ctx, profile{})

	display := mustProperty(t, cust, "DisplayName")
	if display.SerializedName != "shownName" {
		t.Errorf("serialized name = %q, want getter override %q", display.SerializedName, "shownName")
	}
	if display.DeserializedName != "display_name" {
		t.Errorf("deserialized name = %q, want slot name %q", display.DeserializedName, "display_name")
	}
}

func TestNamingStrategyFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NamingStrategy = naming.LowerSnakeCase
	ctx := NewContext(cfg, nil, nil)
	cust := mustCustomization(t, ctx, account{})

	balance := mustProperty(t, cust, "Balance")
	if balance.SerializedName != "balance" {
		t.Errorf("serialized name = %q, want %q", balance.SerializedName, "balance")
	}
	if balance.DeserializedName != "balance" {
		t.Errorf("deserialized name = %q, want %q", balance.DeserializedName, "balance")
	}
}

func TestNillableCascade(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	cust := mustCustomization(t, ctx, profile{})

	// the explicit nillable tag beats the deprecated flag on the name tag
	email := mustProperty(t, cust, "Email")
	if email.Nillable {
		t.Error("explicit nillable=false should beat the deprecated nillable flag")
	}

	// no property-level declaration falls through to the class default
	display := mustProperty(t, cust, "DisplayName")
	if display.Nillable {
		t.Error("property without nillable declarations should inherit the class default false")
	}
}

func TestClassNillableDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nillable = true
	ctx := NewContext(cfg, nil, nil)

	cust := mustCustomization(t, ctx, account{})
	if !cust.Nillable {
		t.Error("class should pick up the configured nillable default")
	}
	owner := mustProperty(t, cust, "Owner")
	if !owner.Nillable {
		t.Error("property should inherit the class nillable default")
	}
}

func TestOptionalLikeTypesDefaultNillable(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	cust := mustCustomization(t, ctx, maybeInt{})
	if !cust.Nillable {
		t.Error("a Valid-carrying struct should default to nillable")
	}
}

func TestTransientProperty(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	cust := mustCustomization(t, ctx, profile{})

	secret := mustProperty(t, cust, "Secret")
	if !secret.Transient {
		t.Error(`json:"-" should mark the property transient`)
	}
	if secret.SerializedName != "" || secret.DeserializedName != "" {
		t.Error("transient properties carry no resolved names")
	}

	if _, ok := cust.Property("hidden"); ok {
		t.Error("unexported fields should not become properties")
	}
}

func TestTransientConflict(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	_, err := ctx.Customization(reflect.TypeOf(conflicted{}))

	var conflict *TransientConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want TransientConflictError", err)
	}
	if conflict.Kind != meta.KindDateFormat {
		t.Errorf("conflicting kind = %s, want dateformat", conflict.Kind)
	}
	if !errors.Is(err, ErrBinding) {
		t.Error("transient conflict should belong to the binding error family")
	}
}

func TestAccessorDiscovery(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	cust := mustCustomization(t, ctx, account{})

	balance := mustProperty(t, cust, "Balance")
	if balance.Property.Getter() == nil {
		t.Error("GetBalance should be discovered as the read accessor")
	}
	if balance.Property.Setter() == nil {
		t.Error("SetBalance should be discovered as the write accessor")
	}

	owner := mustProperty(t, cust, "Owner")
	if owner.Property.Getter() == nil || owner.Property.Setter() == nil {
		t.Error("Owner accessors should both be discovered")
	}
}

func TestFieldsOnlyVisibility(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Visibility = FieldsOnly{}
	ctx := NewContext(cfg, nil, nil)
	cust := mustCustomization(t, ctx, account{})

	balance := mustProperty(t, cust, "Balance")
	if balance.Property.Getter() != nil || balance.Property.Setter() != nil {
		t.Error("FieldsOnly should suppress accessor methods")
	}
}

func TestClassVisibilityTag(t *testing.T) {
	reg := registry.New()
	reg.RegisterType(account{}, meta.VisibilityTag{Strategy: FieldsOnly{}})
	ctx := NewContext(DefaultConfig(), reg, nil)

	cust := mustCustomization(t, ctx, account{})
	if _, ok := cust.Visibility.(FieldsOnly); !ok {
		t.Fatalf("visibility = %T, want FieldsOnly", cust.Visibility)
	}
	balance := mustProperty(t, cust, "Balance")
	if balance.Property.Getter() != nil {
		t.Error("class-level visibility tag should suppress accessor methods")
	}
}

func TestAccessorRegistryTags(t *testing.T) {
	reg := registry.New()
	reg.TagAccessor(account{}, "Owner", meta.ScopeSetter, meta.NameTag{Value: "owner_name"})
	ctx := NewContext(DefaultConfig(), reg, nil)

	cust := mustCustomization(t, ctx, account{})
	owner := mustProperty(t, cust, "Owner")
	if owner.DeserializedName != "owner_name" {
		t.Errorf("deserialized name = %q, want setter override %q", owner.DeserializedName, "owner_name")
	}
	if owner.SerializedName != "Owner" {
		t.Errorf("serialized name = %q, want untranslated %q", owner.SerializedName, "Owner")
	}
}

type ordered struct {
	Alpha string
	Beta  string
	Gamma string
}

func TestPropertyOrder(t *testing.T) {
	reg := registry.New()
	reg.RegisterType(ordered{}, meta.PropertyOrderTag{Order: []string{"Gamma", "Alpha"}})
	ctx := NewContext(DefaultConfig(), reg, nil)

	cust := mustCustomization(t, ctx, ordered{})
	props := cust.OrderedProperties()
	got := make([]string, len(props))
	for i, p := range props {
		got[i] = p.Property.Name()
	}
	want := []string{"Gamma", "Alpha", "Beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ordered properties = %v, want %v", got, want)
	}
}

type invoice struct {
	Issued time.Time `jsonb:"dateformat=##time-in-millis"`
	Due    time.Time
	Ref    string
}

func TestDateFormatResolution(t *testing.T) {
	reg := registry.New()
	reg.RegisterType(invoice{}, meta.DateFormatTag{Format: "2006-01-02"})
	ctx := NewContext(DefaultConfig(), reg, nil)

	cust := mustCustomization(t, ctx, invoice{})
	if cust.DateFormatter.Format != "2006-01-02" {
		t.Errorf("class date format = %q, want %q", cust.DateFormatter.Format, "2006-01-02")
	}

	issued := mustProperty(t, cust, "Issued")
	formatter, ok := issued.DateFormatters[meta.ScopeProperty]
	if !ok || !formatter.IsEpochMillis() {
		t.Error("Issued should carry the epoch-millis property formatter")
	}
	if _, ok := issued.DateFormatters[meta.ScopeClass]; ok {
		t.Error("a property-level tag should suppress the class contribution")
	}

	// temporal properties never inherit the class formatter
	due := mustProperty(t, cust, "Due")
	if len(due.DateFormatters) != 0 {
		t.Errorf("Due formatters = %v, want none", due.DateFormatters)
	}

	// non-temporal properties record the class contribution
	ref := mustProperty(t, cust, "Ref")
	classFormatter, ok := ref.DateFormatters[meta.ScopeClass]
	if !ok || classFormatter.Format != "2006-01-02" {
		t.Errorf("Ref class formatter = %v, want the class pattern", ref.DateFormatters)
	}
}

type badDates struct {
	Stamp string `jsonb:"dateformat=2006-01-02"`
}

func TestPatternDateFormatOnNonTemporalType(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	_, err := ctx.Customization(reflect.TypeOf(badDates{}))

	var unsupported *UnsupportedDateTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want UnsupportedDateTypeError", err)
	}
	if errors.Is(err, ErrBinding) {
		t.Error("unsupported date type is not part of the binding error family")
	}
}

type pricing struct {
	Amount float64 `jsonb:"numberformat=#0.00,numberlocale=en"`
	Tax    float64
}

func TestNumberFormatResolution(t *testing.T) {
	reg := registry.New()
	reg.RegisterType(pricing{}, meta.NumberFormatTag{Format: "#0.0"})
	ctx := NewContext(DefaultConfig(), reg, nil)

	cust := mustCustomization(t, ctx, pricing{})
	if cust.NumberFormatter == nil || cust.NumberFormatter.Format != "#0.0" {
		t.Fatalf("class number formatter = %v, want #0.0", cust.NumberFormatter)
	}

	amount := mustProperty(t, cust, "Amount")
	own, ok := amount.NumberFormatters[meta.ScopeProperty]
	if !ok || own.Format != "#0.00" || own.Locale != "en" {
		t.Errorf("Amount property formatter = %v", amount.NumberFormatters)
	}
	// the class contribution is always recorded alongside
	if _, ok := amount.NumberFormatters[meta.ScopeClass]; !ok {
		t.Error("class number formatter should be recorded for the property")
	}

	tax := mustProperty(t, cust, "Tax")
	if _, ok := tax.NumberFormatters[meta.ScopeClass]; !ok {
		t.Error("untagged property should still record the class number formatter")
	}
}

type notifier interface {
	Notify()
}

type emailNotifier struct{}

func (emailNotifier) Notify() {}

type alertConfig struct {
	Sink notifier `jsonb:"impl=email"`
}

func TestImplementationResolution(t *testing.T) {
	reg := registry.New()
	if err := reg.RegisterTypeName("email", emailNotifier{}); err != nil {
		t.Fatalf("RegisterTypeName: %v", err)
	}
	ctx := NewContext(DefaultConfig(), reg, nil)

	cust := mustCustomization(t, ctx, alertConfig{})
	sink := mustProperty(t, cust, "Sink")
	if sink.Implementation != reflect.TypeOf(emailNotifier{}) {
		t.Errorf("implementation = %v, want emailNotifier", sink.Implementation)
	}
}

func TestImplementationUnknownName(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)
	_, err := ctx.Customization(reflect.TypeOf(alertConfig{}))
	if !errors.Is(err, ErrBinding) {
		t.Fatalf("err = %v, want a binding error for the unregistered type name", err)
	}
}

func TestCustomizationCaching(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)

	first := mustCustomization(t, ctx, profile{})
	second := mustCustomization(t, ctx, profile{})
	if first != second {
		t.Error("repeated resolution should return the cached descriptor")
	}

	viaPointer, err := ctx.Customization(reflect.TypeOf(&profile{}))
	if err != nil {
		t.Fatalf("Customization(*profile): %v", err)
	}
	if viaPointer != first {
		t.Error("pointer types should resolve to the element type's descriptor")
	}
}

func TestErrorCaching(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)

	_, first := ctx.Customization(reflect.TypeOf(conflicted{}))
	_, second := ctx.Customization(reflect.TypeOf(conflicted{}))
	if first == nil || second == nil {
		t.Fatal("both resolutions should fail")
	}
	if first != second {
		t.Error("the same cached error should be returned on re-resolution")
	}
}

func TestBuiltinTypeCustomization(t *testing.T) {
	ctx := NewContext(DefaultConfig(), nil, nil)

	cust, err := ctx.Customization(reflect.TypeOf(time.Time{}))
	if err != nil {
		t.Fatalf("Customization(time.Time): %v", err)
	}
	if len(cust.Properties) != 0 {
		t.Error("built-in types should resolve without properties")
	}
}
