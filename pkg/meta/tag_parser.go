package meta

import (
	"reflect"
	"strings"
)

// Struct tag namespaces read by the parser.
const (
	tagJSON   = "json"
	tagJSONB  = "jsonb"
	tagGetter = "getter"
	tagSetter = "setter"
)

// FieldTags holds the tags parsed from one struct field, split by the
// property representation they apply to.
type FieldTags struct {
	Slot   []Tag
	Getter []Tag
	Setter []Tag
}

// ParseFieldTags reads the `json`, `jsonb`, `getter` and `setter` struct tag
// namespaces of a field. The `json` and `jsonb` namespaces annotate the
// storage slot; `getter` and `setter` annotate the matching accessor.
func ParseFieldTags(field reflect.StructField) FieldTags {
	var tags FieldTags
	if raw, ok := field.Tag.Lookup(tagJSON); ok {
		tags.Slot = append(tags.Slot, parseJSONTag(raw)...)
	}
	if raw, ok := field.Tag.Lookup(tagJSONB); ok {
		tags.Slot = append(tags.Slot, ParseExtendedTag(raw)...)
	}
	if raw, ok := field.Tag.Lookup(tagGetter); ok {
		tags.Getter = append(tags.Getter, ParseExtendedTag(raw)...)
	}
	if raw, ok := field.Tag.Lookup(tagSetter); ok {
		tags.Setter = append(tags.Setter, ParseExtendedTag(raw)...)
	}
	return tags
}

// parseJSONTag parses the standard `json` namespace. The first item is the
// name ("-" marks the field transient); the `nillable` option sets the
// deprecated per-name nillable flag. Other options (omitempty, string) do
// not concern introspection and are skipped.
func parseJSONTag(tag string) []Tag {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	if name == "-" && len(parts) == 1 {
		return []Tag{TransientTag{}}
	}
	nameTag := NameTag{Value: name}
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "nillable" {
			v := true
			nameTag.Nillable = &v
		}
	}
	if nameTag.Value == "" && nameTag.Nillable == nil {
		return nil
	}
	return []Tag{nameTag}
}

// ParseExtendedTag parses a value of the `jsonb`, `getter` or `setter`
// namespace like `name=id,nillable=false` or `dateformat=2006-01-02`.
// Items are comma-separated key=value pairs; bare keys are flags.
// Recognised keys: name, nillable, transient, dateformat, datelocale,
// numberformat, numberlocale, adapter, serializer, deserializer, impl.
// Unrecognised items are skipped.
func ParseExtendedTag(tag string) []Tag {
	if tag == "" {
		return nil
	}
	var (
		out          []Tag
		dateFormat   DateFormatTag
		hasDate      bool
		numberFormat NumberFormatTag
		hasNumber    bool
	)
	for _, p := range strings.Split(tag, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key, val := p, ""
		if kv := strings.SplitN(p, "=", 2); len(kv) == 2 {
			key = strings.TrimSpace(kv[0])
			val = strings.TrimSpace(kv[1])
		}
		switch key {
		case "name":
			out = append(out, NameTag{Value: val})
		case "nillable":
			out = append(out, NillableTag{Value: val != "false"})
		case "transient":
			out = append(out, TransientTag{})
		case "dateformat":
			dateFormat.Format = val
			hasDate = true
		case "datelocale":
			dateFormat.Locale = val
			hasDate = true
		case "numberformat":
			numberFormat.Format = val
			hasNumber = true
		case "numberlocale":
			numberFormat.Locale = val
			hasNumber = true
		case "adapter":
			out = append(out, AdapterTag{Name: val})
		case "serializer":
			out = append(out, SerializerTag{Name: val})
		case "deserializer":
			out = append(out, DeserializerTag{Name: val})
		case "impl":
			out = append(out, ImplementationTag{Name: val})
		}
	}
	if hasDate {
		if dateFormat.Format == "" {
			dateFormat.Format = DefaultFormat
		}
		out = append(out, dateFormat)
	}
	if hasNumber {
		out = append(out, numberFormat)
	}
	return out
}
