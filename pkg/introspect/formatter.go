package introspect

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/example/jsonbind/pkg/meta"
)

// DateFormatter is the compiled form of a date-format tag: either one of
// the sentinel formats or a concrete Go time layout.
type DateFormatter struct {
	// Format is the raw tag value: a Go layout or a meta sentinel.
	Format string
	// Locale is a BCP 47 tag; empty means undetermined.
	Locale string
	// zeroTimeDefaulting tolerates layouts with missing time fields when
	// parsing, leaving them at zero.
	zeroTimeDefaulting bool
}

// Singleton formatters for the sentinel formats. Tags carrying no locale
// resolve to these shared instances.
var (
	defaultDateFormatter     = &DateFormatter{Format: meta.DefaultFormat}
	epochMillisDateFormatter = &DateFormatter{Format: meta.EpochMillis}
)

// IsDefault reports the library default format (RFC 3339).
func (f *DateFormatter) IsDefault() bool { return f.Format == meta.DefaultFormat }

// IsEpochMillis reports the milliseconds-since-epoch format.
func (f *DateFormatter) IsEpochMillis() bool { return f.Format == meta.EpochMillis }

// Layout returns the Go time layout backing this formatter.
func (f *DateFormatter) Layout() string {
	if f.IsDefault() {
		return time.RFC3339
	}
	return f.Format
}

// FormatTime renders a time in the compiled format.
func (f *DateFormatter) FormatTime(t time.Time) string {
	if f.IsEpochMillis() {
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return t.Format(f.Layout())
}

// ParseTime reads a time in the compiled format.
func (f *DateFormatter) ParseTime(value string) (time.Time, error) {
	if f.IsEpochMillis() {
		millis, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(millis).UTC(), nil
	}
	t, err := time.Parse(f.Layout(), value)
	if err != nil && f.zeroTimeDefaulting {
		// retry with the date-only prefix of the layout
		if layout, _, ok := strings.Cut(f.Layout(), "T"); ok {
			return time.Parse(layout, value)
		}
	}
	return t, err
}

// newDateFormatter compiles a date-format tag, reusing the sentinel
// singletons when possible.
func newDateFormatter(format, locale string, cfg Config) *DateFormatter {
	if locale == "" {
		switch format {
		case meta.DefaultFormat:
			return defaultDateFormatter
		case meta.EpochMillis:
			return epochMillisDateFormatter
		}
	}
	return &DateFormatter{
		Format:             format,
		Locale:             locale,
		zeroTimeDefaulting: cfg.ZeroTimeDefaulting,
	}
}

// propertyDateFormatter compiles a date-format tag declared for a property,
// validating that pattern formats only apply to temporal types.
func propertyDateFormatter(tag meta.DateFormatTag, propertyType reflect.Type, cfg Config) (*DateFormatter, error) {
	if tag.Format != meta.DefaultFormat && tag.Format != meta.EpochMillis {
		raw := concreteType(propertyType)
		if raw != nil && raw.Kind() != reflect.Interface && !isTemporal(raw) {
			return nil, &UnsupportedDateTypeError{Type: raw}
		}
	}
	return newDateFormatter(tag.Format, tag.Locale, cfg), nil
}

// NumberFormatter is the compiled form of a number-format tag. The pattern
// uses '#'/'0' placeholders; the fractional part fixes the rendered scale.
type NumberFormatter struct {
	Format string
	Locale string
}

// Scale returns the number of fractional digits fixed by the pattern, or -1
// when the pattern leaves the scale open.
func (f *NumberFormatter) Scale() int {
	_, frac, ok := strings.Cut(f.Format, ".")
	if !ok {
		return -1
	}
	return len(frac)
}

// FormatNumber renders a number in the compiled pattern and locale.
func (f *NumberFormatter) FormatNumber(v float64) string {
	printer := message.NewPrinter(language.Make(f.Locale))
	if scale := f.Scale(); scale >= 0 {
		return printer.Sprint(number.Decimal(v, number.Scale(scale)))
	}
	return printer.Sprint(number.Decimal(v))
}

func newNumberFormatter(tag meta.NumberFormatTag) *NumberFormatter {
	return &NumberFormatter{Format: tag.Format, Locale: tag.Locale}
}
