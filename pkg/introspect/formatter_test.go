package introspect

import (
	"testing"
	"time"

	"github.com/example/jsonbind/pkg/meta"
)

func TestSentinelFormattersAreShared(t *testing.T) {
	cfg := DefaultConfig()
	if newDateFormatter(meta.DefaultFormat, "", cfg) != defaultDateFormatter {
		t.Error("the default sentinel should reuse the shared instance")
	}
	if newDateFormatter(meta.EpochMillis, "", cfg) != epochMillisDateFormatter {
		t.Error("the epoch-millis sentinel should reuse the shared instance")
	}
	if newDateFormatter(meta.DefaultFormat, "en", cfg) == defaultDateFormatter {
		t.Error("a locale-carrying formatter must not alias the shared instance")
	}
}

func TestDefaultFormatterLayout(t *testing.T) {
	if got := defaultDateFormatter.Layout(); got != time.RFC3339 {
		t.Errorf("default layout = %q, want RFC 3339", got)
	}
}

func TestEpochMillisRoundTrip(t *testing.T) {
	at := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)

	formatted := epochMillisDateFormatter.FormatTime(at)
	if formatted != "1700000000000" {
		t.Errorf("FormatTime = %q, want %q", formatted, "1700000000000")
	}

	parsed, err := epochMillisDateFormatter.ParseTime(formatted)
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	if !parsed.Equal(at) {
		t.Errorf("ParseTime = %v, want %v", parsed, at)
	}
}

func TestPatternFormatting(t *testing.T) {
	formatter := newDateFormatter("2006-01-02", "", DefaultConfig())
	at := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

	if got := formatter.FormatTime(at); got != "2024-03-09" {
		t.Errorf("FormatTime = %q, want %q", got, "2024-03-09")
	}
	parsed, err := formatter.ParseTime("2024-03-09")
	if err != nil || !parsed.Equal(at) {
		t.Errorf("ParseTime = %v, %v", parsed, err)
	}
}

func TestZeroTimeDefaulting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZeroTimeDefaulting = true
	formatter := newDateFormatter("2006-01-02T15:04:05", "", cfg)

	// a date-only value parses with the time fields left at zero
	parsed, err := formatter.ParseTime("2011-10-05")
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	want := time.Date(2011, time.October, 5, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("ParseTime = %v, want %v", parsed, want)
	}

	strict := newDateFormatter("2006-01-02T15:04:05", "", DefaultConfig())
	if _, err := strict.ParseTime("2011-10-05"); err == nil {
		t.Error("without the defaulting policy a partial value must not parse")
	}
}

func TestNumberFormatterScale(t *testing.T) {
	tests := []struct {
		format string
		want   int
	}{
		{"#0.00", 2},
		{"#0.0", 1},
		{"#0", -1},
		{"#,##0.000", 3},
	}
	for _, tt := range tests {
		f := &NumberFormatter{Format: tt.format}
		if got := f.Scale(); got != tt.want {
			t.Errorf("Scale(%q) = %d, want %d", tt.format, got, tt.want)
		}
	}
}

func TestNumberFormatterRendering(t *testing.T) {
	f := &NumberFormatter{Format: "#0.00"}
	if got := f.FormatNumber(10); got != "10.00" {
		t.Errorf("FormatNumber(10) = %q, want %q", got, "10.00")
	}
}
