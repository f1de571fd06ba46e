package observability

import (
	"errors"
	"testing"
)

func TestFields(t *testing.T) {
	err := errors.New("boom")
	cases := []struct {
		field Field
		key   string
		value interface{}
	}{
		{String("lang", "zh-Hant"), "lang", "zh-Hant"},
		{Int("pages", 3), "pages", 3},
		{Int64("bytes", 1024), "bytes", int64(1024)},
		{Float64("height", 841.89), "height", 841.89},
		{Error("err", err), "err", err},
	}
	for _, c := range cases {
		if c.field.Key() != c.key {
			t.Errorf("Key() = %q, want %q", c.field.Key(), c.key)
		}
		if c.field.Value() != c.value {
			t.Errorf("Value() = %v, want %v", c.field.Value(), c.value)
		}
	}
}

func TestNopLoggerWith(t *testing.T) {
	var l Logger = NopLogger{}
	l = l.With(String("component", "layout"))
	if l == nil {
		t.Fatal("With returned nil logger")
	}
	l.Debug("ignored")
	l.Info("ignored")
	l.Warn("ignored")
	l.Error("ignored")
}
