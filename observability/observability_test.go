package observability

import (
	"context"
	"errors"
	"testing"
)

func TestFieldConstructors(t *testing.T) {
	cases := []struct {
		f    Field
		key  string
		want interface{}
	}{
		{String("doc", "acceptance"), "doc", "acceptance"},
		{Int("objects", 9), "objects", 9},
		{Int64("bytes", 4096), "bytes", int64(4096)},
	}
	for _, c := range cases {
		if c.f.Key() != c.key {
			t.Fatalf("key = %q, want %q", c.f.Key(), c.key)
		}
		if c.f.Value() != c.want {
			t.Fatalf("value = %v, want %v", c.f.Value(), c.want)
		}
	}

	err := errors.New("boom")
	f := Error("err", err)
	if f.Key() != "err" || f.Value() != err {
		t.Fatalf("error field mismatch: %q %v", f.Key(), f.Value())
	}
}

func TestNopLoggerIsSilentAndChainable(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("a")
	l.Info("b", String("k", "v"))
	l.Warn("c")
	l.Error("d", Error("err", errors.New("x")))
	if got := l.With(Int("n", 1)); got == nil {
		t.Fatal("With returned nil")
	}
}

func TestNopTracer(t *testing.T) {
	ctx, span := NopTracer().StartSpan(context.Background(), "compose")
	if ctx == nil || span == nil {
		t.Fatal("nop tracer returned nils")
	}
	span.SetTag("kind", "acceptance")
	span.SetError(errors.New("x"))
	span.Finish()
}
