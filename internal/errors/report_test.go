package errors

import (
	"errors"
	"testing"

	"github.com/mkdocstrings/griffe-sub003/internal/pos"
)

func TestNewLooksUpPhase(t *testing.T) {
	r := New(ALI002, "cycle detected", nil)
	if r.Phase != "alias" {
		t.Errorf("phase = %q, want %q", r.Phase, "alias")
	}
	if r.Schema != "griffe.error/v1" {
		t.Errorf("schema = %q", r.Schema)
	}
}

func TestWrapAndAsReport(t *testing.T) {
	r := New(FND001, "module not found: pkg.sub", &pos.Span{})
	err := WrapReport(r)

	got, ok := AsReport(err)
	if !ok {
		t.Fatal("AsReport should succeed on a wrapped Report")
	}
	if got.Code != FND001 {
		t.Errorf("code = %q, want %q", got.Code, FND001)
	}

	wrapped := fmtWrap(err)
	got2, ok := AsReport(wrapped)
	if !ok || got2.Code != FND001 {
		t.Error("AsReport should unwrap through errors.As chains")
	}
}

func fmtWrap(err error) error {
	return &wrapper{err}
}

type wrapper struct{ inner error }

func (w *wrapper) Error() string { return w.inner.Error() }
func (w *wrapper) Unwrap() error { return w.inner }

func TestAsReportFalseOnPlainError(t *testing.T) {
	_, ok := AsReport(errors.New("boom"))
	if ok {
		t.Error("AsReport should return false for a plain error")
	}
}

func TestWarnings(t *testing.T) {
	w := NewWarnings()
	w.Add(New(VIS001, "syntax error", nil))
	w.Add(New(VIS001, "another syntax error", nil))
	w.Add(New(ALI001, "dangling alias", nil))

	if w.Len() != 3 {
		t.Errorf("Len() = %d, want 3", w.Len())
	}
	counts := w.CountByPhase()
	if counts["visitor"] != 2 {
		t.Errorf("visitor count = %d, want 2", counts["visitor"])
	}
	if counts["alias"] != 1 {
		t.Errorf("alias count = %d, want 1", counts["alias"])
	}
}

func TestReportToJSON(t *testing.T) {
	r := New(DOC001, "malformed item", nil).WithData("line", 12).WithFix("add a description", 0.6)
	js, err := r.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if js == "" {
		t.Error("expected non-empty JSON")
	}
}
