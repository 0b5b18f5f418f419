package errors

import (
	"encoding/json"
	"errors"

	"github.com/mkdocstrings/griffe-sub003/internal/pos"
)

// Report is the canonical structured error type for griffe-go. All
// error builders return *Report, which can be wrapped as a ReportError
// so it survives errors.As() unwrapping at call sites that only see an
// `error`.
type Report struct {
	Schema  string         `json:"schema"` // Always "griffe.error/v1"
	Code    string         `json:"code"`   // Error code (FND001, ALI002, ...)
	Phase   string         `json:"phase"`  // "finder", "visitor", "alias", "docstring", ...
	Message string         `json:"message"`
	Span    *pos.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// Fix is an optional suggested remediation attached to a Report.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// ReportError wraps a Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error. Callers should return
// errors.WrapReport(report) rather than constructing ReportError
// directly so the wrapping stays centralized.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report for the given code/phase/message, looking up the
// phase from the code registry when known.
func New(code, message string, span *pos.Span) *Report {
	phase := "unknown"
	if info, ok := GetErrorInfo(code); ok {
		phase = info.Phase
	}
	return &Report{
		Schema:  "griffe.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    span,
		Data:    map[string]any{},
	}
}

// WithData attaches a structured data key/value and returns the Report
// for chaining.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// WithFix attaches a suggested fix and returns the Report for chaining.
func (r *Report) WithFix(suggestion string, confidence float64) *Report {
	r.Fix = &Fix{Suggestion: suggestion, Confidence: confidence}
	return r
}

// ToJSON converts a Report to JSON with deterministic key order.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
