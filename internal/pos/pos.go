// Package pos provides the source-position primitives shared by the
// Python lexer, parser, object model, and diagnostics. It has no
// dependencies of its own so that every other package in the loader can
// import it without risking an import cycle.
package pos

import "fmt"

// Pos is a 1-based line/column location in a single source file.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int // byte offset, used for lines-collection slicing
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.File == ""
}

// Span is a half-open [Start, End) range in source.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}
