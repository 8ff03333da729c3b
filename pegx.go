/*
Package pegx is a parsing expression grammar (PEG) interpreter.

Consists of subpackages:
  - grammar: immutable in-memory grammar representation (rule expressions and rule annotations);
  - parser: the matching engine interpreting a grammar against an input text;
  - tree: parse tree nodes holding rule names and byte spans into the input;
  - source: input buffer with line and column lookup;
  - grammars: ready-made JSON and TOML grammars;
  - cmd/pegx: console utility parsing files with bundled grammars.

Typical usage is:

1. Build a grammar using grammar package constructors (or take one from grammars).
A grammar does not contain Go code, the same grammar can be used for different purposes.

2. Create a parser for the grammar. A parser is immutable and may be shared between goroutines.

3. Parse inputs and walk resulting trees. Node spans reference the input, no text is copied.
*/
package pegx

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ava12/pegx/source"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by grammar and parser when the grammar cannot be used
	ParseErrors   = 101 // used by parser when an input does not match
)

// Error is the error type used by pegx subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// EndLine and EndCol contain position following the last character of an error span or 0.
	EndLine, EndCol int

	// Pos contains byte offset of the error in the input, parse errors only.
	Pos int

	// Expected contains descriptions of rules and terminals expected at Pos.
	Expected []string

	// Unexpected contains descriptions of expressions rejected by negative lookahead at Pos.
	Unexpected []string

	// Found contains the character found at Pos or empty string at the end of input.
	Found string

	// LineText contains the source line containing Pos, without line terminator.
	LineText string

	summary string
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and tree.Node implement this interface.
// If SourcePos also has method Source() *source.Source, the error gets the text of its source line.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

func lineText(pos SourcePos) string {
	sp, ok := pos.(interface{ Source() *source.Source })
	if !ok || sp.Source() == nil {
		return ""
	}
	return string(sp.Source().Line(pos.Line()))
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	e := &Error{Code: code, summary: msg, SourceName: name, Line: line, Col: col}
	e.Message = e.locate(msg)
	return e
}

func (e *Error) locate(msg string) string {
	if e.SourceName != "" && e.Line != 0 && e.Col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", e.SourceName, e.Line, e.Col)
	}
	return msg
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns error class (one of GrammarErrors, ParseErrors) of error code.
func (e *Error) Class() int {
	return (e.Code-1)/100*100 + 1
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	e := NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
	e.LineText = lineText(pos)
	return e
}

// FormatErrorSpan creates Error structure covering source text from start to end.
// end is the position following the last character of the span.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorSpan(start, end SourcePos, code int, msg string, params ...any) *Error {
	e := FormatErrorPos(start, code, msg, params...)
	e.EndLine, e.EndCol = end.Line(), end.Col()
	return e
}

// IsInvalidGrammar reports whether e is an *Error of GrammarErrors class.
func IsInvalidGrammar(e error) bool {
	return hasClass(e, GrammarErrors)
}

// IsParseError reports whether e is an *Error of ParseErrors class.
func IsParseError(e error) bool {
	return hasClass(e, ParseErrors)
}

func hasClass(e error, class int) bool {
	pe, is := e.(*Error)
	return is && pe != nil && pe.Class() == class
}

// ExpectationMessage builds error summary from expected and unexpected descriptions:
// "unexpected a or b; expected c, d, or e".
func ExpectationMessage(expected, unexpected []string) string {
	switch {
	case len(unexpected) > 0 && len(expected) > 0:
		return "unexpected " + enumerate(unexpected) + "; expected " + enumerate(expected)
	case len(unexpected) > 0:
		return "unexpected " + enumerate(unexpected)
	case len(expected) > 0:
		return "expected " + enumerate(expected)
	default:
		return "unknown parsing error"
	}
}

func enumerate(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}

// NewExpectationError creates parse error with expectation lists.
// Message is built by ExpectationMessage, found is stored in Found only.
func NewExpectationError(code int, pos SourcePos, offset int, found string, expected, unexpected []string) *Error {
	e := &Error{
		Code:       code,
		SourceName: pos.SourceName(),
		Line:       pos.Line(),
		Col:        pos.Col(),
		Pos:        offset,
		Found:      found,
		Expected:   expected,
		Unexpected: unexpected,
		LineText:   lineText(pos),
	}
	e.summary = ExpectationMessage(expected, unexpected)
	e.Message = e.locate(e.summary)
	return e
}

// Renamed returns a copy of parse error with every expected and unexpected description
// replaced with f(description). Message is rebuilt accordingly.
// Errors without expectation lists are returned as is.
func (e *Error) Renamed(f func(string) string) *Error {
	if len(e.Expected) == 0 && len(e.Unexpected) == 0 {
		return e
	}

	result := *e
	result.Expected = rename(e.Expected, f)
	result.Unexpected = rename(e.Unexpected, f)
	result.summary = ExpectationMessage(result.Expected, result.Unexpected)
	result.Message = result.locate(result.summary)
	return &result
}

func rename(items []string, f func(string) string) []string {
	if items == nil {
		return nil
	}

	result := make([]string, len(items))
	for i, item := range items {
		result[i] = f(item)
	}
	return result
}

// Pretty renders the error as a source snippet:
//
//	 --> 2:2
//	  |
//	2 | cd
//	  |  ^---
//	  |
//	  = expected a or b
//
// A span error is underlined as ^--^ up to its end or up to the end of its first line.
// Errors without position information are rendered as their messages.
func (e *Error) Pretty() string {
	summary := e.summary
	if summary == "" {
		summary = e.Message
	}
	if e.Line == 0 || e.Col == 0 {
		return summary
	}

	lineNum := fmt.Sprintf("%d", e.Line)
	spacing := strings.Repeat(" ", len(lineNum))
	location := fmt.Sprintf("%d:%d", e.Line, e.Col)
	if e.SourceName != "" {
		location = e.SourceName + ":" + location
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s--> %s\n", spacing, location)
	fmt.Fprintf(&b, "%s |\n", spacing)
	fmt.Fprintf(&b, "%s | %s\n", lineNum, e.LineText)
	fmt.Fprintf(&b, "%s | %s%s\n", spacing, strings.Repeat(" ", e.Col-1), e.underline())
	fmt.Fprintf(&b, "%s |\n", spacing)
	fmt.Fprintf(&b, "%s = %s", spacing, summary)
	return b.String()
}

func (e *Error) underline() string {
	if e.EndLine == 0 {
		return "^---"
	}

	width := e.EndCol - e.Col
	if e.EndLine != e.Line {
		width = utf8.RuneCountInString(e.LineText) - e.Col + 1
	}
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("-", width-2) + "^"
}
