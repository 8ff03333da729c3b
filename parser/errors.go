package parser

import (
	"unicode/utf8"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/source"
)

// Error codes returned by parser.
const (
	// nothing matched at the start of input
	NoMatchError = pegx.ParseErrors + iota
	// input does not match past some position
	IncompleteParseError
	// rule nesting exceeded parser depth limit
	RecursionLimitError
)

func recursionLimitError(src *source.Source, pos, limit int, rule string) *pegx.Error {
	e := pegx.FormatErrorPos(src.SourcePos(pos), RecursionLimitError,
		"recursion limit %d exceeded in rule %q", limit, rule)
	e.Pos = pos
	return e
}

func expectationError(src *source.Source, t *tracker) *pegx.Error {
	pos := t.furthest
	code := IncompleteParseError
	if pos == 0 {
		code = NoMatchError
	}

	content := src.Content()
	found := ""
	if pos < len(content) {
		r, _ := utf8.DecodeRune(content[pos:])
		found = string(r)
	}

	sp := src.SourcePos(pos)
	expected, unexpected := t.lists()
	return pegx.NewExpectationError(code, sp, pos, found, expected, unexpected)
}
