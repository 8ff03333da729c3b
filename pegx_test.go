package pegx_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/source"
	"github.com/ava12/pegx/tree"
)

const incompleteCode = pegx.ParseErrors + 1

func snippet(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestExpectationMessages(t *testing.T) {
	pos := source.FromString("", "ab\ncd\nef").SourcePos(4)
	samples := []struct {
		expected, unexpected []string
		summary              string
	}{
		{[]string{"1", "2", "3"}, []string{"4", "5", "6"}, "unexpected 4, 5, or 6; expected 1, 2, or 3"},
		{[]string{"1", "2"}, nil, "expected 1 or 2"},
		{nil, []string{"4", "5", "6"}, "unexpected 4, 5, or 6"},
		{nil, []string{"4"}, "unexpected 4"},
		{nil, nil, "unknown parsing error"},
	}

	for i, s := range samples {
		e := pegx.NewExpectationError(incompleteCode, pos, 4, "c", s.expected, s.unexpected)
		assert.Equal(t, s.summary, e.Error(), "sample #%d", i)
		assert.Equal(t, "cd", e.LineText, "sample #%d", i)
		assert.Equal(t, snippet(
			" --> 2:2",
			"  |",
			"2 | cd",
			"  |  ^---",
			"  |",
			"  = "+s.summary,
		), e.Pretty(), "sample #%d", i)
	}
}

func TestRenamed(t *testing.T) {
	pos := source.FromString("input", "ab\ncd\nef").SourcePos(4)
	e := pegx.NewExpectationError(incompleteCode, pos, 4, "c", []string{"1", "2", "3"}, []string{"4", "5", "6"})
	renamed := e.Renamed(func(s string) string {
		n, _ := strconv.Atoi(s)
		return strconv.Itoa(n + 1)
	})

	assert.Equal(t, snippet(
		" --> input:2:2",
		"  |",
		"2 | cd",
		"  |  ^---",
		"  |",
		"  = unexpected 5, 6, or 7; expected 2, 3, or 4",
	), renamed.Pretty())
	assert.Equal(t, "unexpected 5, 6, or 7; expected 2, 3, or 4 in input at line 2 col 2", renamed.Error())
	assert.Equal(t, []string{"1", "2", "3"}, e.Expected)
	assert.Equal(t, incompleteCode, renamed.Code)
	assert.Equal(t, 4, renamed.Pos)

	custom := pegx.FormatError(pegx.GrammarErrors, "bad rule")
	assert.Same(t, custom, custom.Renamed(strings.ToUpper))
}

func TestCustomErrors(t *testing.T) {
	src := source.FromString("", "ab\ncd\nef")
	e := pegx.FormatErrorPos(src.SourcePos(4), 301, "error: %s", "big one")
	assert.Equal(t, snippet(
		" --> 2:2",
		"  |",
		"2 | cd",
		"  |  ^---",
		"  |",
		"  = error: big one",
	), e.Pretty())

	e = pegx.FormatError(301, "no position")
	assert.Equal(t, "no position", e.Pretty())
	assert.Equal(t, "", e.LineText)
}

func TestSpanErrors(t *testing.T) {
	src := source.FromString("conf", "x = 1\nfunc f(ab, ab) ab\n")
	samples := []struct {
		start, end int
		underline  string
	}{
		{17, 19, "  |            ^^"},
		{6, 10, "  | ^--^"},
		{12, 12, "  |       ^"},
		{13, 14, "  |        ^"},
		{21, 24, "  |                ^^"},
	}

	for i, s := range samples {
		e := pegx.FormatErrorSpan(src.SourcePos(s.start), src.SourcePos(s.end), 301, "span")
		lines := strings.Split(e.Pretty(), "\n")
		if assert.Len(t, lines, 6, "sample #%d", i) {
			assert.Equal(t, "2 | func f(ab, ab) ab", lines[2], "sample #%d", i)
			assert.Equal(t, s.underline, lines[3], "sample #%d", i)
		}
	}

	n := tree.NewNode(src, "name", 17, 19, nil)
	e := pegx.FormatErrorSpan(n, n.EndPos(), 301, "argument %s already defined", n.Text())
	assert.Equal(t, snippet(
		" --> conf:2:12",
		"  |",
		"2 | func f(ab, ab) ab",
		"  |            ^^",
		"  |",
		"  = argument ab already defined",
	), e.Pretty())
	assert.Equal(t, 2, e.EndLine)
	assert.Equal(t, 14, e.EndCol)
}

func TestErrorClasses(t *testing.T) {
	assert.True(t, pegx.IsInvalidGrammar(pegx.FormatError(pegx.GrammarErrors+5, "x")))
	assert.False(t, pegx.IsParseError(pegx.FormatError(pegx.GrammarErrors, "x")))
	assert.True(t, pegx.IsParseError(pegx.FormatError(incompleteCode, "x")))
	assert.False(t, pegx.IsParseError(nil))
	assert.Equal(t, pegx.ParseErrors, pegx.FormatError(199, "x").Class())
}
