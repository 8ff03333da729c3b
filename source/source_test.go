package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{-5, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"ab\nцж\nef": {
			{3, 2, 1},
			{5, 2, 2},
			{7, 2, 3},
			{8, 3, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			assert.Equal(t, res, result{res.pos, l, c}, "sample %q", text)
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		" ": {
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
		},
		"\n": {
			{0, 1, 1},
			{0, 1, 2},
			{1, 2, 1},
			{1, 2, 2},
			{1, 3, 1},
		},
		"hello\nwörld\n": {
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{9, 2, 3},
			{12, 2, 10},
			{13, 3, 1},
			{13, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			assert.Equal(t, res.pos, source.Pos(res.line, res.col), "sample %q, line %d col %d", text, res.line, res.col)
		}
	}
}

func TestSourceLine(t *testing.T) {
	s := FromString("name", "first\r\nsecond\n\nlast")
	assert.Equal(t, "name", s.Name())
	assert.Equal(t, 4, s.Lines())
	assert.Equal(t, "first", string(s.Line(1)))
	assert.Equal(t, "second", string(s.Line(2)))
	assert.Equal(t, "", string(s.Line(3)))
	assert.Equal(t, "last", string(s.Line(4)))
	assert.Nil(t, s.Line(0))
	assert.Nil(t, s.Line(5))
}

func TestSourcePosInfo(t *testing.T) {
	s := FromString("input", "a\nbc")
	p := s.SourcePos(3)
	assert.Equal(t, "input", p.SourceName())
	assert.Equal(t, 3, p.Pos())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Same(t, s, p.Source())

	assert.Equal(t, "", Pos{}.SourceName())
}
