// Package source defines input buffer used by parser.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is a named immutable input buffer.
// Line starts are computed once, so a Source may be shared between goroutines.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a source. content is not copied and must not be modified afterwards.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}

	return s
}

// FromString creates a source holding a copy of text.
func FromString(name, text string) *Source {
	return New(name, []byte(text))
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// Lines returns the number of lines, a source always has at least one line.
func (s *Source) Lines() int {
	return len(s.lineStarts)
}

// LineCol returns 1-based line and column numbers of byte offset pos.
// Columns count runes. pos is clamped to [0, Len()].
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := s.findLineIndex(pos)
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos returns byte offset for 1-based line and column numbers.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1]
	for ; col > 1 && res < l && s.content[res] != '\n'; col-- {
		_, size := utf8.DecodeRune(s.content[res:])
		res += size
	}
	return res
}

// Line returns content of 1-based line without line terminator ("\n" or "\r\n").
func (s *Source) Line(line int) []byte {
	if line <= 0 || line > len(s.lineStarts) {
		return nil
	}

	start := s.lineStarts[line-1]
	end := len(s.content)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	}
	if end > start && s.content[end-1] == '\r' {
		end--
	}
	return s.content[start:end]
}

func (s *Source) findLineIndex(pos int) int {
	return sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
}

// SourcePos returns position information for byte offset pos.
func (s *Source) SourcePos(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Pos holds position in a source.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
