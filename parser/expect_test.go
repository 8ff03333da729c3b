package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerDropsStale(t *testing.T) {
	tr := newTracker()
	tr.terminal(3, `"a"`)
	tr.terminal(1, `"b"`)
	tr.terminal(3, `"c"`)
	tr.terminal(3, `"a"`)
	tr.negative(3, `"d"`)

	expected, unexpected := tr.lists()
	assert.Equal(t, 3, tr.furthest)
	assert.Equal(t, []string{`"a"`, `"c"`}, expected)
	assert.Equal(t, []string{`"d"`}, unexpected)

	tr.terminal(5, `"e"`)
	expected, unexpected = tr.lists()
	assert.Equal(t, []string{`"e"`}, expected)
	assert.Nil(t, unexpected)
}

func TestTrackerMuted(t *testing.T) {
	tr := newTracker()
	tr.mute()
	tr.terminal(2, `"a"`)
	assert.False(t, tr.wants(2))
	tr.unmute()

	assert.True(t, tr.wants(0))
	assert.Equal(t, 0, tr.furthest)
	expected, _ := tr.lists()
	assert.Empty(t, expected)
}

func TestTrackerInnermostRule(t *testing.T) {
	tr := newTracker()
	tr.terminal(1, `"x"`)

	outer := tr.mark()
	inner := tr.mark()
	tr.terminal(1, `"a"`)
	tr.terminal(1, `"b"`)
	tr.ruleFailed(1, "inner", inner)
	tr.terminal(1, `"c"`)
	tr.ruleFailed(1, "outer", outer)

	expected, _ := tr.lists()
	assert.Equal(t, []string{`"x"`, "inner", `"c"`}, expected)
}

func TestTrackerRuleReplacesTerminals(t *testing.T) {
	tr := newTracker()
	tr.terminal(0, `"x"`)

	m := tr.mark()
	tr.terminal(4, `"a"`)
	tr.negative(4, `"b"`)
	tr.ruleFailed(4, "word", m)
	tr.ruleFailed(2, "stale", m)

	expected, unexpected := tr.lists()
	assert.Equal(t, []string{"word"}, expected)
	assert.Equal(t, []string{`"b"`}, unexpected)
}
