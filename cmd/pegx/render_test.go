package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/pegx/source"
	"github.com/ava12/pegx/tree"
)

func TestCellText(t *testing.T) {
	assert.Equal(t, `"a\tb"`, cellText("a\tb"))

	long := strings.Repeat("я", maxCellText+5)
	assert.Equal(t, `"`+strings.Repeat("я", maxCellText)+`"...`, cellText(long))
}

func TestRenderAnonymousRoot(t *testing.T) {
	src := source.FromString("in", "ab")
	root := tree.NewNode(src, "", 0, 2, []*tree.Node{
		tree.NewNode(src, "a", 0, 1, nil),
		tree.NewNode(src, "b", 1, 2, nil),
	})
	results := []result{{name: "in", root: root}}

	var b bytes.Buffer
	require.NoError(t, render(&b, "text", results))
	assert.Equal(t, "- \n  - a: \"a\"\n  - b: \"b\"\n", b.String())

	b.Reset()
	require.NoError(t, render(&b, "json", results))
	assert.Contains(t, b.String(), `"rule": "",`)
	assert.Contains(t, b.String(), `"text": "b"`)

	b.Reset()
	require.NoError(t, render(&b, "yaml", nil))
	assert.Equal(t, "[]\n", b.String())

	assert.Error(t, render(&b, "xml", results))
}
