// Package test contains helpers shared by package tests.
package test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/source"
	"github.com/ava12/pegx/tree"
)

// ExpectErrorCode fails the test unless e is *pegx.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) *pegx.Error {
	t.Helper()
	var pe *pegx.Error
	require.Error(t, e, "expecting error code %d", expected)
	require.True(t, errors.As(e, &pe), "expecting *pegx.Error, got %T: %v", e, e)
	require.Equal(t, expected, pe.Code, "unexpected error: %s", pe.Message)
	return pe
}

// Shape serializes node names as s-expression: leaves are bare names,
// nodes with children are "(name child ...)".
func Shape(n *tree.Node) string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	writeShape(&b, n)
	return b.String()
}

func writeShape(b *strings.Builder, n *tree.Node) {
	if len(n.Children) == 0 {
		b.WriteString(n.Rule)
		return
	}

	b.WriteByte('(')
	b.WriteString(n.Rule)
	for _, c := range n.Children {
		b.WriteByte(' ')
		writeShape(b, c)
	}
	b.WriteByte(')')
}

// Shapes serializes nodes separated with spaces.
func Shapes(ns []*tree.Node) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = Shape(n)
	}
	return strings.Join(parts, " ")
}

// BuildTree creates tree from Shape-like description wrapped into root node.
// Every leaf spans its own name in synthetic source text, leaves are separated with spaces.
// Returns root and index of nodes by name.
func BuildTree(t testing.TB, def string) (*tree.Node, map[string]*tree.Node) {
	t.Helper()
	def = strings.NewReplacer("(", " ( ", ")", " ) ").Replace(def)
	items := strings.Fields(def)
	text := strings.Builder{}
	for _, item := range items {
		if item != "(" && item != ")" {
			if text.Len() > 0 {
				text.WriteByte(' ')
			}
			text.WriteString(item)
		}
	}
	src := source.FromString("tree", text.String())

	index := make(map[string]*tree.Node)
	pos := 0
	i := 0
	var build func(name string) *tree.Node
	build = func(name string) *tree.Node {
		start := pos
		if name != "" {
			pos += len(name)
		}
		var children []*tree.Node
		for i < len(items) && items[i] != ")" {
			item := items[i]
			i++
			if item == "(" {
				require.Less(t, i, len(items), "unterminated node in %q", def)
				name := items[i]
				i++
				if pos > 0 {
					pos++
				}
				children = append(children, build(name))
				require.Less(t, i, len(items), "missing ) in %q", def)
				i++
			} else {
				if pos > 0 {
					pos++
				}
				leaf := tree.NewNode(src, item, pos, pos+len(item), nil)
				pos += len(item)
				index[item] = leaf
				children = append(children, leaf)
			}
		}
		n := tree.NewNode(src, name, start, pos, children)
		if name != "" {
			index[name] = n
		}
		return n
	}

	root := build("")
	require.Equal(t, len(items), i, "unbalanced ) in %q", def)
	return root, index
}
