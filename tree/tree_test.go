package tree_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ava12/pegx/internal/test"
	"github.com/ava12/pegx/source"
	. "github.com/ava12/pegx/tree"
)

func names(ns []*Node) []string {
	res := make([]string, len(ns))
	for i, n := range ns {
		res[i] = n.Rule
	}
	return res
}

func TestNewNode(t *testing.T) {
	src := source.FromString("src", "key = value")
	k := NewNode(src, "key", 0, 3, nil)
	v := NewNode(src, "value", 6, 11, nil)
	pair := NewNode(src, "pair", 0, 11, []*Node{k, v})

	assert.Same(t, pair, k.Parent())
	assert.Same(t, pair, v.Parent())
	assert.Nil(t, pair.Parent())
	assert.Same(t, src, pair.Source())
	assert.Equal(t, "key", k.Text())
	assert.Equal(t, []byte("value"), v.Bytes())
	assert.Equal(t, 5, v.Len())
	start, end := v.Span()
	assert.Equal(t, []int{6, 11}, []int{start, end})
	assert.Equal(t, "value[6..11]", v.String())
	assert.Equal(t, "src", v.SourceName())
	assert.Equal(t, 1, v.Line())
	assert.Equal(t, 7, v.Col())
	assert.Equal(t, 11, v.EndPos().Pos())
	assert.Equal(t, 12, v.EndPos().Col())
	assert.Same(t, v, pair.Child("value"))
	assert.Nil(t, pair.Child("other"))
}

func TestNodeWithoutSource(t *testing.T) {
	n := &Node{Rule: "x", Start: 1, End: 2}
	assert.Nil(t, n.Bytes())
	assert.Equal(t, "", n.Text())
	assert.Equal(t, "", n.SourceName())
	assert.Equal(t, 0, n.Line())
	assert.Equal(t, 0, n.EndPos().Line())
}

func TestNodeBytesShareInput(t *testing.T) {
	content := []byte("abc")
	n := NewNode(source.New("", content), "x", 1, 3, nil)
	content[1] = 'B'
	assert.Equal(t, "Bc", n.Text())
}

func TestAncestor(t *testing.T) {
	root, i := BuildTree(t, "(1st (2nd (3rd leaf)))")
	leaf := i["leaf"]

	assert.Same(t, i["3rd"], Ancestor(leaf, 0))
	assert.Same(t, i["2nd"], Ancestor(leaf, 1))
	assert.Same(t, root, Ancestor(leaf, 3))
	assert.Nil(t, Ancestor(leaf, 4))
	assert.Nil(t, Ancestor(nil, 0))

	assert.Equal(t, 4, NodeLevel(leaf))
	assert.Equal(t, 0, NodeLevel(root))
	assert.Equal(t, 0, NodeLevel(nil))
}

func TestSiblings(t *testing.T) {
	root, i := BuildTree(t, "(p first second third)")
	first, second, third := i["first"], i["second"], i["third"]

	assert.Equal(t, 0, SiblingIndex(first))
	assert.Equal(t, 2, SiblingIndex(third))
	assert.Equal(t, 0, SiblingIndex(root))

	assert.Same(t, first, NthChild(i["p"], 0))
	assert.Same(t, third, NthChild(i["p"], -1))
	assert.Same(t, first, NthChild(i["p"], -3))
	assert.Nil(t, NthChild(i["p"], 3))
	assert.Nil(t, NthChild(i["p"], -4))
	assert.Nil(t, NthChild(nil, 0))

	assert.Same(t, third, NthSibling(first, 2))
	assert.Same(t, first, NthSibling(second, -1))
	assert.Same(t, second, NthSibling(second, 0))
	assert.Nil(t, NthSibling(first, -1))
	assert.Nil(t, NthSibling(third, 1))
	assert.Same(t, root, NthSibling(root, 0))
	assert.Nil(t, NthSibling(root, 1))
}

func TestNumOfChildren(t *testing.T) {
	root, i := BuildTree(t, "(a (b c d) e) f")

	assert.Equal(t, 2, NumOfChildren(root, 0))
	assert.Equal(t, 4, NumOfChildren(root, 1))
	assert.Equal(t, 6, NumOfChildren(root, AllLevels))
	assert.Equal(t, 2, NumOfChildren(i["b"], AllLevels))
	assert.Equal(t, 0, NumOfChildren(i["f"], AllLevels))
	assert.Equal(t, 0, NumOfChildren(nil, AllLevels))
}

func TestChildren(t *testing.T) {
	assert.Empty(t, Children(nil))

	root, i := BuildTree(t, "(foo) (bar baz (qux (x)))")
	assert.Equal(t, []string{"foo", "bar"}, names(Children(root)))
	assert.Equal(t, []string{"baz", "qux"}, names(Children(i["bar"])))
	assert.Empty(t, Children(i["foo"]))

	c := Children(root)
	c[0] = nil
	assert.NotNil(t, root.Children[0])
}

func TestFind(t *testing.T) {
	root, _ := BuildTree(t, "(a (b (c x)) (c y))")

	assert.Equal(t, "c[4..7]", Find(root, "c").String())
	assert.Nil(t, Find(root, "z"))
	assert.Equal(t, []string{"c", "c"}, names(FindAll(root, "c")))
	assert.Empty(t, FindAll(root, "z"))
}

func TestIterators(t *testing.T) {
	root, i := BuildTree(t, "(a (b d e) (c f))")

	assert.Equal(t, []string{"", "a", "b", "d", "e", "c", "f"}, names(slices.Collect(root.All())))
	assert.Equal(t, []string{"", "a", "b", "c", "d", "e", "f"}, names(slices.Collect(root.Breadth())))

	var visited []string
	for n := range i["a"].All() {
		visited = append(visited, n.Rule)
		if n.Rule == "d" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b", "d"}, visited)

	visited = nil
	for n := range i["a"].Breadth() {
		visited = append(visited, n.Rule)
		if n.Rule == "c" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, visited)

	var none *Node
	assert.Empty(t, slices.Collect(none.All()))
	assert.Empty(t, slices.Collect(none.Breadth()))
}

func TestWalk(t *testing.T) {
	root, _ := BuildTree(t, "(a (b d e) (c f)) g")

	var visited []string
	visitor := func(n *Node) (bool, bool) {
		visited = append(visited, n.Rule)
		return n.Rule != "b", n.Rule != "d"
	}

	Walk(root, WalkLtr, visitor)
	assert.Equal(t, []string{"", "a", "b", "c", "f", "g"}, visited)

	visited = nil
	Walk(root, WalkRtl, visitor)
	assert.Equal(t, []string{"", "g", "a", "c", "f", "b"}, visited)

	visited = nil
	Walk(root, WalkLtr, func(n *Node) (bool, bool) {
		visited = append(visited, n.Rule)
		return true, n.Rule != "d"
	})
	assert.Equal(t, []string{"", "a", "b", "d", "c", "f", "g"}, visited)

	Walk(nil, WalkLtr, visitor)
}

func TestFormat(t *testing.T) {
	root, i := BuildTree(t, "(pair key (value str))")
	var b strings.Builder
	require.NoError(t, Format(&b, i["pair"]))
	assert.Equal(t, "- pair\n  - key: \"key\"\n  - value\n    - str: \"str\"\n", b.String())

	b.Reset()
	require.NoError(t, Format(&b, nil))
	assert.Empty(t, b.String())
	assert.Equal(t, "(pair key (value str))", Shape(root.Children[0]))
}
