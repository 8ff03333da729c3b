/*
Package tree contains parse tree node type and functions to traverse and query parse trees.

A node carries a rule name and a byte span in the input. Node text is never copied during
parsing, Bytes returns a sub-slice of the input buffer and is valid as long as the buffer is.
*/
package tree

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ava12/pegx/internal/queue"
	"github.com/ava12/pegx/source"
)

// Node is a matched rule occurrence.
type Node struct {
	// Rule contains rule name, empty for anonymous root of silent start rule.
	Rule string
	// Start and End contain byte offsets of matched span [Start, End).
	Start, End int
	// Children contains nodes of named rules matched inside the span, in input order.
	Children []*Node

	parent *Node
	src    *source.Source
}

// NewNode creates node and makes it parent of all children.
func NewNode(src *source.Source, rule string, start, end int, children []*Node) *Node {
	n := &Node{Rule: rule, Start: start, End: end, Children: children, src: src}
	for _, c := range children {
		c.parent = n
	}
	return n
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Source() *source.Source {
	return n.src
}

// Span returns matched byte span.
func (n *Node) Span() (start, end int) {
	return n.Start, n.End
}

// Len returns span length in bytes.
func (n *Node) Len() int {
	return n.End - n.Start
}

// Bytes returns matched part of the input without copying.
func (n *Node) Bytes() []byte {
	if n.src == nil {
		return nil
	}
	return n.src.Content()[n.Start:n.End]
}

// Text returns a copy of matched part of the input.
func (n *Node) Text() string {
	return string(n.Bytes())
}

// Pos returns position of span start.
func (n *Node) Pos() source.Pos {
	if n.src == nil {
		return source.Pos{}
	}
	return n.src.SourcePos(n.Start)
}

// EndPos returns position following span end.
func (n *Node) EndPos() source.Pos {
	if n.src == nil {
		return source.Pos{}
	}
	return n.src.SourcePos(n.End)
}

// SourceName, Line, and Col implement pegx.SourcePos.
func (n *Node) SourceName() string {
	if n.src == nil {
		return ""
	}
	return n.src.Name()
}

func (n *Node) Line() int {
	return n.Pos().Line()
}

func (n *Node) Col() int {
	return n.Pos().Col()
}

// Child returns the first direct child with given rule name or nil.
func (n *Node) Child(rule string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// All returns lazy pre-order iterator over the node and all its descendants.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n != nil {
			n.yieldAll(yield)
		}
	}
}

func (n *Node) yieldAll(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.yieldAll(yield) {
			return false
		}
	}
	return true
}

// Breadth returns lazy breadth-first iterator over the node and all its descendants.
func (n *Node) Breadth() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}

		q := queue.New(n)
		for {
			node, found := q.First()
			if !found || !yield(node) {
				return
			}
			for _, c := range node.Children {
				q.Append(c)
			}
		}
	}
}

// String returns node name and span, e.g. `value[5..9]`.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s[%d..%d]", n.Rule, n.Start, n.End)
}

// Format writes indented tree dump, one node per line: `- rule: "text"` for leaves
// and `- rule` for nodes with children.
func Format(w io.Writer, n *Node) error {
	return format(w, n, 0)
}

func format(w io.Writer, n *Node, level int) error {
	if n == nil {
		return nil
	}

	indent := strings.Repeat("  ", level)
	var e error
	if len(n.Children) == 0 && n.src != nil {
		_, e = fmt.Fprintf(w, "%s- %s: %q\n", indent, n.Rule, n.Bytes())
	} else {
		_, e = fmt.Fprintf(w, "%s- %s\n", indent, n.Rule)
	}
	for _, c := range n.Children {
		if e != nil {
			break
		}
		e = format(w, c, level+1)
	}
	return e
}

// Ancestor returns ancestor of n, level 0 is the parent.
func Ancestor(n *Node, level int) *Node {
	for n != nil && level >= 0 {
		n = n.parent
		level--
	}
	return n
}

// NodeLevel returns the number of ancestors of n.
func NodeLevel(n *Node) (l int) {
	if n == nil {
		return
	}

	for p := n.parent; p != nil; p = p.parent {
		l++
	}
	return
}

// SiblingIndex returns index of n in parent's children list, 0 for root.
func SiblingIndex(n *Node) int {
	if n == nil || n.parent == nil {
		return 0
	}

	for i, c := range n.parent.Children {
		if c == n {
			return i
		}
	}
	return 0
}

// NthChild returns i-th child of n, negative i counts from the end (-1 is the last child).
func NthChild(n *Node, i int) *Node {
	if n == nil {
		return nil
	}

	l := len(n.Children)
	if i < 0 {
		i += l
	}
	if i < 0 || i >= l {
		return nil
	}
	return n.Children[i]
}

// NthSibling returns sibling of n located i positions after (or before if i < 0) n.
func NthSibling(n *Node, i int) *Node {
	if n == nil {
		return nil
	}
	if n.parent == nil {
		if i == 0 {
			return n
		}
		return nil
	}

	j := SiblingIndex(n) + i
	if j < 0 {
		return nil
	}
	return NthChild(n.parent, j)
}

const AllLevels = -1

// NumOfChildren counts descendants of parent down to levels below its children,
// AllLevels counts the whole subtree.
func NumOfChildren(parent *Node, levels int) int {
	if parent == nil {
		return 0
	}

	i := 0
	for _, c := range parent.Children {
		i++
		if levels != 0 {
			i += NumOfChildren(c, levels-1)
		}
	}
	return i
}

// Children returns a copy of n children list.
func Children(n *Node) []*Node {
	if n == nil {
		return nil
	}

	res := make([]*Node, len(n.Children))
	copy(res, n.Children)
	return res
}

// Find returns the first node (pre-order) in n subtree with given rule name or nil.
func Find(n *Node, rule string) *Node {
	for node := range n.All() {
		if node.Rule == rule {
			return node
		}
	}
	return nil
}

// FindAll returns all nodes in n subtree with given rule name, nested matches included.
func FindAll(n *Node, rule string) []*Node {
	var res []*Node
	for node := range n.All() {
		if node.Rule == rule {
			res = append(res, node)
		}
	}
	return res
}

// NodeVisitor is called for every visited node.
type NodeVisitor func(n *Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n and its descendants in pre-order.
func Walk(n *Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n *Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if !vc {
		return vs
	}

	l := len(n.Children)
	for i := 0; i < l; i++ {
		c := n.Children[i]
		if rtl {
			c = n.Children[l-1-i]
		}
		if !visitNode(c, v, rtl) {
			break
		}
	}

	return vs
}
