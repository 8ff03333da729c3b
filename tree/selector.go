package tree

import (
	"iter"
	"slices"
)

// Filter reports whether node is selected.
type Filter func(n *Node) bool

// Step maps a node to a lazy sequence of related nodes.
type Step func(n *Node) iter.Seq[*Node]

// Query is a chain of steps, each step is applied to every node produced by the previous one.
// A query is immutable and may be shared.
type Query struct {
	steps []Step
}

// Select creates a query. A query without steps yields its roots.
func Select(steps ...Step) Query {
	return Query{slices.Clone(steps)}
}

// Then returns q extended with step s.
func (q Query) Then(s Step) Query {
	return Query{append(slices.Clip(q.steps), s)}
}

// Where returns q extended with a step dropping nodes not matching all filters.
func (q Query) Where(fs ...Filter) Query {
	f := AllOf(fs...)
	return q.Then(func(n *Node) iter.Seq[*Node] {
		return func(yield func(*Node) bool) {
			if f(n) {
				yield(n)
			}
		}
	})
}

// Seq returns lazy sequence of distinct nodes selected from roots, in order of appearance.
// nil roots are skipped.
func (q Query) Seq(roots ...*Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		seen := make(map[*Node]bool)
		emit := func(n *Node) bool {
			if seen[n] {
				return true
			}
			seen[n] = true
			return yield(n)
		}

		for _, root := range roots {
			if root != nil && !q.apply(root, 0, emit) {
				return
			}
		}
	}
}

func (q Query) apply(n *Node, step int, yield func(*Node) bool) bool {
	if step == len(q.steps) {
		return yield(n)
	}
	for next := range q.steps[step](n) {
		if !q.apply(next, step+1, yield) {
			return false
		}
	}
	return true
}

// Nodes returns all nodes selected from roots.
func (q Query) Nodes(roots ...*Node) []*Node {
	return slices.Collect(q.Seq(roots...))
}

// First returns the first node selected from roots or nil.
func (q Query) First(roots ...*Node) *Node {
	for n := range q.Seq(roots...) {
		return n
	}
	return nil
}

// Down yields direct children.
func Down(n *Node) iter.Seq[*Node] {
	return slices.Values(n.Children)
}

// Up yields the parent if any.
func Up(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n.parent != nil {
			yield(n.parent)
		}
	}
}

// Search yields nodes matching f in pre-order, starting with n itself.
// Subtrees of matching nodes are searched only if deep is set.
func Search(f Filter, deep bool) Step {
	return func(n *Node) iter.Seq[*Node] {
		return func(yield func(*Node) bool) {
			search(n, f, deep, yield)
		}
	}
}

func search(n *Node, f Filter, deep bool, yield func(*Node) bool) bool {
	if f(n) {
		if !yield(n) {
			return false
		}
		if !deep {
			return true
		}
	}
	for _, c := range n.Children {
		if !search(c, f, deep, yield) {
			return false
		}
	}
	return true
}

// Nth yields children at listed indexes, negative index counts from the end.
func Nth(indexes ...int) Step {
	return pick(NthChild, indexes)
}

// Siblings yields siblings located at listed offsets from the node.
func Siblings(offsets ...int) Step {
	return pick(NthSibling, offsets)
}

// Ancestors yields ancestors at listed levels, level 0 is the parent.
func Ancestors(levels ...int) Step {
	return pick(Ancestor, levels)
}

func pick(get func(*Node, int) *Node, args []int) Step {
	return func(n *Node) iter.Seq[*Node] {
		return func(yield func(*Node) bool) {
			for _, i := range args {
				if nn := get(n, i); nn != nil && !yield(nn) {
					return
				}
			}
		}
	}
}

// FirstOf yields nodes of the first step producing any.
func FirstOf(steps ...Step) Step {
	return func(n *Node) iter.Seq[*Node] {
		return func(yield func(*Node) bool) {
			for _, s := range steps {
				found := false
				for nn := range s(n) {
					found = true
					if !yield(nn) {
						return
					}
				}
				if found {
					return
				}
			}
		}
	}
}

// Concat yields nodes of all steps one after another.
func Concat(steps ...Step) Step {
	return func(n *Node) iter.Seq[*Node] {
		return func(yield func(*Node) bool) {
			for _, s := range steps {
				for nn := range s(n) {
					if !yield(nn) {
						return
					}
				}
			}
		}
	}
}

// IsA matches nodes of any of listed rules.
func IsA(rules ...string) Filter {
	return func(n *Node) bool {
		return slices.Contains(rules, n.Rule)
	}
}

// IsLeaf matches nodes without children.
func IsLeaf(n *Node) bool {
	return len(n.Children) == 0
}

// HasText matches nodes whose matched text equals any of texts.
func HasText(texts ...string) Filter {
	return func(n *Node) bool {
		return slices.Contains(texts, string(n.Bytes()))
	}
}

func Not(f Filter) Filter {
	return func(n *Node) bool {
		return !f(n)
	}
}

func AnyOf(fs ...Filter) Filter {
	return func(n *Node) bool {
		return slices.ContainsFunc(fs, func(f Filter) bool { return f(n) })
	}
}

func AllOf(fs ...Filter) Filter {
	return func(n *Node) bool {
		for _, f := range fs {
			if !f(n) {
				return false
			}
		}
		return true
	}
}
