/*
Package grammar defines immutable in-memory grammar representation.

A grammar is a set of named rules, each rule has an expression body and an annotation.
Expressions are built with constructors:

	Lit("abc"), ILit("abc")   literal text, case-sensitive or not
	Rng('a', 'z')             single character in range
	Seq(a, b, ...)            sequence, a ~ b
	Or(a, b, ...)             ordered choice, a | b
	Opt(e), Star(e), Plus(e)  e?, e*, e+
	Times(n, e), Rep(m, n, e) e{n}, e{m,n}
	And(e), Not(e)            &e, !e
	Ref("name")               rule reference
	SOI, EOI, Any             start of input, end of input, any character

Rules named "whitespace" and "comment" are skipped implicitly between sequence items
and repetitions of rules that are not atomic.
*/
package grammar

import (
	"strings"

	"github.com/ava12/pegx"
)

// Conventional names of rules matched implicitly between tokens.
const (
	WhitespaceRule = "whitespace"
	CommentRule    = "comment"
)

// Annotation changes implicit skipping and tree building for a rule and its subtree.
type Annotation int

const (
	// Normal rule produces a node and allows implicit skipping in its body.
	Normal Annotation = iota
	// Silent rule never produces a node, its child nodes are attached to the nearest ancestor.
	Silent
	// Atomic rule disables implicit skipping and child nodes in its subtree.
	Atomic
	// CompoundAtomic rule is atomic, but inner rules still take part in error reports.
	CompoundAtomic
	// NonAtomic rule restores normal behavior inside an atomic rule.
	NonAtomic
)

func (a Annotation) String() string {
	switch a {
	case Normal:
		return "normal"
	case Silent:
		return "silent"
	case Atomic:
		return "atomic"
	case CompoundAtomic:
		return "compound-atomic"
	case NonAtomic:
		return "non-atomic"
	default:
		return "unknown"
	}
}

func (a Annotation) marker() string {
	switch a {
	case Silent:
		return "_"
	case Atomic:
		return "@"
	case CompoundAtomic:
		return "$"
	case NonAtomic:
		return "!"
	default:
		return ""
	}
}

// Rule is a named expression.
type Rule struct {
	Name       string
	Body       Expr
	Annotation Annotation
}

// String returns rule definition in pest-like notation, e.g. `number = @{ "-"? ~ int }`.
func (r Rule) String() string {
	body := exprString(r.Body)
	if len(body) > 1 && body[0] == '(' && body[len(body)-1] == ')' && balanced(body[1:len(body)-1]) {
		body = body[1 : len(body)-1]
	}
	return r.Name + " = " + r.Annotation.marker() + "{ " + body + " }"
}

func balanced(s string) bool {
	depth := 0
	quote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// Grammar is a validated immutable set of rules. It is safe for concurrent use.
type Grammar struct {
	start string
	rules []Rule
	index map[string]int
}

// New validates rules and creates a grammar. start must name one of rules.
// Returns *pegx.Error of class pegx.GrammarErrors if rules are invalid.
func New(start string, rules ...Rule) (*Grammar, error) {
	g := &Grammar{
		start: start,
		rules: make([]Rule, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	copy(g.rules, rules)

	for i, r := range g.rules {
		if r.Name == "" {
			return nil, emptyRuleNameError(i)
		}
		if _, has := g.index[r.Name]; has {
			return nil, duplicateRuleError(r.Name)
		}
		g.index[r.Name] = i
	}

	if _, has := g.index[start]; !has {
		return nil, undefinedStartRuleError(start)
	}

	var undefined []string
	seen := make(map[string]bool)
	for _, r := range g.rules {
		e := g.validate(r.Name, r.Body, func(name string) {
			if !seen[name] {
				seen[name] = true
				undefined = append(undefined, name)
			}
		})
		if e != nil {
			return nil, e
		}
	}
	if len(undefined) > 0 {
		return nil, undefinedRuleError(undefined)
	}

	return g, nil
}

// MustNew is like New but panics on error. Intended for package-level grammar variables.
func MustNew(start string, rules ...Rule) *Grammar {
	g, e := New(start, rules...)
	if e != nil {
		panic(e)
	}
	return g
}

func (g *Grammar) validate(rule string, e Expr, undefined func(string)) error {
	switch x := e.(type) {
	case nil:
		return invalidExprError(rule, "nil expression")
	case Literal:
		return nil
	case Range:
		if x.Low > x.High {
			return invalidExprError(rule, "empty range "+x.String())
		}
	case Sequence:
		return g.validateItems(rule, "sequence", x.Items, undefined)
	case Choice:
		return g.validateItems(rule, "choice", x.Items, undefined)
	case Repeat:
		if x.Min < 0 || (x.Max != Unbounded && (x.Max < x.Min || x.Max == 0)) {
			return invalidExprError(rule, "wrong repetition bounds "+x.String())
		}
		return g.validate(rule, x.Item, undefined)
	case Predicate:
		return g.validate(rule, x.Item, undefined)
	case RuleRef:
		if _, has := g.index[x.Name]; !has {
			undefined(x.Name)
		}
	case Builtin:
		if x < StartOfInput || x > AnyChar {
			return invalidExprError(rule, "unknown builtin "+x.String())
		}
	default:
		return invalidExprError(rule, "unknown expression type")
	}
	return nil
}

func (g *Grammar) validateItems(rule, kind string, items []Expr, undefined func(string)) error {
	if len(items) == 0 {
		return invalidExprError(rule, "empty "+kind)
	}
	for _, item := range items {
		if e := g.validate(rule, item, undefined); e != nil {
			return e
		}
	}
	return nil
}

// Start returns default start rule name.
func (g *Grammar) Start() string {
	return g.start
}

// Rule returns rule by name or nil if there is no such rule.
func (g *Grammar) Rule(name string) *Rule {
	i, has := g.index[name]
	if !has {
		return nil
	}
	return &g.rules[i]
}

// Has reports whether the grammar contains named rule.
func (g *Grammar) Has(name string) bool {
	_, has := g.index[name]
	return has
}

// Rules returns a copy of rule list in definition order.
func (g *Grammar) Rules() []Rule {
	result := make([]Rule, len(g.rules))
	copy(result, g.rules)
	return result
}

// String returns all rules in pest-like notation, one per line.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Error codes emitted by New and by parser for unknown rules.
const (
	// rule has empty name
	EmptyRuleNameError = pegx.GrammarErrors + iota
	// two rules have the same name
	DuplicateRuleError
	// rule references undefined rule
	UndefinedRuleError
	// start rule is not defined
	UndefinedStartRuleError
	// rule contains malformed expression
	InvalidExprError
	// parse requested for unknown rule
	UnknownRuleError
)

func emptyRuleNameError(index int) *pegx.Error {
	return pegx.FormatError(EmptyRuleNameError, "rule #%d has empty name", index)
}

func duplicateRuleError(name string) *pegx.Error {
	return pegx.FormatError(DuplicateRuleError, "rule %q already defined", name)
}

func undefinedRuleError(names []string) *pegx.Error {
	return pegx.FormatError(UndefinedRuleError, "undefined rules: %s", strings.Join(names, ", "))
}

func undefinedStartRuleError(name string) *pegx.Error {
	return pegx.FormatError(UndefinedStartRuleError, "start rule %q is not defined", name)
}

func invalidExprError(rule, reason string) *pegx.Error {
	return pegx.FormatError(InvalidExprError, "invalid expression in rule %q: %s", rule, reason)
}

// MakeUnknownRuleError creates error reported when parsing is requested for undefined rule.
func MakeUnknownRuleError(name string) *pegx.Error {
	return pegx.FormatError(UnknownRuleError, "unknown rule %q", name)
}
