package grammar

import (
	"strconv"
	"strings"
)

// Expr is a rule expression. Implementations are Literal, Range, Sequence, Choice,
// Repeat, Predicate, RuleRef, and Builtin. Expressions are plain values and must not
// be modified once used in a Grammar.
type Expr interface {
	// String returns expression in pest-like notation.
	String() string
	expr()
}

// Literal matches fixed text, optionally ignoring case.
type Literal struct {
	Text        string
	Insensitive bool
}

// Range matches exactly one character in [Low, High].
type Range struct {
	Low, High rune
}

// Sequence matches all items in order.
type Sequence struct {
	Items []Expr
}

// Choice matches the first matching item, in written order.
type Choice struct {
	Items []Expr
}

// Unbounded is the Repeat.Max value meaning no upper limit.
const Unbounded = -1

// Repeat greedily matches Item from Min up to Max times.
type Repeat struct {
	Item     Expr
	Min, Max int
}

// Predicate is a zero-width lookahead: positive matches iff Item matches,
// negative matches iff Item does not.
type Predicate struct {
	Item     Expr
	Negative bool
}

// RuleRef matches named rule.
type RuleRef struct {
	Name string
}

// Builtin is one of predefined zero- or one-character matchers.
type Builtin int

const (
	StartOfInput Builtin = iota
	EndOfInput
	AnyChar
)

func (Literal) expr()   {}
func (Range) expr()     {}
func (Sequence) expr()  {}
func (Choice) expr()    {}
func (Repeat) expr()    {}
func (Predicate) expr() {}
func (RuleRef) expr()   {}
func (Builtin) expr()   {}

var (
	SOI Expr = StartOfInput
	EOI Expr = EndOfInput
	Any Expr = AnyChar
)

// Lit creates case-sensitive literal.
func Lit(text string) Expr {
	return Literal{Text: text}
}

// ILit creates case-insensitive literal.
func ILit(text string) Expr {
	return Literal{Text: text, Insensitive: true}
}

// Rng creates character range.
func Rng(low, high rune) Expr {
	return Range{low, high}
}

// Seq creates sequence. A single item is returned as is.
func Seq(items ...Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return Sequence{items}
}

// Or creates ordered choice. A single item is returned as is.
func Or(items ...Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return Choice{items}
}

// Opt matches e zero or one time (e?).
func Opt(e Expr) Expr {
	return Repeat{e, 0, 1}
}

// Star matches e zero or more times (e*).
func Star(e Expr) Expr {
	return Repeat{e, 0, Unbounded}
}

// Plus matches e one or more times (e+).
func Plus(e Expr) Expr {
	return Repeat{e, 1, Unbounded}
}

// Times matches e exactly n times.
func Times(n int, e Expr) Expr {
	return Repeat{e, n, n}
}

// Rep matches e from min to max times, max may be Unbounded.
func Rep(min, max int, e Expr) Expr {
	return Repeat{e, min, max}
}

// And creates positive lookahead (&e).
func And(e Expr) Expr {
	return Predicate{e, false}
}

// Not creates negative lookahead (!e).
func Not(e Expr) Expr {
	return Predicate{e, true}
}

// Ref creates rule reference.
func Ref(name string) Expr {
	return RuleRef{name}
}

// Chars matches any single character contained in chars.
func Chars(chars string) Expr {
	items := make([]Expr, 0, len(chars))
	for _, c := range chars {
		items = append(items, Lit(string(c)))
	}
	return Or(items...)
}

func (l Literal) String() string {
	if l.Insensitive {
		return "^" + strconv.Quote(l.Text)
	}
	return strconv.Quote(l.Text)
}

func (r Range) String() string {
	return strconv.QuoteRune(r.Low) + ".." + strconv.QuoteRune(r.High)
}

func (s Sequence) String() string {
	return "(" + joinExprs(s.Items, " ~ ") + ")"
}

func (c Choice) String() string {
	return "(" + joinExprs(c.Items, " | ") + ")"
}

func (r Repeat) String() string {
	inner := exprString(r.Item)
	switch {
	case r.Min == 0 && r.Max == Unbounded:
		return inner + "*"
	case r.Min == 1 && r.Max == Unbounded:
		return inner + "+"
	case r.Min == 0 && r.Max == 1:
		return inner + "?"
	case r.Min == r.Max:
		return inner + "{" + strconv.Itoa(r.Min) + "}"
	case r.Max == Unbounded:
		return inner + "{" + strconv.Itoa(r.Min) + ",}"
	default:
		return inner + "{" + strconv.Itoa(r.Min) + "," + strconv.Itoa(r.Max) + "}"
	}
}

func (p Predicate) String() string {
	if p.Negative {
		return "!" + exprString(p.Item)
	}
	return "&" + exprString(p.Item)
}

func (r RuleRef) String() string {
	return r.Name
}

func (b Builtin) String() string {
	switch b {
	case StartOfInput:
		return "SOI"
	case EndOfInput:
		return "EOI"
	case AnyChar:
		return "ANY"
	default:
		return "Builtin(" + strconv.Itoa(int(b)) + ")"
	}
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

func joinExprs(items []Expr, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = exprString(item)
	}
	return strings.Join(parts, sep)
}
