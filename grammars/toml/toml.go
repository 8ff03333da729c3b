// Package toml contains TOML v1.0 grammar.
//
// Keys and scalar values are atomic leaves, dates and times are a single compound-atomic
// date_time node. Newlines are treated as whitespace, so the grammar accepts some documents
// TOML rejects (e.g. two pairs on one line).
package toml

import (
	"github.com/ava12/pegx/grammar"
)

// Start is the rule matching a whole TOML document.
const Start = "toml"

var (
	lit  = grammar.Lit
	ref  = grammar.Ref
	seq  = grammar.Seq
	or   = grammar.Or
	opt  = grammar.Opt
	star = grammar.Star
	plus = grammar.Plus

	digit    = grammar.Rng('0', '9')
	hexDigit = or(digit, grammar.Rng('a', 'f'), grammar.Rng('A', 'F'))
	sign     = grammar.Chars("+-")
	newline  = or(lit("\n"), lit("\r\n"))

	// control characters other than tab are not allowed in strings
	control   = or(grammar.Rng('\x00', '\x08'), grammar.Rng('\x0a', '\x1f'), lit("\x7f"))
	mlControl = or(grammar.Rng('\x00', '\x08'), grammar.Rng('\x0b', '\x0c'), grammar.Rng('\x0e', '\x1f'), lit("\x7f"))
)

// Descriptions maps rule names to readable names for diagnostics.
var Descriptions = map[string]string{
	"array_table":        "array of tables",
	"bare_key":           "key",
	"full_date":          "date",
	"partial_time":       "time",
	"time_offset":        "time offset",
	"multi_line_string":  "multi-line string",
	"literal":            "literal string",
	"multi_line_literal": "multi-line literal string",
	"inline_table":       "inline table",
	"pair":               "key-value pair",
	"escape":             "escape sequence",
}

// digits matches d+ with single underscores between digits.
func digits(d grammar.Expr) grammar.Expr {
	return seq(d, star(seq(opt(lit("_")), d)))
}

func twoDigits() grammar.Expr {
	return grammar.Times(2, digit)
}

func rules() []grammar.Rule {
	decInt := seq(opt(sign), or(lit("0"), seq(grammar.Rng('1', '9'), star(seq(opt(lit("_")), digit)))))
	exp := seq(grammar.Chars("eE"), opt(sign), digits(digit))
	dottedKey := seq(ref("key"), star(seq(lit("."), ref("key"))))

	return []grammar.Rule{
		{Name: "toml", Body: seq(grammar.SOI, star(or(ref("table"), ref("array_table"), ref("pair"))), grammar.EOI)},
		{Name: "table", Body: seq(lit("["), dottedKey, lit("]"), star(ref("pair")))},
		{Name: "array_table", Body: seq(lit("[["), dottedKey, lit("]]"), star(ref("pair")))},
		{Name: "pair", Body: seq(dottedKey, lit("="), ref("value"))},
		{Name: "key", Annotation: grammar.Atomic, Body: or(ref("bare_key"), ref("string"), ref("literal"))},
		{Name: "bare_key", Body: plus(or(grammar.Rng('a', 'z'), grammar.Rng('A', 'Z'), digit, grammar.Chars("_-")))},

		{Name: "value", Annotation: grammar.Silent, Body: or(
			ref("date_time"), ref("float"), ref("integer"), ref("boolean"),
			ref("multi_line_string"), ref("string"), ref("multi_line_literal"), ref("literal"),
			ref("array"), ref("inline_table"),
		)},
		{Name: "boolean", Body: or(lit("true"), lit("false"))},
		{Name: "float", Annotation: grammar.Atomic, Body: or(
			seq(opt(sign), or(lit("inf"), lit("nan"))),
			seq(decInt, or(seq(lit("."), digits(digit), opt(exp)), exp)),
		)},
		{Name: "integer", Annotation: grammar.Atomic, Body: or(
			seq(lit("0x"), digits(hexDigit)),
			seq(lit("0o"), digits(grammar.Rng('0', '7'))),
			seq(lit("0b"), digits(grammar.Chars("01"))),
			decInt,
		)},

		{Name: "date_time", Annotation: grammar.CompoundAtomic, Body: or(
			ref("offset_date_time"), ref("local_date_time"), ref("local_date"), ref("local_time"),
		)},
		{Name: "offset_date_time", Body: seq(ref("full_date"), grammar.Chars("Tt "), ref("partial_time"), ref("time_offset"))},
		{Name: "local_date_time", Body: seq(ref("full_date"), grammar.Chars("Tt "), ref("partial_time"))},
		{Name: "local_date", Body: ref("full_date")},
		{Name: "local_time", Body: ref("partial_time")},
		{Name: "full_date", Body: seq(grammar.Times(4, digit), lit("-"), twoDigits(), lit("-"), twoDigits())},
		{Name: "partial_time", Body: seq(twoDigits(), lit(":"), twoDigits(), lit(":"), twoDigits(), opt(seq(lit("."), plus(digit))))},
		{Name: "time_offset", Body: or(grammar.Chars("Zz"), seq(sign, twoDigits(), lit(":"), twoDigits()))},

		{Name: "string", Annotation: grammar.Atomic, Body: seq(
			lit(`"`),
			star(or(ref("escape"), seq(grammar.Not(or(lit(`"`), lit(`\`), control)), grammar.Any))),
			lit(`"`),
		)},
		{Name: "multi_line_string", Annotation: grammar.Atomic, Body: seq(
			lit(`"""`),
			star(or(
				ref("escape"),
				seq(lit(`\`), star(grammar.Chars(" \t")), newline),
				seq(grammar.Not(or(lit(`"""`), lit(`\`), mlControl)), grammar.Any),
			)),
			lit(`"""`),
		)},
		{Name: "escape", Annotation: grammar.Atomic, Body: seq(lit(`\`), or(
			grammar.Chars(`"\bfnrt`),
			seq(lit("u"), grammar.Times(4, hexDigit)),
			seq(lit("U"), grammar.Times(8, hexDigit)),
		))},
		{Name: "literal", Annotation: grammar.Atomic, Body: seq(
			lit("'"),
			star(seq(grammar.Not(or(lit("'"), control)), grammar.Any)),
			lit("'"),
		)},
		{Name: "multi_line_literal", Annotation: grammar.Atomic, Body: seq(
			lit("'''"),
			star(seq(grammar.Not(or(lit("'''"), mlControl)), grammar.Any)),
			lit("'''"),
		)},

		{Name: "array", Body: seq(
			lit("["),
			opt(seq(ref("value"), star(seq(lit(","), ref("value"))), opt(lit(",")))),
			lit("]"),
		)},
		{Name: "inline_table", Body: seq(
			lit("{"),
			opt(seq(ref("pair"), star(seq(lit(","), ref("pair"))))),
			lit("}"),
		)},

		{Name: grammar.WhitespaceRule, Annotation: grammar.Silent, Body: or(lit(" "), lit("\t"), newline)},
		{Name: grammar.CommentRule, Annotation: grammar.Silent, Body: seq(lit("#"), star(seq(grammar.Not(newline), grammar.Any)))},
	}
}

// Grammar is the TOML grammar with start rule "toml".
var Grammar = grammar.MustNew(Start, rules()...)
