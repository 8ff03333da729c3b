// Package json contains JSON (RFC 8259) grammar.
//
//	json       = { SOI ~ value ~ EOI }
//	object     = { "{" ~ pair ~ ("," ~ pair)* ~ "}" | "{" ~ "}" }
//	pair       = { string ~ ":" ~ value }
//	array      = { "[" ~ value ~ ("," ~ value)* ~ "]" | "[" ~ "]" }
//	value      = { string | number | object | array | bool | null }
//	string     = @{ "\"" ~ (escape | !("\"" | "\\" | control) ~ ANY)* ~ "\"" }
//	escape     = @{ "\\" ~ ("\"" | "\\" | "/" | "b" | "f" | "n" | "r" | "t" | unicode) }
//	unicode    = @{ "u" ~ hex ~ hex ~ hex ~ hex }
//	hex        = { '0'..'9' | 'a'..'f' | 'A'..'F' }
//	number     = @{ "-"? ~ int ~ ("." ~ '0'..'9'+ ~ exp? | exp)? }
//	int        = @{ "0" | '1'..'9' ~ '0'..'9'* }
//	exp        = @{ ("E" | "e") ~ ("+" | "-")? ~ '0'..'9'+ }
//	bool       = { "true" | "false" }
//	null       = { "null" }
//	whitespace = _{ " " | "\t" | "\r" | "\n" }
//
// control is '\u{0}'..'\u{1f}', not a rule.
package json

import (
	"github.com/ava12/pegx/grammar"
)

// Start is the rule matching a whole JSON document.
const Start = "json"

var (
	lit  = grammar.Lit
	ref  = grammar.Ref
	seq  = grammar.Seq
	or   = grammar.Or
	opt  = grammar.Opt
	star = grammar.Star
	plus = grammar.Plus

	digit   = grammar.Rng('0', '9')
	control = grammar.Rng('\x00', '\x1f')
)

// Descriptions maps rule names to readable names for diagnostics.
var Descriptions = map[string]string{
	"bool":   "boolean",
	"pair":   "key-value pair",
	"escape": "escape sequence",
	"hex":    "hex digit",
	"exp":    "exponent",
	"int":    "integer part",
}

func rules() []grammar.Rule {
	return []grammar.Rule{
		{Name: "json", Body: seq(grammar.SOI, ref("value"), grammar.EOI)},
		{Name: "object", Body: or(
			seq(lit("{"), ref("pair"), star(seq(lit(","), ref("pair"))), lit("}")),
			seq(lit("{"), lit("}")),
		)},
		{Name: "pair", Body: seq(ref("string"), lit(":"), ref("value"))},
		{Name: "array", Body: or(
			seq(lit("["), ref("value"), star(seq(lit(","), ref("value"))), lit("]")),
			seq(lit("["), lit("]")),
		)},
		{Name: "value", Body: or(ref("string"), ref("number"), ref("object"), ref("array"), ref("bool"), ref("null"))},
		{Name: "string", Annotation: grammar.Atomic, Body: seq(
			lit(`"`),
			star(or(ref("escape"), seq(grammar.Not(or(lit(`"`), lit(`\`), control)), grammar.Any))),
			lit(`"`),
		)},
		{Name: "escape", Annotation: grammar.Atomic, Body: seq(lit(`\`), or(grammar.Chars(`"\/bfnrt`), ref("unicode")))},
		{Name: "unicode", Annotation: grammar.Atomic, Body: seq(lit("u"), grammar.Times(4, ref("hex")))},
		{Name: "hex", Body: or(digit, grammar.Rng('a', 'f'), grammar.Rng('A', 'F'))},
		{Name: "number", Annotation: grammar.Atomic, Body: seq(
			opt(lit("-")),
			ref("int"),
			opt(or(seq(lit("."), plus(digit), opt(ref("exp"))), ref("exp"))),
		)},
		{Name: "int", Annotation: grammar.Atomic, Body: or(lit("0"), seq(grammar.Rng('1', '9'), star(digit)))},
		{Name: "exp", Annotation: grammar.Atomic, Body: seq(grammar.Chars("Ee"), opt(grammar.Chars("+-")), plus(digit))},
		{Name: "bool", Body: or(lit("true"), lit("false"))},
		{Name: "null", Body: lit("null")},
		{Name: grammar.WhitespaceRule, Annotation: grammar.Silent, Body: grammar.Chars(" \t\r\n")},
	}
}

// Grammar is the JSON grammar with start rule "json".
var Grammar = grammar.MustNew(Start, rules()...)
