/*
Package parser interprets a grammar against an input and builds a parse tree.

A Parser is created once per grammar and is immutable, it may be shared between goroutines.
Every Parse call owns its cursor, its node lists, and its expectation tracker.

Parsing succeeds only if the start rule consumes the whole input. Otherwise the result is
*pegx.Error with code NoMatchError or IncompleteParseError holding the furthest position
reached and the list of expected rules and terminals at that position.
*/
package parser

import (
	"log/slog"

	"golang.org/x/text/cases"

	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/source"
	"github.com/ava12/pegx/tree"
)

// DefaultMaxDepth is the default limit of nested rule invocations.
const DefaultMaxDepth = 4096

// Option configures a Parser.
type Option func(p *Parser)

// WithMaxDepth sets the limit of nested rule invocations, 0 means no limit.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth >= 0 {
			p.maxDepth = depth
		}
	}
}

// WithLogger sets logger for parse results (Debug) and rule attempts (logutil.LevelTrace).
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser matches inputs against a grammar.
type Parser struct {
	grammar    *grammar.Grammar
	maxDepth   int
	logger     *slog.Logger
	folded     map[string]string
	whitespace *grammar.Rule
	comment    *grammar.Rule
}

// New creates a parser for the grammar.
func New(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{
		grammar:    g,
		maxDepth:   DefaultMaxDepth,
		logger:     slog.Default(),
		folded:     make(map[string]string),
		whitespace: g.Rule(grammar.WhitespaceRule),
		comment:    g.Rule(grammar.CommentRule),
	}
	for _, opt := range opts {
		opt(p)
	}

	fold := cases.Fold()
	for _, r := range g.Rules() {
		collectFolded(r.Body, fold, p.folded)
	}
	return p
}

func collectFolded(e grammar.Expr, fold cases.Caser, folded map[string]string) {
	switch x := e.(type) {
	case grammar.Literal:
		if x.Insensitive {
			folded[x.Text] = fold.String(x.Text)
		}
	case grammar.Sequence:
		for _, item := range x.Items {
			collectFolded(item, fold, folded)
		}
	case grammar.Choice:
		for _, item := range x.Items {
			collectFolded(item, fold, folded)
		}
	case grammar.Repeat:
		collectFolded(x.Item, fold, folded)
	case grammar.Predicate:
		collectFolded(x.Item, fold, folded)
	}
}

// Grammar returns the grammar p was created for.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse matches input named name against the grammar start rule.
func (p *Parser) Parse(name string, input []byte) (*tree.Node, error) {
	return p.ParseSource(source.New(name, input), p.grammar.Start())
}

// ParseString is Parse for string input.
func (p *Parser) ParseString(name, input string) (*tree.Node, error) {
	return p.Parse(name, []byte(input))
}

// ParseRule matches input named name against given rule.
func (p *Parser) ParseRule(rule, name string, input []byte) (*tree.Node, error) {
	return p.ParseSource(source.New(name, input), rule)
}

// ParseSource matches the whole source against given rule.
// Returned nodes reference source content, which must not be modified while the tree is used.
// If the rule is silent, the root is an anonymous node (empty Rule) holding nodes of inner rules.
func (p *Parser) ParseSource(src *source.Source, rule string) (*tree.Node, error) {
	r := p.grammar.Rule(rule)
	if r == nil {
		return nil, grammar.MakeUnknownRuleError(rule)
	}

	c := newParseContext(p, src)
	end, nodes, ok := c.invoke(r, modeNormal, bodyMode(r.Annotation, modeNormal), 0)
	if c.err != nil {
		p.logger.Debug("parse aborted", "input", src.Name(), "rule", rule, "error", c.err)
		return nil, c.err
	}

	if ok && end == src.Len() {
		root := rootNode(src, r, end, nodes)
		p.logger.Debug("parse finished", "input", src.Name(), "rule", rule, "length", end, "nodes", tree.NumOfChildren(root, tree.AllLevels)+1)
		return root, nil
	}

	if ok {
		c.track.terminal(end, grammar.EOI.String())
	}
	e := expectationError(src, c.track)
	p.logger.Debug("parse failed", "input", src.Name(), "rule", rule, "pos", e.Pos, "error", e)
	return nil, e
}

func rootNode(src *source.Source, r *grammar.Rule, end int, nodes []*tree.Node) *tree.Node {
	if r.Annotation != grammar.Silent && len(nodes) == 1 {
		return nodes[0]
	}
	return tree.NewNode(src, "", 0, end, nodes)
}

// Parse matches input against given rule of g using a parser with default options.
func Parse(g *grammar.Grammar, rule string, input []byte) (*tree.Node, error) {
	return New(g).ParseRule(rule, "", input)
}
