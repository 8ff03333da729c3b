package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/internal/logutil"
	"github.com/ava12/pegx/source"
	"github.com/ava12/pegx/tree"
)

// mode is the atomicity inherited from enclosing rules.
type mode int

const (
	// implicit skipping, inner nodes recorded
	modeNormal mode = iota
	// no skipping, no inner nodes, no inner rule names in expectations
	modeAtomic
	// no skipping, no inner nodes
	modeCompound
)

// bodyMode returns the mode of rule body entered from caller mode m.
func bodyMode(a grammar.Annotation, m mode) mode {
	switch a {
	case grammar.Atomic:
		return modeAtomic
	case grammar.CompoundAtomic:
		return modeCompound
	case grammar.NonAtomic:
		return modeNormal
	default:
		return m
	}
}

type parseContext struct {
	parser *Parser
	src    *source.Source
	input  []byte
	track  *tracker
	fold   cases.Caser
	depth  int
	err    *pegx.Error
	logger *slog.Logger
	trace  bool
}

func newParseContext(p *Parser, src *source.Source) *parseContext {
	return &parseContext{
		parser: p,
		src:    src,
		input:  src.Content(),
		track:  newTracker(),
		fold:   cases.Fold(),
		logger: p.logger,
		trace:  logutil.TraceEnabled(p.logger),
	}
}

// match returns end offset and recorded nodes of e matched at pos.
// Nodes are only valid if ok is true.
func (c *parseContext) match(e grammar.Expr, m mode, pos int) (end int, nodes []*tree.Node, ok bool) {
	if c.err != nil {
		return pos, nil, false
	}

	switch x := e.(type) {
	case grammar.Literal:
		end, ok = c.matchLiteral(x, pos)
	case grammar.Range:
		end, ok = c.matchRange(x, pos)
	case grammar.Sequence:
		return c.matchSequence(x, m, pos)
	case grammar.Choice:
		return c.matchChoice(x, m, pos)
	case grammar.Repeat:
		return c.matchRepeat(x, m, pos)
	case grammar.Predicate:
		ok = c.matchPredicate(x, m, pos)
		end = pos
	case grammar.RuleRef:
		return c.callRule(x.Name, m, pos)
	case grammar.Builtin:
		end, ok = c.matchBuiltin(x, pos)
	default:
		end = pos
	}
	return
}

func (c *parseContext) fail(pos int, e grammar.Expr) {
	if c.track.wants(pos) {
		c.track.terminal(pos, e.String())
	}
}

func (c *parseContext) matchLiteral(l grammar.Literal, pos int) (int, bool) {
	var end int
	var ok bool
	if l.Insensitive {
		end, ok = c.matchFolded(c.parser.folded[l.Text], pos)
	} else if bytes.HasPrefix(c.input[pos:], []byte(l.Text)) {
		end, ok = pos+len(l.Text), true
	}

	if !ok {
		c.fail(pos, l)
		return pos, false
	}
	return end, true
}

// matchFolded matches input characters one by one against case-folded text.
func (c *parseContext) matchFolded(want string, pos int) (int, bool) {
	end := pos
	for want != "" {
		if end >= len(c.input) {
			return pos, false
		}

		r, size := utf8.DecodeRune(c.input[end:])
		var f string
		if r < utf8.RuneSelf {
			if 'A' <= r && r <= 'Z' {
				r += 'a' - 'A'
			}
			f = string(r)
		} else {
			f = c.fold.String(string(r))
		}
		if !strings.HasPrefix(want, f) {
			return pos, false
		}

		want = want[len(f):]
		end += size
	}
	return end, true
}

func (c *parseContext) matchRange(r grammar.Range, pos int) (int, bool) {
	if pos < len(c.input) {
		char, size := utf8.DecodeRune(c.input[pos:])
		if r.Low <= char && char <= r.High {
			return pos + size, true
		}
	}

	c.fail(pos, r)
	return pos, false
}

func (c *parseContext) matchBuiltin(b grammar.Builtin, pos int) (int, bool) {
	switch b {
	case grammar.StartOfInput:
		if pos == 0 {
			return pos, true
		}
	case grammar.EndOfInput:
		if pos == len(c.input) {
			return pos, true
		}
	case grammar.AnyChar:
		if pos < len(c.input) {
			_, size := utf8.DecodeRune(c.input[pos:])
			return pos + size, true
		}
	}

	c.fail(pos, b)
	return pos, false
}

func (c *parseContext) matchSequence(s grammar.Sequence, m mode, pos int) (int, []*tree.Node, bool) {
	var nodes []*tree.Node
	cur := pos
	for i, item := range s.Items {
		if i > 0 && m == modeNormal {
			var skipped []*tree.Node
			cur, skipped = c.skip(cur)
			nodes = append(nodes, skipped...)
		}

		end, ns, ok := c.match(item, m, cur)
		if !ok {
			return pos, nil, false
		}
		cur = end
		nodes = append(nodes, ns...)
	}
	return cur, nodes, true
}

func (c *parseContext) matchChoice(ch grammar.Choice, m mode, pos int) (int, []*tree.Node, bool) {
	for _, item := range ch.Items {
		end, nodes, ok := c.match(item, m, pos)
		if ok {
			return end, nodes, true
		}
		if c.err != nil {
			break
		}
	}
	return pos, nil, false
}

func (c *parseContext) matchRepeat(r grammar.Repeat, m mode, pos int) (int, []*tree.Node, bool) {
	var nodes []*tree.Node
	cur := pos
	count := 0
	for r.Max == grammar.Unbounded || count < r.Max {
		next := cur
		var skipped []*tree.Node
		if count > 0 && m == modeNormal {
			next, skipped = c.skip(cur)
		}

		end, ns, ok := c.match(r.Item, m, next)
		if !ok {
			break
		}

		count++
		nodes = append(nodes, skipped...)
		nodes = append(nodes, ns...)
		if end == cur {
			// every following iteration would match the same empty span
			count = max(count, r.Min)
			break
		}
		cur = end
	}

	if c.err != nil || count < r.Min {
		return pos, nil, false
	}
	return cur, nodes, true
}

func (c *parseContext) matchPredicate(p grammar.Predicate, m mode, pos int) bool {
	if !p.Negative {
		_, _, ok := c.match(p.Item, m, pos)
		return ok
	}

	c.track.mute()
	_, _, ok := c.match(p.Item, m, pos)
	c.track.unmute()
	if c.err != nil {
		return false
	}
	if ok {
		if c.track.wants(pos) {
			c.track.negative(pos, p.Item.String())
		}
		return false
	}
	return true
}

func (c *parseContext) callRule(name string, m mode, pos int) (int, []*tree.Node, bool) {
	r := c.parser.grammar.Rule(name)
	if r == nil {
		c.err = grammar.MakeUnknownRuleError(name)
		return pos, nil, false
	}
	return c.invoke(r, m, bodyMode(r.Annotation, m), pos)
}

// invoke matches rule body in mode inner. Caller mode m decides whether the rule
// gets its own node and whether its name is reported in expectations.
// Nodes of a rule without own node are passed to the caller.
func (c *parseContext) invoke(r *grammar.Rule, m, inner mode, pos int) (int, []*tree.Node, bool) {
	limit := c.parser.maxDepth
	if limit > 0 && c.depth >= limit {
		c.err = recursionLimitError(c.src, pos, limit, r.Name)
		return pos, nil, false
	}

	silent := r.Annotation == grammar.Silent
	tracked := !silent && m != modeAtomic
	var mk mark
	if tracked {
		mk = c.track.mark()
	}

	c.depth++
	end, nodes, ok := c.match(r.Body, inner, pos)
	c.depth--

	if !ok {
		if tracked && c.err == nil {
			c.track.ruleFailed(pos, r.Name, mk)
		}
		if c.trace {
			logutil.Trace(c.logger, "rule failed", "rule", r.Name, "pos", pos)
		}
		return pos, nil, false
	}

	if c.trace {
		logutil.Trace(c.logger, "rule matched", "rule", r.Name, "start", pos, "end", end)
	}
	if silent || m != modeNormal {
		return end, nodes, true
	}
	return end, []*tree.Node{tree.NewNode(c.src, r.Name, pos, end, nodes)}, true
}

// skip matches whitespace* (comment whitespace*)* at pos.
// Skipping never affects expectations.
func (c *parseContext) skip(pos int) (int, []*tree.Node) {
	ws, comment := c.parser.whitespace, c.parser.comment
	if ws == nil && comment == nil {
		return pos, nil
	}

	c.track.mute()
	defer c.track.unmute()

	var nodes []*tree.Node
	pos = c.skipRule(ws, pos, &nodes)
	for comment != nil {
		end, ns, ok := c.invoke(comment, modeNormal, modeAtomic, pos)
		if !ok || end == pos {
			break
		}
		nodes = append(nodes, ns...)
		pos = c.skipRule(ws, end, &nodes)
	}
	return pos, nodes
}

func (c *parseContext) skipRule(r *grammar.Rule, pos int, nodes *[]*tree.Node) int {
	for r != nil {
		end, ns, ok := c.invoke(r, modeNormal, modeAtomic, pos)
		if !ok || end == pos {
			break
		}
		*nodes = append(*nodes, ns...)
		pos = end
	}
	return pos
}
