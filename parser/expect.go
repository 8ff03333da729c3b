package parser

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

type expectKind int

const (
	terminalExpect expectKind = iota
	ruleExpect
	negativeExpect
)

type expectation struct {
	kind expectKind
	desc string
}

// tracker keeps expectations recorded at the furthest failure offset.
// Entries recorded before furthest are stale and dropped.
type tracker struct {
	furthest int
	items    *linkedhashset.Set
	// rules counts rule reports at furthest, duplicates included
	rules int
	muted int
}

// mark is tracker state captured at rule entry.
type mark struct {
	furthest, size, rules int
}

func newTracker() *tracker {
	return &tracker{items: linkedhashset.New()}
}

// mute suspends recording until matching unmute.
func (t *tracker) mute() {
	t.muted++
}

func (t *tracker) unmute() {
	t.muted--
}

// wants reports whether an expectation at pos would be recorded.
func (t *tracker) wants(pos int) bool {
	return t.muted == 0 && pos >= t.furthest
}

func (t *tracker) add(pos int, x expectation) {
	if !t.wants(pos) {
		return
	}

	if pos > t.furthest {
		t.furthest = pos
		t.items.Clear()
		t.rules = 0
	}
	t.items.Add(x)
	if x.kind == ruleExpect {
		t.rules++
	}
}

func (t *tracker) terminal(pos int, desc string) {
	t.add(pos, expectation{terminalExpect, desc})
}

func (t *tracker) negative(pos int, desc string) {
	t.add(pos, expectation{negativeExpect, desc})
}

func (t *tracker) mark() mark {
	return mark{t.furthest, t.items.Size(), t.rules}
}

// ruleFailed reports rule that failed at its start offset pos.
// Terminal expectations recorded inside the rule at pos are replaced with the rule name,
// unless an inner rule has already reported itself there.
func (t *tracker) ruleFailed(pos int, name string, m mark) {
	if !t.wants(pos) {
		return
	}

	if pos > t.furthest {
		t.add(pos, expectation{ruleExpect, name})
		return
	}

	from, rules := 0, t.rules
	if m.furthest == t.furthest {
		from, rules = m.size, t.rules-m.rules
	}
	if rules > 0 {
		return
	}

	for _, v := range t.items.Values()[from:] {
		if v.(expectation).kind == terminalExpect {
			t.items.Remove(v)
		}
	}
	t.add(pos, expectation{ruleExpect, name})
}

// lists returns expected and unexpected descriptions in recording order.
func (t *tracker) lists() (expected, unexpected []string) {
	it := t.items.Iterator()
	for it.Next() {
		x := it.Value().(expectation)
		if x.kind == negativeExpect {
			unexpected = append(unexpected, x.desc)
		} else {
			expected = append(expected, x.desc)
		}
	}
	return
}
