package lr

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/npillmayer/lrcalc/lr/iteratable"
)

// Item is an LR item: a rule with a dot position and a set of follow
// symbols, i.e. the terminals which may appear after the item's rule is
// completed.
//
//    [ E ➞ E • + T, {#eof +} ]
//
type Item struct {
	rule   *Rule
	dot    int
	follow *SymbolSet
}

// StartItem returns an item for a rule with the dot at the front.
func StartItem(r *Rule) Item {
	return Item{rule: r, dot: 0, follow: NewSymbolSet()}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position, 0 … len(RHS).
func (i Item) Dot() int {
	return i.dot
}

// Follow returns the follow set of an item.
func (i Item) Follow() *SymbolSet {
	return i.follow
}

// PeekSymbol returns the symbol after the dot, or nil for completed items.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// IsComplete is true if the dot has reached the end of the rule.
func (i Item) IsComplete() bool {
	return i.dot >= len(i.rule.rhs)
}

// Advance returns a copy of i with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1, follow: i.follow.Copy()}
}

// sameCore is true if both items have the same rule and dot position.
func (i Item) sameCore(j Item) bool {
	return i.rule == j.rule && i.dot == j.dot
}

// equals compares items including their follow sets.
func (i Item) equals(j Item) bool {
	return i.sameCore(j) && i.follow.Equals(j.follow)
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" ➞")
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString("]")
	return b.String()
}

// StringWith renders an item together with its follow set.
func (i Item) StringWith(g *Grammar) string {
	return fmt.Sprintf("%s %s", i, i.follow.Names(g))
}

type itemCore struct {
	rule, dot int
}

// === Closure ===============================================================

// closure expands a list of seed items to the closed item list.
//
// Follow symbols are accumulated per non-terminal within this closure: every
// item with non-terminal A after the dot contributes FIRST(rest) to the
// follows of A, and if rest is nullable its own LHS as a placeholder. After
// all items are collected, placeholders are substituted by the follows of the
// symbol they stand for. Every item finally receives the follows of its LHS.
//
// The result is sorted by rule serial and dot, so equal item sets compare
// equal position by position.
func (ga *LRAnalysis) closure(seeds []Item) []Item {
	follows := make(map[int]*SymbolSet)
	followsOf := func(A *Symbol) *SymbolSet {
		F, ok := follows[A.ID]
		if !ok {
			F = NewSymbolSet()
			follows[A.ID] = F
		}
		return F
	}
	contribute := func(r *Rule, dot int) {
		if dot >= len(r.rhs) || r.rhs[dot].terminal {
			return
		}
		rest := r.rhs[dot+1:]
		F := followsOf(r.rhs[dot])
		F.Union(ga.FirstOfSequence(rest))
		if ga.allNullable(rest) {
			F.Add(r.LHS.ID)
		}
	}
	C := iteratable.NewSet(len(seeds))
	for _, item := range seeds {
		followsOf(item.rule.LHS).Union(item.follow)
		contribute(item.rule, item.dot)
		C.Add(itemCore{item.rule.Serial, item.dot})
	}
	expanded := NewSymbolSet()
	C.IterateOnce()
	for C.Next() {
		core := C.Item().(itemCore)
		r := ga.g.rules[core.rule]
		if core.dot >= len(r.rhs) {
			continue
		}
		A := r.rhs[core.dot]
		if A.terminal || expanded.Contains(A.ID) {
			continue
		}
		expanded.Add(A.ID)
		followsOf(A)
		for _, p := range ga.g.Rules(A) {
			contribute(p, 0)
			C.Add(itemCore{p.Serial, 0})
		}
	}
	ga.resolveFollows(follows)
	items := make([]Item, 0, C.Size())
	for _, x := range C.Values() {
		core := x.(itemCore)
		r := ga.g.rules[core.rule]
		items = append(items, Item{rule: r, dot: core.dot, follow: follows[r.LHS.ID].Copy()})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].rule.Serial != items[j].rule.Serial {
			return items[i].rule.Serial < items[j].rule.Serial
		}
		return items[i].dot < items[j].dot
	})
	return items
}

// resolveFollows substitutes non-terminal entries of follow sets by the
// follow set of that non-terminal, until only terminals remain.
func (ga *LRAnalysis) resolveFollows(follows map[int]*SymbolSet) {
	ids := make([]int, 0, len(follows))
	for id := range follows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	substituted := make(map[int]*SymbolSet)
	for changed := true; changed; {
		changed = false
		for _, id := range ids {
			F := follows[id]
			for _, x := range F.Values() {
				if ga.g.symbols[x].terminal {
					continue
				}
				F.Remove(x)
				changed = true
				seen, ok := substituted[id]
				if !ok {
					seen = NewSymbolSet()
					substituted[id] = seen
				}
				seen.Add(x)
				src, ok := follows[x]
				if !ok {
					continue
				}
				for _, y := range src.Values() {
					if y == id || (!ga.g.symbols[y].terminal && seen.Contains(y)) {
						continue
					}
					F.Add(y)
				}
			}
		}
	}
}

// itemsString is a debugging helper.
func itemsString(items []Item, g *Grammar) string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, item := range items {
		if k > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(item.StringWith(g))
	}
	b.WriteString(" }")
	return b.String()
}
