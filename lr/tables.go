package lr

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/lrcalc/lr/sparse"
)

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing, and Section 6.5 LALR(1)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar, i.e. a row of the
// parsing table. It holds a closed item set and edges to successor states.
type CFSMState struct {
	ID     int        // serial ID of this state
	items  []Item     // configuration items within this state
	edges  []cfsmEdge // transitions, in order of first appearance of their label
	Accept bool       // is this an accepting state?
}

// CFSM edge to another state, labeled with a grammar symbol
type cfsmEdge struct {
	label *Symbol
	to    int
}

// Items returns the items of a state.
func (s *CFSMState) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Dump is a debugging helper
func (s *CFSMState) Dump(g *Grammar) {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.items {
		tracer().Debugf("    %s", i.StringWith(g))
	}
	for _, e := range s.edges {
		tracer().Debugf("    --%s--> %03d", e.label, e.to)
	}
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, len(s.items))
}

// CFSM is the characteristic finite state machine for a LR grammar.
// Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes.
type CFSM struct {
	g      *Grammar
	states []*CFSMState
	S0     *CFSMState // start state
}

// States returns the states of the CFSM, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	return c.states
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and the parser table for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	table        *Table
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// The CFSM will be created, if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// Table returns the parser table. It has to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) Table() *Table {
	if lrgen.table == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.table
}

// CreateTables creates the CFSM and the parser table.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.dfa = lrgen.buildCFSM()
	lrgen.table = lrgen.BuildTable()
	lrgen.HasConflicts = lrgen.table.conflicts > 0
}

// buildCFSM explores the item sets breadth-first, starting from the closure of
// the start rule with follow {#eof}. A successor row is identified with an
// existing row (finalized, current or pending) if their items are equal,
// follow sets included. Rows are numbered in order of discovery. Finally
// rows with equal cores are merged.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	g := lrgen.g
	seed := StartItem(g.rules[0])
	seed.follow.Add(g.EOF().ID)
	S0 := &CFSMState{ID: 0, items: lrgen.ga.closure([]Item{seed})}
	var done []*CFSMState
	pending := arraylist.New()
	pending.Add(S0)
	for !pending.Empty() {
		x, _ := pending.Get(0)
		pending.Remove(0)
		row := x.(*CFSMState)
		if row.ID != len(done) {
			panic(fmt.Sprintf("lr: row %d materialized at index %d", row.ID, len(done)))
		}
		for _, grp := range partitionByPeek(row.items) {
			succ := lrgen.ga.closure(advanceAll(grp.items))
			target := findRow(succ, done, row, pending)
			if target < 0 {
				target = len(done) + 1 + pending.Size()
				pending.Add(&CFSMState{ID: target, items: succ})
			}
			row.edges = append(row.edges, cfsmEdge{label: grp.sym, to: target})
		}
		done = append(done, row)
	}
	tracer().Infof("%d item sets before merging", len(done))
	states := mergeCores(done)
	tracer().Infof("%d states after merging", len(states))
	for _, s := range states {
		s.Dump(g)
	}
	return &CFSM{g: g, states: states, S0: states[0]}
}

type itemGroup struct {
	sym   *Symbol
	items []Item
}

// partitionByPeek groups items by the symbol after the dot, in order of first
// appearance. Completed items are not part of any group.
func partitionByPeek(items []Item) []itemGroup {
	var groups []itemGroup
	at := make(map[*Symbol]int)
	for _, i := range items {
		A := i.PeekSymbol()
		if A == nil {
			continue
		}
		k, ok := at[A]
		if !ok {
			k = len(groups)
			at[A] = k
			groups = append(groups, itemGroup{sym: A})
		}
		groups[k].items = append(groups[k].items, i)
	}
	return groups
}

func advanceAll(items []Item) []Item {
	adv := make([]Item, len(items))
	for k, i := range items {
		adv[k] = i.Advance()
	}
	return adv
}

// findRow searches for a row with items equal to items, returning its ID or -1.
func findRow(items []Item, done []*CFSMState, current *CFSMState, pending *arraylist.List) int {
	for _, s := range done {
		if equalItems(s.items, items) {
			return s.ID
		}
	}
	if equalItems(current.items, items) {
		return current.ID
	}
	it := pending.Iterator()
	for it.Next() {
		s := it.Value().(*CFSMState)
		if equalItems(s.items, items) {
			return s.ID
		}
	}
	return -1
}

func equalItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !a[k].equals(b[k]) {
			return false
		}
	}
	return true
}

func sameCores(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !a[k].sameCore(b[k]) {
			return false
		}
	}
	return true
}

// mergeCores merges rows with equal cores, in order of their IDs. Follow sets
// of merged rows are unioned item by item. Edge targets are translated to the
// IDs of the representatives.
func mergeCores(rows []*CFSMState) []*CFSMState {
	indexMap := make([]int, len(rows))
	merged := make([]bool, len(rows))
	var reduced []*CFSMState
	for k, row := range rows {
		if merged[k] {
			continue
		}
		rep := &CFSMState{ID: len(reduced), edges: row.edges}
		for _, i := range row.items {
			rep.items = append(rep.items, Item{rule: i.rule, dot: i.dot, follow: i.follow.Copy()})
		}
		indexMap[k] = rep.ID
		for j := k + 1; j < len(rows); j++ {
			if merged[j] || !sameCores(row.items, rows[j].items) {
				continue
			}
			tracer().Debugf("merging row %d into row %d", j, k)
			for n := range rep.items {
				rep.items[n].follow.Union(rows[j].items[n].follow)
			}
			merged[j] = true
			indexMap[j] = rep.ID
		}
		reduced = append(reduced, rep)
	}
	for _, s := range reduced {
		edges := make([]cfsmEdge, len(s.edges))
		for k, e := range s.edges {
			edges[k] = cfsmEdge{label: e.label, to: indexMap[e.to]}
		}
		s.edges = edges
	}
	return reduced
}

// === Parser Table ==========================================================

// ActionKind denotes the variants of parser actions.
type ActionKind uint8

// Parser actions, in order of priority.
const (
	AcceptAction ActionKind = iota + 1
	ShiftAction
	ReduceAction
	GotoAction
)

// Action is an entry of a table cell.
//
//    Accept: input accepted
//    Shift:  consume the lookahead, go to State
//    Reduce: reduce by Rule
//    Goto:   after reducing to a non-terminal, go to State
//
type Action struct {
	Kind  ActionKind
	State int   // target state for Shift and Goto
	Rule  *Rule // rule for Reduce
}

func (a Action) String() string {
	switch a.Kind {
	case AcceptAction:
		return "acc"
	case ShiftAction:
		return fmt.Sprintf("s%d", a.State)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Rule.Serial)
	case GotoAction:
		return fmt.Sprintf("g%d", a.State)
	}
	return "<none>"
}

// Table is a parser table: for every state and grammar symbol a cell of
// actions. Cells for terminals hold Shift, Reduce and Accept actions, cells for
// non-terminals hold Goto actions. Within a cell, actions are ordered
// by priority: Accept before Shift before Reduce.
//
// A Table is immutable and may be used by any number of parsers concurrently.
type Table struct {
	g         *Grammar
	cfsm      *CFSM
	edges     *sparse.IntMatrix // targets of shift and goto transitions
	cells     []map[int][]Action
	conflicts int
}

// BuildTable constructs the parser table from the CFSM. This is normally not
// called directly, but rather via CreateTables().
//
// Edges labeled with a terminal produce Shift actions, edges labeled with a
// non-terminal Goto actions. For every completed item a Reduce action is
// produced for every follow symbol, except for the start rule, which
// produces an Accept action for #eof.
func (lrgen *TableGenerator) BuildTable() *Table {
	cfsm := lrgen.CFSM()
	g := lrgen.g
	tracer().Infof("parser table of size %d x %d", cfsm.Size(), g.SymbolCount())
	t := &Table{
		g:     g,
		cfsm:  cfsm,
		edges: sparse.NewIntMatrix(cfsm.Size(), g.SymbolCount(), sparse.DefaultNullValue),
		cells: make([]map[int][]Action, cfsm.Size()),
	}
	for _, s := range cfsm.states {
		cells := make(map[int][]Action)
		for _, e := range s.edges {
			t.edges.Set(s.ID, e.label.ID, int32(e.to))
			kind := GotoAction
			if e.label.terminal {
				kind = ShiftAction
			}
			cells[e.label.ID] = append(cells[e.label.ID], Action{Kind: kind, State: e.to})
		}
		for _, i := range s.items {
			if !i.IsComplete() {
				continue
			}
			if i.rule.Serial == 0 {
				s.Accept = true
				cells[g.EOF().ID] = append(cells[g.EOF().ID], Action{Kind: AcceptAction})
				continue
			}
			for _, la := range i.follow.Values() {
				cells[la] = appendReduce(cells[la], i.rule)
			}
		}
		for la, cell := range cells {
			sort.SliceStable(cell, func(a, b int) bool { return cell[a].Kind < cell[b].Kind })
			if len(cell) > 1 {
				t.conflicts++
				tracer().Debugf("conflict in state %d for %s: %v", s.ID, g.Symbol(la), cell)
			}
		}
		t.cells[s.ID] = cells
	}
	if t.conflicts > 0 {
		tracer().Infof("parser table has %d cells with conflicting actions", t.conflicts)
	}
	return t
}

func appendReduce(cell []Action, r *Rule) []Action {
	for _, a := range cell {
		if a.Kind == ReduceAction && a.Rule == r {
			return cell
		}
	}
	return append(cell, Action{Kind: ReduceAction, Rule: r})
}

// Grammar returns the grammar of the table.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// CFSM returns the state machine the table has been built from.
func (t *Table) CFSM() *CFSM {
	return t.cfsm
}

// StateCount returns the number of states (rows).
func (t *Table) StateCount() int {
	return len(t.cells)
}

// Conflicts returns the number of cells holding more than one action.
func (t *Table) Conflicts() int {
	return t.conflicts
}

// Actions returns the actions for a state and a lookahead symbol, ordered by
// priority. Clients must not modify the result.
func (t *Table) Actions(state int, A *Symbol) []Action {
	if state < 0 || state >= len(t.cells) || A == nil {
		return nil
	}
	return t.cells[state][A.ID]
}

// Goto returns the target state for a transition from state on symbol A.
func (t *Table) Goto(state int, A *Symbol) (int, bool) {
	if state < 0 || state >= len(t.cells) || A == nil {
		return 0, false
	}
	v := t.edges.Value(state, A.ID)
	if v == t.edges.NullValue() {
		return 0, false
	}
	return int(v), true
}

type tableSnapshot struct {
	Grammar string
	States  [][]string
	Cells   []map[string]string
}

// Fingerprint returns a hash over the grammar, all states with their items
// and follow sets, and all cells. Tables built from the same grammar have
// the same fingerprint.
func (t *Table) Fingerprint() string {
	snap := tableSnapshot{Grammar: t.g.Fingerprint()}
	for _, s := range t.cfsm.states {
		var items []string
		for _, i := range s.items {
			items = append(items, i.StringWith(t.g))
		}
		snap.States = append(snap.States, items)
		cells := make(map[string]string)
		for la, cell := range t.cells[s.ID] {
			cells[t.g.Symbol(la).Name] = fmt.Sprintf("%v", cell)
		}
		snap.Cells = append(snap.Cells, cells)
	}
	hash, err := structhash.Hash(snap, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash parser table: %v", err))
	}
	return hash
}
