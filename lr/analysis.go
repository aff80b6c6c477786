package lr

// LRAnalysis is an object for grammar analysis (computing nullable symbols
// and FIRST sets). Create one with Analysis(g).
type LRAnalysis struct {
	g        *Grammar
	nullable *SymbolSet
	first    []*SymbolSet // indexed by symbol ID
}

// Analysis creates an analyser for a grammar. It computes the nullable set
// and the FIRST sets immediately.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{g: g}
	ga.nullable = computeNullable(g)
	ga.first = computeFirst(g, ga.nullable)
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// IsNullable is true if A can derive the empty sequence.
func (ga *LRAnalysis) IsNullable(A *Symbol) bool {
	return A != nil && ga.nullable.Contains(A.ID)
}

// Nullable returns the set of nullable symbols.
func (ga *LRAnalysis) Nullable() *SymbolSet {
	return ga.nullable.Copy()
}

// First returns the set of terminals which may start a derivation of A.
// For a terminal, this is A itself.
func (ga *LRAnalysis) First(A *Symbol) *SymbolSet {
	if A == nil || A.ID >= len(ga.first) {
		return NewSymbolSet()
	}
	return ga.first[A.ID].Copy()
}

// FirstOfSequence returns FIRST(X1 … Xn): the FIRST sets of the symbols are
// unioned from left to right, up to and including the first symbol which
// is not nullable.
func (ga *LRAnalysis) FirstOfSequence(syms []*Symbol) *SymbolSet {
	F := NewSymbolSet()
	for _, A := range syms {
		F.Union(ga.first[A.ID])
		if !ga.IsNullable(A) {
			break
		}
	}
	return F
}

// allNullable is true if every symbol of syms is nullable, including the
// case of an empty sequence.
func (ga *LRAnalysis) allNullable(syms []*Symbol) bool {
	for _, A := range syms {
		if !ga.IsNullable(A) {
			return false
		}
	}
	return true
}

// computeNullable iterates to a fixpoint: a non-terminal is nullable if all
// the symbols of one of its rules are nullable.
func computeNullable(g *Grammar) *SymbolSet {
	nullable := NewSymbolSet()
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if nullable.Contains(r.LHS.ID) {
				continue
			}
			all := true
			for _, A := range r.rhs {
				if !nullable.Contains(A.ID) {
					all = false
					break
				}
			}
			if all {
				tracer().Debugf("%s is nullable", r.LHS)
				nullable.Add(r.LHS.ID)
				changed = true
			}
		}
	}
	return nullable
}

// computeFirst seeds every non-terminal with the leading symbols of its rules
// (stepping over nullable leading symbols), then replaces non-terminal members
// by their current FIRST sets until only terminals remain.
func computeFirst(g *Grammar, nullable *SymbolSet) []*SymbolSet {
	first := make([]*SymbolSet, len(g.symbols))
	for _, A := range g.symbols {
		if A.terminal {
			first[A.ID] = NewSymbolSet(A.ID)
		} else {
			first[A.ID] = NewSymbolSet()
		}
	}
	for _, r := range g.rules {
		for _, A := range r.rhs {
			if A != r.LHS {
				first[r.LHS.ID].Add(A.ID)
			}
			if !nullable.Contains(A.ID) {
				break
			}
		}
	}
	// expanded[N] remembers the non-terminals already substituted within FIRST(N);
	// they are never re-added, which terminates cycles of left recursion.
	expanded := make([]*SymbolSet, len(g.symbols))
	for changed := true; changed; {
		changed = false
		for _, N := range g.symbols {
			if N.terminal {
				continue
			}
			F := first[N.ID]
			for _, id := range F.Values() {
				if g.symbols[id].terminal {
					continue
				}
				if expanded[N.ID] == nil {
					expanded[N.ID] = NewSymbolSet()
				}
				F.Remove(id)
				expanded[N.ID].Add(id)
				changed = true
				for _, x := range first[id].Values() {
					if x == N.ID || expanded[N.ID].Contains(x) {
						continue
					}
					F.Add(x)
				}
			}
		}
	}
	for _, N := range g.symbols {
		if !N.terminal {
			tracer().Debugf("FIRST(%s) = %s", N, first[N.ID].Names(g))
		}
	}
	return first
}
