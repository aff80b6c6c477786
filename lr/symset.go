package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// SymbolSet is an ordered set of symbol IDs. It is used for nullable sets,
// FIRST sets and follow sets. Iteration order is ascending ID order.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set containing ids.
func NewSymbolSet(ids ...int) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(utils.IntComparator)}
	S.Add(ids...)
	return S
}

// Add inserts ids into S.
func (S *SymbolSet) Add(ids ...int) {
	for _, id := range ids {
		S.set.Add(id)
	}
}

// Remove deletes id from S.
func (S *SymbolSet) Remove(id int) {
	S.set.Remove(id)
}

// Contains is true if id is in S.
func (S *SymbolSet) Contains(id int) bool {
	return S.set.Contains(id)
}

// Size returns the number of IDs in S.
func (S *SymbolSet) Size() int {
	return S.set.Size()
}

// Empty is true for an empty set.
func (S *SymbolSet) Empty() bool {
	return S.set.Empty()
}

// Values returns the IDs of S in ascending order.
func (S *SymbolSet) Values() []int {
	vals := make([]int, 0, S.set.Size())
	for _, x := range S.set.Values() {
		vals = append(vals, x.(int))
	}
	return vals
}

// Union adds all IDs of other to S. It returns true if S has changed.
func (S *SymbolSet) Union(other *SymbolSet) bool {
	if other == nil {
		return false
	}
	n := S.set.Size()
	for _, x := range other.set.Values() {
		S.set.Add(x)
	}
	return S.set.Size() != n
}

// Equals is true if S and other contain the same IDs.
func (S *SymbolSet) Equals(other *SymbolSet) bool {
	if other == nil {
		return S.Empty()
	}
	if S.set.Size() != other.set.Size() {
		return false
	}
	a, b := S.set.Values(), other.set.Values()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	C := NewSymbolSet()
	C.Union(S)
	return C
}

// Names renders S with symbol names of grammar g.
func (S *SymbolSet) Names(g *Grammar) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range S.Values() {
		if i > 0 {
			b.WriteByte(' ')
		}
		if A := g.Symbol(id); A != nil {
			b.WriteString(A.Name)
		} else {
			b.WriteString("?")
		}
	}
	b.WriteByte('}')
	return b.String()
}

func (S *SymbolSet) String() string {
	return S.set.String()
}
