/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the edge part of parser tables: for every state (row) and
grammar symbol (column) it stores the target state of a SHIFT or GOTO
transition. Every entry in the table is either a single int32 or a pair
(int32,int32).

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
	"strings"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    intPair
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// find returns the position of (i,j) within the triplets, or the position
// where it would have to be inserted.
func (m *IntMatrix) find(i, j int) (int, bool) {
	at := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
	return at, at < len(m.values) && m.values[at].storedAt(i, j)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if at, ok := m.find(i, j); ok {
		return m.values[at].value.a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if at, ok := m.find(i, j); ok {
		return m.values[at].value.a, m.values[at].value.b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j).
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j).
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	if i < 0 || j < 0 || i >= m.rowcnt || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix: index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	at, found := m.find(i, j)
	if found {
		if doAdd {
			m.values[at].value = addIntValue(m.values[at].value, value, m.nullval)
		} else {
			m.values[at].value = intPair{value, m.nullval}
		}
		return m
	}
	tnew := triplet{row: i, col: j, value: intPair{value, m.nullval}}
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // shift remainder one index to the right
	m.values[at] = tnew
	return m
}

// EachInRow calls f for every position set within row i, in column order.
func (m *IntMatrix) EachInRow(i int, f func(j int, value int32)) {
	at, _ := m.find(i, 0)
	for ; at < len(m.values) && m.values[at].row == i; at++ {
		f(m.values[at].col, m.values[at].value.a)
	}
}

func (m *IntMatrix) String() string {
	var b strings.Builder
	for _, t := range m.values {
		b.WriteString(fmt.Sprintf("(%d,%d)=%s ", t.row, t.col, t.value))
	}
	return strings.TrimSpace(b.String())
}

func addIntValue(v intPair, n int32, nullval int32) intPair {
	if v.a == nullval {
		v.a = n
	} else {
		v.b = n // a full entry overwrites the second value
	}
	return v
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}
