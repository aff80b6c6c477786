package iteratable

// Set is an insertion-ordered set of comparable items. The zero value is not
// usable, create sets with NewSet.
type Set struct {
	items  []interface{}
	index  map[interface{}]int
	cursor int // position of the next item to be visited by Next
	curr   interface{}
}

// NewSet creates an empty set with an initial capacity.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items: make([]interface{}, 0, capacity),
		index: make(map[interface{}]int, capacity),
	}
}

// Add inserts items not yet contained. Returns the set.
func (s *Set) Add(items ...interface{}) *Set {
	for _, x := range items {
		if _, ok := s.index[x]; ok {
			continue
		}
		s.index[x] = len(s.items)
		s.items = append(s.items, x)
	}
	return s
}

// Size returns the number of elements in s.
func (s *Set) Size() int {
	return len(s.items)
}

// Values returns the elements of s in insertion order, as a copy.
func (s *Set) Values() []interface{} {
	vals := make([]interface{}, len(s.items))
	copy(vals, s.items)
	return vals
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts an iteration over s. Elements added to s while
// iterating will be visited, too.
func (s *Set) IterateOnce() {
	s.cursor = 0
	s.curr = nil
}

// Next moves to the next element. It returns false when all elements have
// been visited.
func (s *Set) Next() bool {
	if s.cursor >= len(s.items) {
		s.curr = nil
		return false
	}
	s.curr = s.items[s.cursor]
	s.cursor++
	return true
}

// Item returns the element at the current iteration position.
func (s *Set) Item() interface{} {
	return s.curr
}
