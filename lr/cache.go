package lr

import "sync"

// TableCache holds parser tables, keyed by grammar fingerprint. Every table
// is built at most once, even if requested concurrently. A cached table
// refers to the grammar it has been built from, including its reducers:
// clients changing the semantics of a grammar should change its version.
type TableCache struct {
	mx      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	table *Table
}

// NewTableCache creates an empty cache.
func NewTableCache() *TableCache {
	return &TableCache{entries: make(map[string]*cacheEntry)}
}

// Table returns the parser table for g, building it on first request.
func (tc *TableCache) Table(g *Grammar) *Table {
	key := g.Fingerprint()
	tc.mx.Lock()
	entry, ok := tc.entries[key]
	if !ok {
		entry = &cacheEntry{}
		tc.entries[key] = entry
	}
	tc.mx.Unlock()
	entry.once.Do(func() {
		tracer().Infof("building parser table for grammar %s (%s)", g.Name, key)
		lrgen := NewTableGenerator(Analysis(g))
		lrgen.CreateTables()
		entry.table = lrgen.Table()
	})
	return entry.table
}

// Size returns the number of cached tables.
func (tc *TableCache) Size() int {
	tc.mx.Lock()
	defer tc.mx.Unlock()
	return len(tc.entries)
}

var defaultCache = NewTableCache()

// CachedTable returns the parser table for g from a process-wide cache.
func CachedTable(g *Grammar) *Table {
	return defaultCache.Table(g)
}
