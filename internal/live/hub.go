package live

import (
	"errors"
	"log"
	"sort"
	"sync"
)

// Table names a store table whose mutations are tracked.
type Table string

const (
	TableItems       Table = "items"
	TableAnnotations Table = "annotations"
)

// Op is the kind of mutation recorded in a table log.
type Op string

const (
	OpInsert     Op = "insert"
	OpBulkInsert Op = "bulk_insert"
	OpUpdate     Op = "update"
	OpDelete     Op = "delete"
)

// ErrClosed is returned when observing through a closed hub.
var ErrClosed = errors.New("live: hub closed")

const defaultLogLimit = 256

// Change is one entry of a table's mutation log.
type Change struct {
	Table   Table  `json:"table"`
	Op      Op     `json:"op"`
	ID      uint   `json:"id,omitempty"`
	Rows    int    `json:"rows"`
	Version uint64 `json:"version"`
}

type tableLog struct {
	version uint64
	changes []Change
}

// refresher is the type-erased side of a query.
type refresher interface {
	dependsOn(tables []Table) bool
	refresh()
	shutdown()
}

// Hub serializes writes per table and fans out recomputed snapshots.
type Hub struct {
	lockMu     sync.Mutex
	writeLocks map[Table]*sync.Mutex

	mu       sync.Mutex
	logs     map[Table]*tableLog
	queries  map[string]refresher
	logLimit int
	closed   bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		writeLocks: make(map[Table]*sync.Mutex),
		logs:       make(map[Table]*tableLog),
		queries:    make(map[string]refresher),
		logLimit:   defaultLogLimit,
	}
}

// Mutate runs fn as the single writer of every table in tables. fn may fill
// in the log entry (ID, Rows). When fn succeeds the entry is logged against
// each table and every dependent query is recomputed and pushed before the
// locks are released. When fn fails nothing is published and observers keep
// their last snapshot.
func (h *Hub) Mutate(tables []Table, op Op, fn func(change *Change) error) error {
	unlock := h.lockTables(tables)
	defer unlock()

	change := Change{Op: op}
	if err := fn(&change); err != nil {
		return err
	}

	h.record(tables, change)
	h.publish(tables)
	return nil
}

// Version returns how many successful mutations touched the table.
func (h *Hub) Version(table Table) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if l, ok := h.logs[table]; ok {
		return l.version
	}
	return 0
}

// Changes returns the most recent mutation log entries of a table, oldest first.
func (h *Hub) Changes(table Table) []Change {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.logs[table]
	if !ok {
		return nil
	}
	out := make([]Change, len(l.changes))
	copy(out, l.changes)
	return out
}

// ActiveQueries returns the number of queries with at least one subscriber.
func (h *Hub) ActiveQueries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queries)
}

// Close releases every subscription. Mutations keep working but nothing is
// observed anymore.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	queries := h.queries
	h.queries = make(map[string]refresher)
	h.mu.Unlock()

	for _, q := range queries {
		q.shutdown()
	}
}

// lockTables acquires the write locks of tables in a fixed order.
func (h *Hub) lockTables(tables []Table) func() {
	names := make([]string, 0, len(tables))
	seen := make(map[Table]bool, len(tables))
	for _, t := range tables {
		if seen[t] {
			continue
		}
		seen[t] = true
		names = append(names, string(t))
	}
	sort.Strings(names)

	locks := make([]*sync.Mutex, 0, len(names))
	h.lockMu.Lock()
	for _, name := range names {
		l, ok := h.writeLocks[Table(name)]
		if !ok {
			l = &sync.Mutex{}
			h.writeLocks[Table(name)] = l
		}
		locks = append(locks, l)
	}
	h.lockMu.Unlock()

	for _, l := range locks {
		l.Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

func (h *Hub) record(tables []Table, change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, t := range tables {
		l, ok := h.logs[t]
		if !ok {
			l = &tableLog{}
			h.logs[t] = l
		}
		l.version++

		entry := change
		entry.Table = t
		entry.Version = l.version
		l.changes = append(l.changes, entry)
		if len(l.changes) > h.logLimit {
			l.changes = l.changes[len(l.changes)-h.logLimit:]
		}
	}
}

func (h *Hub) publish(tables []Table) {
	h.mu.Lock()
	targets := make([]refresher, 0, len(h.queries))
	for _, q := range h.queries {
		if q.dependsOn(tables) {
			targets = append(targets, q)
		}
	}
	h.mu.Unlock()

	for _, q := range targets {
		q.refresh()
	}
}

func (h *Hub) lookup(key string) (refresher, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false, ErrClosed
	}
	q, ok := h.queries[key]
	return q, ok, nil
}

func (h *Hub) register(key string, q refresher) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	h.queries[key] = q
	return nil
}

// unregister drops key if it still maps to q.
func (h *Hub) unregister(key string, q refresher) {
	if current, ok := h.queries[key]; ok && current == q {
		delete(h.queries, key)
		log.Printf("[LIVE] query %s released", key)
	}
}
