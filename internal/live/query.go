package live

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// LoadFunc computes a fresh snapshot of a query.
type LoadFunc[T any] func(ctx context.Context) (T, error)

type query[T any] struct {
	hub    *Hub
	key    string
	tables []Table
	load   LoadFunc[T]

	refreshMu sync.Mutex

	mu     sync.Mutex
	latest T
	subs   map[uint64]*Subscription[T]
	nextID uint64
	closed bool
}

// Observe attaches to the query identified by key, creating and loading it
// if no other observer holds it. The returned subscription delivers the
// latest snapshot first and then one snapshot per mutation of tables, in
// mutation order. It is released by Close or when ctx is done.
func Observe[T any](ctx context.Context, h *Hub, key string, tables []Table, load LoadFunc[T]) (*Subscription[T], error) {
	unlock := h.lockTables(tables)
	defer unlock()

	for {
		existing, ok, err := h.lookup(key)
		if err != nil {
			return nil, err
		}

		var q *query[T]
		if ok {
			typed, match := existing.(*query[T])
			if !match {
				return nil, fmt.Errorf("live: query %q already registered with another snapshot type", key)
			}
			q = typed
		} else {
			snapshot, err := load(ctx)
			if err != nil {
				return nil, err
			}
			q = &query[T]{
				hub:    h,
				key:    key,
				tables: append([]Table(nil), tables...),
				load:   load,
				latest: snapshot,
				subs:   make(map[uint64]*Subscription[T]),
			}
			if err := h.register(key, q); err != nil {
				return nil, err
			}
		}

		// The last observer of an existing query may have left between
		// lookup and attach; start over with a fresh query in that case.
		sub, attached := q.attach()
		if !attached {
			continue
		}
		sub.watch(ctx)
		return sub, nil
	}
}

func (q *query[T]) attach() (*Subscription[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, false
	}
	q.nextID++
	id := q.nextID
	sub := newSubscription[T](func() { q.detach(id) })
	q.subs[id] = sub
	sub.push(q.latest)
	return sub, true
}

func (q *query[T]) detach(id uint64) {
	q.hub.mu.Lock()
	defer q.hub.mu.Unlock()
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.subs[id]; !ok {
		return
	}
	delete(q.subs, id)
	if len(q.subs) == 0 {
		q.closed = true
		q.hub.unregister(q.key, q)
	}
}

func (q *query[T]) dependsOn(tables []Table) bool {
	for _, mine := range q.tables {
		for _, t := range tables {
			if mine == t {
				return true
			}
		}
	}
	return false
}

// refresh recomputes the snapshot and pushes it to every subscriber. Callers
// hold the write locks of the query's tables.
func (q *query[T]) refresh() {
	q.refreshMu.Lock()
	defer q.refreshMu.Unlock()

	snapshot, err := q.load(context.Background())

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	if err != nil {
		log.Printf("[LIVE] refresh %s failed, keeping last snapshot: %v", q.key, err)
		return
	}
	q.latest = snapshot
	for _, sub := range q.subs {
		sub.push(snapshot)
	}
}

func (q *query[T]) shutdown() {
	q.mu.Lock()
	subs := q.subs
	q.subs = make(map[uint64]*Subscription[T])
	q.closed = true
	q.mu.Unlock()

	for _, sub := range subs {
		sub.terminate()
	}
}
