package live

import (
	"context"
	"sync"
)

// Subscription is a cancellable handle on a live query. Snapshots are
// queued per subscriber, so a slow reader never blocks writers or other
// readers and never misses a snapshot.
type Subscription[T any] struct {
	updates chan T
	done    chan struct{}
	notify  chan struct{}

	mu    sync.Mutex
	queue []T

	once   sync.Once
	detach func()
}

func newSubscription[T any](detach func()) *Subscription[T] {
	s := &Subscription[T]{
		updates: make(chan T),
		done:    make(chan struct{}),
		notify:  make(chan struct{}, 1),
		detach:  detach,
	}
	go s.run()
	return s
}

// Updates returns the ordered snapshot stream. It is closed after Close.
func (s *Subscription[T]) Updates() <-chan T {
	return s.updates
}

// Done is closed once the subscription has been released.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Close releases the subscription. It is safe to call more than once.
func (s *Subscription[T]) Close() {
	s.detach()
	s.terminate()
}

func (s *Subscription[T]) terminate() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *Subscription[T]) watch(ctx context.Context) {
	if ctx.Done() == nil {
		return
	}
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
}

func (s *Subscription[T]) push(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Subscription[T]) pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if len(s.queue) == 0 {
		return zero, false
	}
	v := s.queue[0]
	s.queue[0] = zero
	s.queue = s.queue[1:]
	return v, true
}

func (s *Subscription[T]) run() {
	defer close(s.updates)

	for {
		select {
		case <-s.done:
			return
		case <-s.notify:
		}

		for {
			v, ok := s.pop()
			if !ok {
				break
			}
			select {
			case s.updates <- v:
			case <-s.done:
				return
			}
		}
	}
}
