// Package live implements the realtime layer: a change broker that fans out
// per-collection invalidation signals, query descriptors with structural
// equality, and generic subscribers that refetch on every signal.
package live

import "sync"

// Broker tracks a revision counter per collection and wakes watchers when it
// advances. Signals are coalesced: a watcher that has not drained its channel
// sees one wakeup for any number of intervening notifies.
type Broker struct {
	mu       sync.Mutex
	revs     map[string]uint64
	watchers map[string]map[int]chan struct{}
	nextID   int
}

func NewBroker() *Broker {
	return &Broker{
		revs:     make(map[string]uint64),
		watchers: make(map[string]map[int]chan struct{}),
	}
}

// Notify records a change to the collection and wakes its watchers.
func (b *Broker) Notify(collection string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revs[collection]++
	for _, ch := range b.watchers[collection] {
		select {
		case ch <- struct{}{}:
		default: // watcher already has a pending signal
		}
	}
}

// Revision returns the current revision of the collection. A collection that
// has never been notified is at revision 0.
func (b *Broker) Revision(collection string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revs[collection]
}

// Watch registers a watcher on the collection. The returned channel receives
// one value per coalesced change batch. cancel unregisters the watcher; after
// cancel returns no further signals are delivered.
func (b *Broker) Watch(collection string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.watchers[collection] == nil {
		b.watchers[collection] = make(map[int]chan struct{})
	}
	b.watchers[collection][id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.watchers[collection], id)
		b.mu.Unlock()
	}
	return ch, cancel
}

// WatcherCount reports registered watchers on the collection. Test hook.
func (b *Broker) WatcherCount(collection string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.watchers[collection])
}
