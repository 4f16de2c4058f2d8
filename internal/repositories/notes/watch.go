package notes

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"notekeeper/internal/models"
)

// notifier fans a change signal out to watch subscribers. The signal carries
// no payload; each watcher re-queries its own snapshot.
type notifier struct {
	mu   sync.Mutex
	subs map[string]chan struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]chan struct{})}
}

func (n *notifier) subscribe() (string, chan struct{}) {
	// Buffer of one coalesces bursts of mutations into a single re-emit.
	ch := make(chan struct{}, 1)
	id := uuid.NewString()

	n.mu.Lock()
	n.subs[id] = ch
	n.mu.Unlock()

	return id, ch
}

func (n *notifier) unsubscribe(id string) {
	n.mu.Lock()
	delete(n.subs, id)
	n.mu.Unlock()
}

func (n *notifier) broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Watch returns a channel that receives the current full note set immediately
// and again after every mutation. The channel is closed and the subscription
// released when ctx is cancelled.
func (r *SQLiteRepository) Watch(ctx context.Context) (<-chan []models.Note, error) {
	out := make(chan []models.Note, 1)
	id, signal := r.notifier.subscribe()

	go func() {
		defer close(out)
		defer r.notifier.unsubscribe(id)

		for {
			snapshot, err := r.GetAll(ctx)
			if err != nil {
				return
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// WatchByID streams the note with the given id, sending nil when it is
// absent. Closed when ctx is cancelled.
func (r *SQLiteRepository) WatchByID(ctx context.Context, noteID string) (<-chan *models.Note, error) {
	out := make(chan *models.Note, 1)
	id, signal := r.notifier.subscribe()

	go func() {
		defer close(out)
		defer r.notifier.unsubscribe(id)

		for {
			note, err := r.GetByID(ctx, noteID)
			if err != nil {
				return
			}
			select {
			case out <- note:
			case <-ctx.Done():
				return
			}
			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
