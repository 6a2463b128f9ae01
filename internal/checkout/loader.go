package checkout

import (
	"context"
	"sync"
)

// Loader is the process-wide one-shot future for the widget's loader
// resource. The first Get triggers the load; every concurrent and later
// caller awaits that same in-flight load instead of starting another.
// The outcome, including failure, is sticky for the process lifetime.
type Loader struct {
	load LoadFunc

	once   sync.Once
	done   chan struct{}
	widget Widget
	err    error
}

func NewLoader(load LoadFunc) *Loader {
	return &Loader{
		load: load,
		done: make(chan struct{}),
	}
}

// Get returns the shared widget, blocking until the single load resolves.
func (l *Loader) Get(ctx context.Context) (Widget, error) {
	l.once.Do(func() {
		// Detached from any one caller: a waiter giving up must not
		// cancel the load everyone else is awaiting.
		go func() {
			l.widget, l.err = l.load(context.Background())
			close(l.done)
		}()
	})

	select {
	case <-l.done:
		return l.widget, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
