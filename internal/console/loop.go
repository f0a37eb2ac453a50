// Package console hosts the screen in a terminal: a single display goroutine,
// a text renderer and a line-oriented tap source.
package console

import (
	"context"
	"sync"
)

// Loop is a Dispatcher backed by an unbounded FIFO drained by one goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	closed  bool
	stopped chan struct{}
}

// NewLoop creates a Loop. Actions run only once Run is called.
func NewLoop() *Loop {
	return &Loop{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

// Post queues action for the display goroutine. It never runs action inline.
// Actions posted after Close are dropped.
func (l *Loop) Post(action func()) {
	if action == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, action)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes queued actions in order until ctx is done or Close has been called
// and the queue is drained.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		for {
			action, ok := l.next()
			if !ok {
				break
			}
			action()
		}

		l.mu.Lock()
		done := l.closed && len(l.queue) == 0
		l.mu.Unlock()
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting actions; Run returns after draining what is queued.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	action := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return action, true
}
