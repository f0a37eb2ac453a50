package reporters

import (
	"context"
	"sync"
	"time"

	"github.com/samvad-hq/shapes-console/internal/logger"
)

const defaultReportTimeout = 10 * time.Second

// Async queues events and delivers them from a single background goroutine so
// callers on the display goroutine never wait on the network.
type Async struct {
	fanout  *Fanout
	queue   chan Event
	log     logger.Logger
	timeout time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// NewAsync starts the delivery goroutine. buffer bounds the queue.
func NewAsync(fanout *Fanout, buffer int, log logger.Logger) *Async {
	if buffer <= 0 {
		buffer = 1
	}
	a := &Async{
		fanout:  fanout,
		queue:   make(chan Event, buffer),
		log:     logger.Ensure(log),
		timeout: defaultReportTimeout,
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

// Enqueue queues evt without blocking. A full queue drops the event. Must not be called after Close.
func (a *Async) Enqueue(evt Event) {
	select {
	case a.queue <- evt:
	default:
		a.log.WarnObj("report queue full; dropping event", "report_event", map[string]any{
			"control":   evt.Control,
			"image_key": evt.ImageKey,
		})
	}
}

// Close delivers what is queued, then releases the reporters.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.queue)
		<-a.done
		err = a.fanout.Close()
	})
	return err
}

func (a *Async) run() {
	defer close(a.done)
	for evt := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		delivered, err := a.fanout.Report(ctx, evt)
		cancel()
		if err != nil {
			a.log.ErrorObj("report delivery failed", "report_error", map[string]any{
				"control":   evt.Control,
				"delivered": delivered,
				"error":     err.Error(),
			})
		}
	}
}
