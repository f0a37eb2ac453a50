package screen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samvad-hq/shapes-console/internal/domain"
	"github.com/samvad-hq/shapes-console/internal/logger"
	"github.com/samvad-hq/shapes-console/internal/resolver"
)

// Control identifies one of the screen's buttons.
type Control string

const (
	ControlHello Control = "hello"
	ControlShape Control = "shape"
)

// FlowState is the per-control state: waiting on at least one call, or idle.
type FlowState int

const (
	Idle FlowState = iota
	AwaitingResponse
)

func (s FlowState) String() string {
	if s == AwaitingResponse {
		return "awaiting_response"
	}
	return "idle"
}

// Applied describes one display update after it has been rendered.
type Applied struct {
	Control    Control
	Outcome    domain.OutcomeKind
	StatusCode int
	State      domain.DisplayState
	AppliedAt  time.Time
}

// Observer is notified on the dispatcher goroutine after each update is rendered.
// It must not block.
type Observer func(Applied)

// Option customizes a Screen.
type Option func(*Screen)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Screen) { s.log = logger.Ensure(log) }
}

// WithObserver registers fn to run after every rendered update.
func WithObserver(fn Observer) Option {
	return func(s *Screen) { s.observer = fn }
}

// WithContext sets the context handed to every call.
func WithContext(ctx context.Context) Option {
	return func(s *Screen) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// Screen wires two controls to two calls and applies each outcome to the renderer.
//
// Taps are never de-duplicated: every tap issues its own call, and when several calls
// for the same control overlap, whichever update the dispatcher applies last is shown.
type Screen struct {
	api        API
	dispatcher Dispatcher
	renderer   Renderer
	log        logger.Logger
	observer   Observer
	ctx        context.Context

	pending map[Control]*atomic.Int64
	wg      sync.WaitGroup
}

// New builds a Screen. All collaborators are required.
func New(api API, dispatcher Dispatcher, renderer Renderer, opts ...Option) (*Screen, error) {
	if api == nil {
		return nil, fmt.Errorf("api must not be nil")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher must not be nil")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer must not be nil")
	}

	s := &Screen{
		api:        api,
		dispatcher: dispatcher,
		renderer:   renderer,
		log:        logger.NopLogger{},
		ctx:        context.Background(),
		pending: map[Control]*atomic.Int64{
			ControlHello: new(atomic.Int64),
			ControlShape: new(atomic.Int64),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Bind registers both controls with src.
func (s *Screen) Bind(src TapSource) {
	src.OnTap(ControlHello, s.TapHello)
	src.OnTap(ControlShape, s.TapShape)
}

// Tap activates the named control.
func (s *Screen) Tap(c Control) error {
	switch c {
	case ControlHello:
		s.TapHello()
	case ControlShape:
		s.TapShape()
	default:
		return fmt.Errorf("unknown control %q", c)
	}
	return nil
}

// TapHello hides the status area and issues a hello call.
func (s *Screen) TapHello() {
	s.begin(ControlHello)
	go func() {
		outcome := s.api.Hello(s.ctx)
		s.apply(ControlHello, outcome.Kind, outcome.StatusCode, resolver.ResolveHello(outcome))
	}()
}

// TapShape hides the status area and issues a shape call.
func (s *Screen) TapShape() {
	s.begin(ControlShape)
	go func() {
		outcome := s.api.Shape(s.ctx)
		s.apply(ControlShape, outcome.Kind, outcome.StatusCode, resolver.ResolveShape(outcome))
	}()
}

// State reports whether c has calls whose updates are not yet applied.
func (s *Screen) State(c Control) FlowState {
	counter, ok := s.pending[c]
	if !ok || counter.Load() == 0 {
		return Idle
	}
	return AwaitingResponse
}

// Wait blocks until every issued call's update has been applied.
// The dispatcher must keep running until Wait returns.
func (s *Screen) Wait() {
	s.wg.Wait()
}

func (s *Screen) begin(c Control) {
	s.wg.Add(1)
	s.pending[c].Add(1)
	s.log.DebugObj("control tapped", "control", string(c))
	s.dispatcher.Post(s.renderer.Hide)
}

func (s *Screen) apply(c Control, kind domain.OutcomeKind, code int, state domain.DisplayState) {
	s.log.InfoObj("call completed", "call_result", map[string]any{
		"control":     string(c),
		"outcome":     kind.String(),
		"status_code": code,
		"image_key":   string(state.ImageKey),
	})

	s.dispatcher.Post(func() {
		defer s.wg.Done()
		s.renderer.Render(state)
		s.pending[c].Add(-1)
		if s.observer != nil {
			s.observer(Applied{
				Control:    c,
				Outcome:    kind,
				StatusCode: code,
				State:      state,
				AppliedAt:  time.Now().UTC(),
			})
		}
	})
}
