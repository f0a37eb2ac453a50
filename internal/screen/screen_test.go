package screen

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samvad-hq/shapes-console/internal/domain"
	"github.com/stretchr/testify/require"
)

// loopDispatcher runs posted actions on a single goroutine, like a UI thread.
type loopDispatcher struct {
	actions chan func()
}

func newLoopDispatcher(t *testing.T) *loopDispatcher {
	t.Helper()
	d := &loopDispatcher{actions: make(chan func(), 64)}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for action := range d.actions {
			action()
		}
	}()
	t.Cleanup(func() {
		close(d.actions)
		<-done
	})
	return d
}

func (d *loopDispatcher) Post(action func()) { d.actions <- action }

// recordingRenderer keeps every call in order. A nil state entry records a Hide.
type recordingRenderer struct {
	mu      sync.Mutex
	history []*domain.DisplayState
}

func (r *recordingRenderer) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, nil)
}

func (r *recordingRenderer) Render(state domain.DisplayState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, &state)
}

func (r *recordingRenderer) snapshot() []*domain.DisplayState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.DisplayState(nil), r.history...)
}

func (r *recordingRenderer) last() domain.DisplayState {
	h := r.snapshot()
	for i := len(h) - 1; i >= 0; i-- {
		if h[i] != nil {
			return *h[i]
		}
	}
	return domain.DisplayState{}
}

type stubAPI struct {
	hello domain.CallOutcome[domain.HelloBody]
	shape domain.CallOutcome[domain.ShapeBody]
}

func (s stubAPI) Hello(context.Context) domain.CallOutcome[domain.HelloBody] { return s.hello }
func (s stubAPI) Shape(context.Context) domain.CallOutcome[domain.ShapeBody] { return s.shape }

// gatedAPI blocks each shape call until its gate is released; calls are indexed by arrival.
type gatedAPI struct {
	entered atomic.Int64
	arrived chan struct{}
	gates   []chan domain.CallOutcome[domain.ShapeBody]
}

func newGatedAPI(n int) *gatedAPI {
	g := &gatedAPI{arrived: make(chan struct{}, n)}
	for i := 0; i < n; i++ {
		g.gates = append(g.gates, make(chan domain.CallOutcome[domain.ShapeBody], 1))
	}
	return g
}

func (g *gatedAPI) Hello(context.Context) domain.CallOutcome[domain.HelloBody] {
	return domain.Success(200, domain.HelloBody{Text: "hello"})
}

func (g *gatedAPI) Shape(context.Context) domain.CallOutcome[domain.ShapeBody] {
	idx := g.entered.Add(1) - 1
	g.arrived <- struct{}{}
	return <-g.gates[idx]
}

func TestNewRequiresCollaborators(t *testing.T) {
	d := newLoopDispatcher(t)
	r := &recordingRenderer{}

	_, err := New(nil, d, r)
	require.Error(t, err)
	_, err = New(stubAPI{}, nil, r)
	require.Error(t, err)
	_, err = New(stubAPI{}, d, nil)
	require.Error(t, err)
}

func TestTapHelloHidesThenRenders(t *testing.T) {
	r := &recordingRenderer{}
	s, err := New(stubAPI{hello: domain.Success(200, domain.HelloBody{Text: "Hello, World!"})}, newLoopDispatcher(t), r)
	require.NoError(t, err)

	s.TapHello()
	s.Wait()

	h := r.snapshot()
	require.Len(t, h, 2)
	require.Nil(t, h[0])
	require.Equal(t, domain.DisplayState{ImageKey: domain.ImageHello, StatusText: "Hello, World!", Visible: true}, *h[1])
	require.Equal(t, Idle, s.State(ControlHello))
}

func TestTapShapeRendersResolvedState(t *testing.T) {
	r := &recordingRenderer{}
	s, err := New(stubAPI{shape: domain.Success(200, domain.ShapeBody{Shape: "TRIANGLE"})}, newLoopDispatcher(t), r)
	require.NoError(t, err)

	require.NoError(t, s.Tap(ControlShape))
	s.Wait()

	require.Equal(t, domain.DisplayState{ImageKey: domain.ImageTriangle, StatusText: "Http status code 200", Visible: true}, r.last())
}

func TestFailuresRenderConfused(t *testing.T) {
	r := &recordingRenderer{}
	api := stubAPI{
		hello: domain.TransportFailure[domain.HelloBody]("timeout"),
		shape: domain.HTTPError[domain.ShapeBody](500),
	}
	s, err := New(api, newLoopDispatcher(t), r)
	require.NoError(t, err)

	s.TapHello()
	s.Wait()
	require.Equal(t, domain.DisplayState{ImageKey: domain.ImageConfused, StatusText: "Request failed: timeout", Visible: true}, r.last())

	s.TapShape()
	s.Wait()
	require.Equal(t, domain.DisplayState{ImageKey: domain.ImageConfused, StatusText: "Http status code 500", Visible: true}, r.last())
}

func TestUnknownControl(t *testing.T) {
	s, err := New(stubAPI{}, newLoopDispatcher(t), &recordingRenderer{})
	require.NoError(t, err)
	require.Error(t, s.Tap(Control("reset")))
}

func TestOverlappingTapsLastAppliedWins(t *testing.T) {
	api := newGatedAPI(2)
	r := &recordingRenderer{}
	s, err := New(api, newLoopDispatcher(t), r)
	require.NoError(t, err)

	s.TapShape()
	s.TapShape()
	<-api.arrived
	<-api.arrived
	require.Equal(t, AwaitingResponse, s.State(ControlShape))

	api.gates[1] <- domain.Success(200, domain.ShapeBody{Shape: "square"})
	require.Eventually(t, func() bool {
		return r.last().ImageKey == domain.ImageSquare
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, AwaitingResponse, s.State(ControlShape))

	api.gates[0] <- domain.Success(200, domain.ShapeBody{Shape: "circle"})
	s.Wait()

	require.Equal(t, domain.ImageCircle, r.last().ImageKey)
	require.Equal(t, Idle, s.State(ControlShape))
}

func TestObserverSeesAppliedUpdates(t *testing.T) {
	var (
		mu      sync.Mutex
		applied []Applied
	)
	api := stubAPI{
		hello: domain.Success(200, domain.HelloBody{Text: "hi"}),
		shape: domain.HTTPError[domain.ShapeBody](404),
	}
	s, err := New(api, newLoopDispatcher(t), &recordingRenderer{}, WithObserver(func(a Applied) {
		mu.Lock()
		defer mu.Unlock()
		applied = append(applied, a)
	}))
	require.NoError(t, err)

	s.TapHello()
	s.Wait()
	s.TapShape()
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, applied, 2)
	require.Equal(t, ControlHello, applied[0].Control)
	require.Equal(t, domain.OutcomeSuccess, applied[0].Outcome)
	require.Equal(t, ControlShape, applied[1].Control)
	require.Equal(t, domain.OutcomeHTTPError, applied[1].Outcome)
	require.Equal(t, 404, applied[1].StatusCode)
	require.False(t, applied[1].AppliedAt.IsZero())
}

type recordingTapSource struct {
	handlers map[Control]func()
}

func (r *recordingTapSource) OnTap(c Control, fn func()) {
	if r.handlers == nil {
		r.handlers = map[Control]func(){}
	}
	r.handlers[c] = fn
}

func TestBindRegistersBothControls(t *testing.T) {
	r := &recordingRenderer{}
	s, err := New(stubAPI{shape: domain.Success(200, domain.ShapeBody{Shape: "rectangle"})}, newLoopDispatcher(t), r)
	require.NoError(t, err)

	src := &recordingTapSource{}
	s.Bind(src)
	require.Contains(t, src.handlers, ControlHello)
	require.Contains(t, src.handlers, ControlShape)

	src.handlers[ControlShape]()
	s.Wait()
	require.Equal(t, domain.ImageRectangle, r.last().ImageKey)
}
