package screen

import (
	"context"

	"github.com/samvad-hq/shapes-console/internal/domain"
)

// API issues the two calls backing the screen's controls. Each call returns exactly once.
type API interface {
	Hello(ctx context.Context) domain.CallOutcome[domain.HelloBody]
	Shape(ctx context.Context) domain.CallOutcome[domain.ShapeBody]
}

// Dispatcher runs actions on the goroutine that owns the display, asynchronously and in
// submission order.
type Dispatcher interface {
	Post(action func())
}

// Renderer draws the status area. It is only ever called from the Dispatcher's goroutine.
type Renderer interface {
	Hide()
	Render(state domain.DisplayState)
}

// TapSource delivers activations for the screen's controls.
type TapSource interface {
	OnTap(control Control, fn func())
}
