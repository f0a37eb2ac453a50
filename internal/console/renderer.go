package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/samvad-hq/shapes-console/internal/domain"
)

// View is what the terminal currently shows.
type View struct {
	Image   domain.ImageKey
	Text    string
	Visible bool
}

// Renderer draws the status area to a writer.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	assets Assets
	view   View
}

// NewRenderer writes to out using assets (DefaultAssets when nil).
func NewRenderer(out io.Writer, assets Assets) *Renderer {
	if assets == nil {
		assets = DefaultAssets()
	}
	return &Renderer{out: out, assets: assets}
}

// Hide marks the status area hidden while a call is in flight.
func (r *Renderer) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view.Visible = false
	fmt.Fprintln(r.out, "[ ... ]")
}

// Render sets image, text and visibility from state.
func (r *Renderer) Render(state domain.DisplayState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.view = View{Image: state.ImageKey, Text: state.StatusText, Visible: state.Visible}
	if !state.Visible {
		fmt.Fprintln(r.out, "[ ... ]")
		return
	}

	asset := r.assets.Lookup(state.ImageKey)
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", asset.Name)
	for _, line := range asset.Art {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s\n", state.StatusText)
	_, _ = io.WriteString(r.out, b.String())
}

// View returns a snapshot of what is shown.
func (r *Renderer) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}
