package reporters

import (
	"time"

	"github.com/samvad-hq/shapes-console/internal/screen"
)

// Event is the payload reported for every display update.
type Event struct {
	Control    string    `json:"control"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"status_code,omitempty"`
	ImageKey   string    `json:"image_key"`
	StatusText string    `json:"status_text"`
	Visible    bool      `json:"visible"`
	RenderedAt time.Time `json:"rendered_at"`
}

// NewEvent builds the Event for an applied update.
func NewEvent(a screen.Applied) Event {
	at := a.AppliedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return Event{
		Control:    string(a.Control),
		Outcome:    a.Outcome.String(),
		StatusCode: a.StatusCode,
		ImageKey:   string(a.State.ImageKey),
		StatusText: a.State.StatusText,
		Visible:    a.State.Visible,
		RenderedAt: at,
	}
}
