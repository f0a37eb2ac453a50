// Package resolver maps call outcomes to display states.
package resolver

import (
	"strconv"
	"strings"

	"github.com/samvad-hq/shapes-console/internal/domain"
)

const (
	httpStatusPrefix    = "Http status code "
	requestFailedPrefix = "Request failed: "
)

// ResolveHello maps a hello call outcome to the state shown to the user.
func ResolveHello(outcome domain.CallOutcome[domain.HelloBody]) domain.DisplayState {
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		return shown(domain.ImageHello, outcome.Body.Text)
	case domain.OutcomeHTTPError:
		return shown(domain.ImageConfused, httpStatusText(outcome.StatusCode))
	default:
		return shown(domain.ImageConfused, requestFailedPrefix+outcome.Message)
	}
}

// ResolveShape maps a shape call outcome to the state shown to the user.
// On success the status line reports the HTTP code, not the shape label.
func ResolveShape(outcome domain.CallOutcome[domain.ShapeBody]) domain.DisplayState {
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		return shown(ShapeImage(outcome.Body.Shape), httpStatusText(outcome.StatusCode))
	case domain.OutcomeHTTPError:
		return shown(domain.ImageConfused, httpStatusText(outcome.StatusCode))
	default:
		return shown(domain.ImageConfused, requestFailedPrefix+outcome.Message)
	}
}

// ShapeImage matches a shape label case-insensitively. Unrecognized labels map to ImageConfused.
func ShapeImage(label string) domain.ImageKey {
	switch {
	case strings.EqualFold(label, "square"):
		return domain.ImageSquare
	case strings.EqualFold(label, "circle"):
		return domain.ImageCircle
	case strings.EqualFold(label, "rectangle"):
		return domain.ImageRectangle
	case strings.EqualFold(label, "triangle"):
		return domain.ImageTriangle
	default:
		return domain.ImageConfused
	}
}

func httpStatusText(code int) string {
	return httpStatusPrefix + strconv.Itoa(code)
}

func shown(key domain.ImageKey, text string) domain.DisplayState {
	return domain.DisplayState{ImageKey: key, StatusText: text, Visible: true}
}
