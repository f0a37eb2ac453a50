package resolver

import (
	"fmt"
	"testing"

	"github.com/samvad-hq/shapes-console/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestResolveHelloSuccessShowsText(t *testing.T) {
	for _, code := range []int{200, 201, 204, 299} {
		for _, text := range []string{"hello, world", "", "  spaced  "} {
			got := ResolveHello(domain.Success(code, domain.HelloBody{Text: text}))
			require.Equal(t, domain.DisplayState{ImageKey: domain.ImageHello, StatusText: text, Visible: true}, got)
		}
	}
}

func TestResolveHelloHTTPError(t *testing.T) {
	for _, code := range []int{301, 400, 404, 500, 503} {
		got := ResolveHello(domain.HTTPError[domain.HelloBody](code))
		require.Equal(t, domain.ImageConfused, got.ImageKey)
		require.Equal(t, fmt.Sprintf("Http status code %d", code), got.StatusText)
		require.True(t, got.Visible)
	}
}

func TestResolveHelloTransportFailure(t *testing.T) {
	got := ResolveHello(domain.TransportFailure[domain.HelloBody]("dial tcp: connection refused"))
	require.Equal(t, domain.DisplayState{
		ImageKey:   domain.ImageConfused,
		StatusText: "Request failed: dial tcp: connection refused",
		Visible:    true,
	}, got)
}

func TestResolveShapeLabels(t *testing.T) {
	tests := []struct {
		label    string
		expected domain.ImageKey
	}{
		{label: "square", expected: domain.ImageSquare},
		{label: "SQUARE", expected: domain.ImageSquare},
		{label: "Circle", expected: domain.ImageCircle},
		{label: "RECTANGLE", expected: domain.ImageRectangle},
		{label: "triangle", expected: domain.ImageTriangle},
		{label: "hexagon", expected: domain.ImageConfused},
		{label: "", expected: domain.ImageConfused},
		{label: " square", expected: domain.ImageConfused},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := ResolveShape(domain.Success(200, domain.ShapeBody{Shape: tt.label}))
			require.Equal(t, tt.expected, got.ImageKey)
			require.Equal(t, "Http status code 200", got.StatusText)
			require.True(t, got.Visible)
		})
	}
}

func TestResolveShapeNeverEchoesLabel(t *testing.T) {
	got := ResolveShape(domain.Success(200, domain.ShapeBody{Shape: "circle"}))
	require.Equal(t, "Http status code 200", got.StatusText)
	require.NotContains(t, got.StatusText, "circle")
}

func TestResolveShapeFailures(t *testing.T) {
	httpErr := ResolveShape(domain.HTTPError[domain.ShapeBody](500))
	require.Equal(t, domain.DisplayState{ImageKey: domain.ImageConfused, StatusText: "Http status code 500", Visible: true}, httpErr)

	transport := ResolveShape(domain.TransportFailure[domain.ShapeBody]("timeout"))
	require.Equal(t, domain.DisplayState{ImageKey: domain.ImageConfused, StatusText: "Request failed: timeout", Visible: true}, transport)
}

func TestResolveZeroOutcomeIsTransportFailure(t *testing.T) {
	require.Equal(t, domain.ImageConfused, ResolveHello(domain.CallOutcome[domain.HelloBody]{}).ImageKey)
	require.Equal(t, "Request failed: ", ResolveShape(domain.CallOutcome[domain.ShapeBody]{}).StatusText)
}

func TestResolversAreIdempotent(t *testing.T) {
	hello := domain.Success(200, domain.HelloBody{Text: "hi"})
	require.Equal(t, ResolveHello(hello), ResolveHello(hello))

	shape := domain.Success(200, domain.ShapeBody{Shape: "Triangle"})
	require.Equal(t, ResolveShape(shape), ResolveShape(shape))
}
