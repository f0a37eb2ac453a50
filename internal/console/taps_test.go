package console

import (
	"context"
	"strings"
	"testing"

	"github.com/samvad-hq/shapes-console/internal/screen"
	"github.com/stretchr/testify/require"
)

func TestParseControl(t *testing.T) {
	for in, want := range map[string]screen.Control{
		"hello": screen.ControlHello,
		" H ":   screen.ControlHello,
		"1":     screen.ControlHello,
		"Shape": screen.ControlShape,
		"s":     screen.ControlShape,
		"2":     screen.ControlShape,
	} {
		got, err := ParseControl(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseControl("reset")
	require.Error(t, err)
}

func TestLineTapSourceDispatchesUntilQuit(t *testing.T) {
	src := NewLineTapSource(strings.NewReader("hello\n\nbogus\nshape\ns\nquit\nhello\n"), nil)

	var taps []screen.Control
	src.OnTap(screen.ControlHello, func() { taps = append(taps, screen.ControlHello) })
	src.OnTap(screen.ControlShape, func() { taps = append(taps, screen.ControlShape) })

	require.NoError(t, src.Run(context.Background()))
	require.Equal(t, []screen.Control{screen.ControlHello, screen.ControlShape, screen.ControlShape}, taps)
}

func TestLineTapSourceStopsAtEOF(t *testing.T) {
	src := NewLineTapSource(strings.NewReader("2"), nil)
	count := 0
	src.OnTap(screen.ControlShape, func() { count++ })

	require.NoError(t, src.Run(context.Background()))
	require.Equal(t, 1, count)
}
