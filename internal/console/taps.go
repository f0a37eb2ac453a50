package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/samvad-hq/shapes-console/internal/logger"
	"github.com/samvad-hq/shapes-console/internal/screen"
)

var controlAliases = map[string]screen.Control{
	"hello": screen.ControlHello,
	"h":     screen.ControlHello,
	"1":     screen.ControlHello,
	"shape": screen.ControlShape,
	"s":     screen.ControlShape,
	"2":     screen.ControlShape,
}

// ParseControl maps a typed command to a control.
func ParseControl(s string) (screen.Control, error) {
	if c, ok := controlAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown control %q", s)
}

// LineTapSource turns input lines into control activations.
type LineTapSource struct {
	mu       sync.RWMutex
	in       io.Reader
	handlers map[screen.Control]func()
	log      logger.Logger
}

// NewLineTapSource reads taps from in.
func NewLineTapSource(in io.Reader, log logger.Logger) *LineTapSource {
	return &LineTapSource{
		in:       in,
		handlers: make(map[screen.Control]func()),
		log:      logger.Ensure(log),
	}
}

// OnTap registers fn for control, replacing any previous handler.
func (l *LineTapSource) OnTap(control screen.Control, fn func()) {
	l.mu.Lock()
	l.handlers[control] = fn
	l.mu.Unlock()
}

// Run reads lines until EOF, "quit", or ctx is done. Blank lines are skipped and
// unknown commands are logged.
func (l *LineTapSource) Run(ctx context.Context) error {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(l.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-errs; err != nil {
					return fmt.Errorf("read taps: %w", err)
				}
				return nil
			}
			if l.handle(line) {
				return nil
			}
		}
	}
}

// handle dispatches one line and reports whether input should stop.
func (l *LineTapSource) handle(line string) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "":
		return false
	case "q", "quit", "exit":
		return true
	}

	control, err := ParseControl(cmd)
	if err != nil {
		l.log.WarnObj("ignoring input", "input", cmd)
		return false
	}

	l.mu.RLock()
	fn := l.handlers[control]
	l.mu.RUnlock()
	if fn == nil {
		l.log.WarnObj("control not bound", "control", string(control))
		return false
	}
	fn()
	return false
}
