package app

import (
	"context"
	"fmt"
	"io"

	"github.com/samvad-hq/shapes-console/internal/config"
	"github.com/samvad-hq/shapes-console/internal/console"
	"github.com/samvad-hq/shapes-console/internal/logger"
	"github.com/samvad-hq/shapes-console/internal/screen"
	"github.com/samvad-hq/shapes-console/pkg/httpclient"
	"github.com/samvad-hq/shapes-console/pkg/reporters"
	"github.com/samvad-hq/shapes-console/pkg/shapes"
)

// App wires the shapes client, the console host and the optional reporters into one runtime.
type App struct {
	cfg      *config.Config
	log      logger.Logger
	in       io.Reader
	loop     *console.Loop
	renderer *console.Renderer
	api      screen.API
	reports  *reporters.Async
}

// New builds an App that draws to out and, in interactive mode, reads taps from in.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, in io.Reader, out io.Writer) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	transport := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.RequestTimeout,
		UserAgent: cfg.UserAgent,
	})
	api, err := shapes.NewClient(shapes.Options{
		HelloURL: cfg.HelloURL(),
		ShapeURL: cfg.ShapeURL(),
	}, transport, log)
	if err != nil {
		return nil, fmt.Errorf("build shapes client: %w", err)
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		in:       in,
		loop:     console.NewLoop(),
		renderer: console.NewRenderer(out, nil),
		api:      api,
	}

	if cfg.ReportersFile != "" {
		reports, err := buildReporters(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		a.reports = reports
	}

	log.InfoObj("shapes client ready", "endpoints", map[string]any{
		"hello_url":       cfg.HelloURL(),
		"shape_url":       cfg.ShapeURL(),
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
		"reporting":       a.reports != nil,
	})
	return a, nil
}

func buildReporters(ctx context.Context, cfg *config.Config, log logger.Logger) (*reporters.Async, error) {
	cfgs, err := reporters.LoadConfigs(cfg.ReportersFile)
	if err != nil {
		return nil, fmt.Errorf("load reporters: %w", err)
	}
	if len(cfgs) == 0 {
		log.WarnObj("no enabled reporters; reporting disabled", "reporters_file", cfg.ReportersFile)
		return nil, nil
	}

	reps, err := reporters.BuildAll(ctx, reporters.DefaultRegistry(), cfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build reporters: %w", err)
	}

	summaries := make([]map[string]string, 0, len(reps))
	for _, r := range reps {
		summaries = append(summaries, map[string]string{"id": r.ID(), "type": r.Type()})
	}
	log.InfoObj("reporters loaded", "reporters_meta", map[string]any{
		"count":     len(summaries),
		"reporters": summaries,
	})
	return reporters.NewAsync(reporters.NewFanout(reps), cfg.ReporterBuffer, log), nil
}

// Run activates the named controls in order, or reads taps from the input when taps is
// empty, and returns once every issued call's result has been drawn. Run may be called once.
func (a *App) Run(ctx context.Context, taps []string) error {
	if a == nil || a.loop == nil {
		return fmt.Errorf("app is not initialized")
	}
	defer a.closeReporters()

	controls := make([]screen.Control, 0, len(taps))
	for _, t := range taps {
		c, err := console.ParseControl(t)
		if err != nil {
			return err
		}
		controls = append(controls, c)
	}

	scr, err := screen.New(a.api, a.loop, a.renderer,
		screen.WithLogger(a.log),
		screen.WithContext(ctx),
		screen.WithObserver(a.observe),
	)
	if err != nil {
		return fmt.Errorf("build screen: %w", err)
	}

	// Calls observe ctx; the loop keeps running until their results are drawn.
	go func() { _ = a.loop.Run(context.Background()) }()
	defer func() {
		a.loop.Close()
		<-a.loop.Done()
	}()

	if len(controls) > 0 {
		for _, c := range controls {
			if err := scr.Tap(c); err != nil {
				return err
			}
		}
		scr.Wait()
		return nil
	}

	src := console.NewLineTapSource(a.in, a.log)
	scr.Bind(src)
	err = src.Run(ctx)
	scr.Wait()
	return err
}

func (a *App) observe(applied screen.Applied) {
	if a.reports == nil {
		return
	}
	a.reports.Enqueue(reporters.NewEvent(applied))
}

func (a *App) closeReporters() {
	if a.reports == nil {
		return
	}
	if err := a.reports.Close(); err != nil {
		a.log.ErrorObj("reporters close failed", "error", err)
	}
}
