// Package app wires the core decoder (internal/modes, internal/cpr,
// internal/aggregator) to its external collaborators: ingress sources,
// the JSON-line dump, the interactive TUI, and stale-aircraft eviction.
package app

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090/internal/aggregator"
	"jet1090/internal/airport"
	"jet1090/internal/dump"
	"jet1090/internal/eviction"
	"jet1090/internal/ingress"
	"jet1090/internal/ingress/rtlsdr"
	"jet1090/internal/ingress/tcp"
	"jet1090/internal/logging"
	"jet1090/internal/modes"
	"jet1090/internal/tui"
)

// ExitFeatureUnavailable is returned by Start (wrapped) when --rtlsdr was
// requested on a build or platform without hardware support, matching
// spec.md §6's exit code 127.
const ExitFeatureUnavailable = 127

// featureUnavailableError marks an error that should map to exit code 127.
type featureUnavailableError struct{ err error }

func (e *featureUnavailableError) Error() string { return e.err.Error() }
func (e *featureUnavailableError) Unwrap() error { return e.err }

// IsFeatureUnavailable reports whether err (or anything it wraps) should
// map to exit code 127 per spec.md §6, rather than the generic exit 1.
func IsFeatureUnavailable(err error) bool {
	var target *featureUnavailableError
	return errors.As(err, &target)
}

// Application is the orchestrator: it owns the single writer goroutine
// that consumes ingress frames, runs them through the decoder core, and
// fans the result out to the dump writer, TUI, and eviction tracker.
type Application struct {
	config Config
	logger *logrus.Logger

	states     *aggregator.StateMap
	dumpWriter *dump.Writer
	evictor    *eviction.Tracker
	logRotator *logging.LogRotator

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplication constructs an Application from CLI configuration.
func NewApplication(cfg Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start initializes every collaborator, runs the decode loop until a
// shutdown signal arrives or ctx is cancelled, then shuts down cleanly.
// A non-nil returned error wrapping featureUnavailableError should cause
// the caller to exit 127; any other error should exit 1.
func (app *Application) Start() error {
	app.logger.WithField("verbose", app.config.Verbose).Info("starting jet1090")

	rotator, err := logging.NewLogRotator("logs", true, app.logger)
	if err != nil {
		return fmt.Errorf("app: initialize log rotator: %w", err)
	}
	app.logRotator = rotator
	app.logger.SetOutput(rotator.Writer())

	airports, err := airport.Load("")
	if err != nil {
		return fmt.Errorf("app: load airport table: %w", err)
	}

	ref, err := resolveLatLon(app.config.LatLon, airports)
	if err != nil {
		return fmt.Errorf("app: resolve --latlon: %w", err)
	}

	app.states = aggregator.NewStateMap(ref)
	app.evictor = eviction.NewTracker(app.states, 5*time.Minute, 30*time.Second)

	if app.config.Output != "" {
		f, err := os.OpenFile(app.config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("app: open dump output %s: %w", app.config.Output, err)
		}
		app.dumpWriter = dump.NewWriter(f, app.logger)
	}

	frames := make(chan ingress.Message, 1024)

	if err := app.startIngress(frames); err != nil {
		return err
	}

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.decodeLoop(frames)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.logRotator.Start(app.ctx)
	}()

	if app.config.Interactive {
		return app.runInteractive()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	app.logger.Info("received shutdown signal")
	app.shutdown()
	return nil
}

// startIngress wires whichever ingress collaborators the config selects.
// Both may run simultaneously (a TCP feed and an RTL-SDR device), sharing
// the one decode loop per spec.md §5's single-writer model.
func (app *Application) startIngress(frames chan<- ingress.Message) error {
	started := false

	if app.config.Host != "" {
		client := tcp.New(app.config.Host, app.config.Port, app.logger)
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			if err := client.Run(app.ctx, frames); err != nil && app.ctx.Err() == nil {
				app.logger.WithError(err).Error("beast tcp ingress stopped")
			}
		}()
		started = true
	}

	if app.config.RTLSDR {
		dev, err := rtlsdr.Open(app.config.DeviceIndex, app.logger)
		if err != nil {
			return &featureUnavailableError{fmt.Errorf("app: rtlsdr unavailable: %w", err)}
		}
		if err := dev.Configure(DefaultFrequency, DefaultSampleRate, DefaultGain); err != nil {
			return fmt.Errorf("app: configure rtlsdr: %w", err)
		}

		iq := make(chan []byte, 64)
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			defer dev.Close()
			if err := dev.StreamIQ(app.ctx, iq); err != nil && app.ctx.Err() == nil {
				app.logger.WithError(err).Error("rtlsdr capture stopped")
			}
		}()

		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			app.demodulateLoop(iq, frames)
		}()

		started = true
	}

	if !started {
		app.logger.Warn("no ingress collaborator configured (need --host/--port or --rtlsdr)")
	}

	return nil
}

func (app *Application) demodulateLoop(iq <-chan []byte, frames chan<- ingress.Message) {
	var demod rtlsdr.Demodulator
	for {
		select {
		case <-app.ctx.Done():
			return
		case data, ok := <-iq:
			if !ok {
				return
			}
			mag := demod.Magnitude(data)
			now := float64(time.Now().UnixNano()) / 1e9
			for _, raw := range demod.Frames(mag) {
				msg := ingress.Message{Timestamp: now, Frame: hex.EncodeToString(raw)}
				select {
				case frames <- msg:
				case <-app.ctx.Done():
					return
				default:
					app.logger.Debug("rtlsdr: dropping demodulated frame, channel full")
				}
			}
		}
	}
}

// decodeLoop is the single writer: it owns parse -> CPR -> aggregate, and
// fans accepted frames out to the dump writer and eviction tracker.
func (app *Application) decodeLoop(frames <-chan ingress.Message) {
	for {
		select {
		case <-app.ctx.Done():
			return
		case in := <-frames:
			raw, err := ingress.Decode(in)
			if err != nil {
				app.logger.WithError(err).Debug("dropping frame: invalid hex")
				continue
			}

			msg, err := modes.Parse(raw)
			if err != nil {
				app.logger.WithError(err).Debug("dropping frame: decode error")
				continue
			}

			if err := app.states.Update(msg, in.Timestamp); err != nil {
				app.logger.WithError(err).Debug("cpr out of range, position fields dropped")
			}

			app.evictor.Touch(msg.ICAO)

			if app.dumpWriter != nil {
				lat, lon := app.resolvedPosition(msg.ICAO)
				if err := app.dumpWriter.Write(in.Timestamp, in.Frame, msg, lat, lon); err != nil {
					app.logger.WithError(err).Warn("dump write failed, dump disabled")
					app.dumpWriter = nil
				}
			}
		}
	}
}

func (app *Application) resolvedPosition(icao modes.ICAO) (*float64, *float64) {
	snap, ok := app.states.Get(icao)
	if !ok {
		return nil, nil
	}
	return snap.Latitude, snap.Longitude
}

func (app *Application) runInteractive() error {
	ui, err := tui.New(app.states)
	if err != nil {
		return fmt.Errorf("app: start tui: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		<-sigChan
		close(done)
	}()

	err = ui.Run(done)
	app.shutdown()
	return err
}

func (app *Application) shutdown() {
	app.logger.Info("shutting down")
	app.cancel()

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info("all goroutines finished")
	case <-time.After(5 * time.Second):
		app.logger.Warn("shutdown timeout, forcing exit")
	}

	if app.logRotator != nil {
		app.logRotator.Close()
	}
}
