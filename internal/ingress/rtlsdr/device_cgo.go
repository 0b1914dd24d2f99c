//go:build cgo

package rtlsdr

import (
	"context"
	"errors"
	"fmt"

	gortlsdr "github.com/jpoirier/gortlsdr"
	"github.com/sirupsen/logrus"
)

const bufferChunkSize = 16384

// Device wraps a librtlsdr dongle tuned to the 1090MHz ADS-B channel.
type Device struct {
	dev      *gortlsdr.Context
	logger   *logrus.Logger
	index    int
	isOpen   bool
	cancelFn context.CancelFunc
}

// Open opens device index idx, the nth RTL-SDR dongle enumerated by
// librtlsdr.
func Open(idx int, logger *logrus.Logger) (*Device, error) {
	count := gortlsdr.GetDeviceCount()
	if count == 0 {
		return nil, errors.New("rtlsdr: no devices found")
	}
	if idx >= count {
		return nil, fmt.Errorf("rtlsdr: device index %d out of range (0-%d)", idx, count-1)
	}

	dev, err := gortlsdr.Open(idx)
	if err != nil {
		return nil, fmt.Errorf("rtlsdr: open device %d: %w", idx, err)
	}

	return &Device{dev: dev, logger: logger, index: idx, isOpen: true}, nil
}

// Configure tunes the dongle to frequency (Hz) at sampleRate (Hz/s). gain=0
// selects automatic gain; otherwise gain is in dB and is passed to the
// tuner as tenths of a dB.
func (d *Device) Configure(frequency, sampleRate uint32, gain int) error {
	if err := d.dev.SetCenterFreq(int(frequency)); err != nil {
		return fmt.Errorf("rtlsdr: set frequency: %w", err)
	}
	if err := d.dev.SetSampleRate(int(sampleRate)); err != nil {
		return fmt.Errorf("rtlsdr: set sample rate: %w", err)
	}

	if gain == 0 {
		if err := d.dev.SetTunerGainMode(false); err != nil {
			return fmt.Errorf("rtlsdr: set auto gain: %w", err)
		}
	} else {
		if err := d.dev.SetTunerGainMode(true); err != nil {
			return fmt.Errorf("rtlsdr: set manual gain mode: %w", err)
		}
		if err := d.dev.SetTunerGain(gain * 10); err != nil {
			return fmt.Errorf("rtlsdr: set gain: %w", err)
		}
	}

	return d.dev.ResetBuffer()
}

// StreamIQ reads raw 8-bit I/Q samples asynchronously until ctx is
// cancelled, pushing each buffer onto dataChan. Buffers are dropped (not
// blocked on) if the channel is full, matching spec.md §5's backpressure
// policy: the collaborator drops, the core never buffers.
func (d *Device) StreamIQ(ctx context.Context, dataChan chan<- []byte) error {
	if !d.isOpen {
		return errors.New("rtlsdr: device not open")
	}

	captureCtx, cancel := context.WithCancel(ctx)
	d.cancelFn = cancel

	callback := func(data []byte) {
		select {
		case dataChan <- data:
		case <-captureCtx.Done():
		default:
			d.logger.Debug("rtlsdr: dropping buffer, channel full")
		}
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.WithField("panic", r).Error("rtlsdr: capture panic")
			}
		}()
		if err := d.dev.ReadAsync(callback, nil, 0, 16*bufferChunkSize); err != nil {
			d.logger.WithError(err).Error("rtlsdr: async read failed")
		}
	}()

	<-captureCtx.Done()
	return d.dev.CancelAsync()
}

// Close releases the device.
func (d *Device) Close() error {
	if d.cancelFn != nil {
		d.cancelFn()
	}
	if d.dev != nil && d.isOpen {
		d.isOpen = false
		return d.dev.Close()
	}
	return nil
}
