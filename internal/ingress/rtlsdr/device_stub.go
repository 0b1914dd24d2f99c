//go:build !cgo

package rtlsdr

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Device is a stub for builds without cgo (gortlsdr requires it). Every
// method returns an error; callers should treat this as spec.md §6's exit
// code 127 ("feature unavailable").
type Device struct{}

func Open(idx int, logger *logrus.Logger) (*Device, error) {
	return nil, fmt.Errorf("rtlsdr: hardware support requires a cgo build")
}

func (d *Device) Configure(frequency, sampleRate uint32, gain int) error {
	return fmt.Errorf("rtlsdr: hardware support requires a cgo build")
}

func (d *Device) StreamIQ(ctx context.Context, dataChan chan<- []byte) error {
	return fmt.Errorf("rtlsdr: hardware support requires a cgo build")
}

func (d *Device) Close() error {
	return nil
}
