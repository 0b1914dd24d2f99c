// Package tcp dials a Beast-protocol server (e.g. dump1090's raw output
// port) and feeds the byte stream through internal/ingress/beast.
package tcp

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090/internal/ingress"
	"jet1090/internal/ingress/beast"
)

// Client maintains a connection to a Beast TCP server, reconnecting on
// failure, and publishes decoded ingress.Message values onto a channel.
type Client struct {
	addr          string
	logger        *logrus.Logger
	retryInterval time.Duration
}

// New creates a client targeting host:port.
func New(host string, port int, logger *logrus.Logger) *Client {
	return &Client{
		addr:          net.JoinHostPort(host, fmt.Sprintf("%d", port)),
		logger:        logger,
		retryInterval: 5 * time.Second,
	}
}

// Run connects and reads until ctx is cancelled, reconnecting after any
// I/O error. Every decoded message is sent on out; out is never closed by
// Run (the caller owns it) so this can share a channel with other ingress
// sources.
func (c *Client) Run(ctx context.Context, out chan<- ingress.Message) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := net.DialTimeout("tcp", c.addr, 5*time.Second)
		if err != nil {
			c.logger.WithError(err).WithField("addr", c.addr).Warn("beast tcp: connect failed, retrying")
			if !sleep(ctx, c.retryInterval) {
				return ctx.Err()
			}
			continue
		}

		c.logger.WithField("addr", c.addr).Info("beast tcp: connected")
		c.stream(ctx, conn, out)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Client) stream(ctx context.Context, conn net.Conn, out chan<- ingress.Message) {
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	dec := beast.NewDecoder(c.logger, time.Now())
	buf := make([]byte, 4096)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			if ctx.Err() == nil {
				c.logger.WithError(err).Warn("beast tcp: read failed")
			}
			return
		}

		for _, msg := range dec.Feed(buf[:n]) {
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			default:
				c.logger.Debug("beast tcp: dropping message, channel full")
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
