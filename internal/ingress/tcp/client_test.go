package tcp

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090/internal/ingress"
	"jet1090/internal/ingress/beast"
)

func TestRunDecodesStreamedFrame(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		payload := []byte{0x8D, 0x40, 0x6B, 0x90, 0x20, 0x15, 0xA6, 0x78, 0xD4, 0xD2, 0x20, 0xAA, 0x4B, 0xDA}
		raw := []byte{beast.SyncByte, beast.ModeSLong}
		raw = append(raw, 0, 0, 0, 0, 0, 0)
		raw = append(raw, 0x20)
		raw = append(raw, payload...)
		conn.Write(raw)
	}()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	c := New(host, port, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out := make(chan ingress.Message, 4)
	go c.Run(ctx, out)

	select {
	case msg := <-out:
		assert.Equal(t, "8d406b902015a678d4d220aa4bda", msg.Frame)
	case <-ctx.Done():
		t.Fatal("timed out waiting for decoded message")
	}
}
