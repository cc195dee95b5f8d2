package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubConn struct {
	err error
}

func (c stubConn) Disconnect(context.Context) error {
	return c.err
}

func TestDisconnect(t *testing.T) {

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("Should log nothing when disconnect succeeds", func(t *testing.T) {

		buf.Reset()
		disconnect(stubConn{})
		require.Empty(t, buf.String())
	})

	t.Run("Should log error when disconnect fails", func(t *testing.T) {

		buf.Reset()
		disconnect(stubConn{err: errors.New("connection reset")})
		require.Contains(t, buf.String(), "Disconnect from MongoDB failed")
		require.Contains(t, buf.String(), "connection reset")
	})
}
