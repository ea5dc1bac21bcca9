package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemadeck/core/server"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	_, err := server.NewFromConfig(server.Config{})
	assert.ErrorIs(t, err, server.ErrMissingAddress)

	srv, err := server.NewFromConfig(server.Config{Addr: ":9000"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", srv.Addr())
}

func TestRunServesUntilCanceled(t *testing.T) {
	t.Parallel()

	srv, err := server.NewFromConfig(server.Config{Addr: "127.0.0.1:0"}, server.WithShutdownTimeout(time.Second))
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "deck")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, handler)() }()

	require.Eventually(t, func() bool {
		return srv.Addr() != "127.0.0.1:0"
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + srv.Addr() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "deck", string(body))

	assert.ErrorIs(t, srv.Start(context.Background(), handler), server.ErrServerAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.NoError(t, srv.Stop(), "stopping a stopped server is a no-op")
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestStartListenError(t *testing.T) {
	t.Parallel()

	srv := server.New("256.0.0.1:http")
	err := srv.Start(context.Background(), http.NotFoundHandler())
	assert.ErrorIs(t, err, server.ErrListen)
}
