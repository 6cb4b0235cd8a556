package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecurityLayer struct {
	listener net.Listener
	err      error
}

func (f *fakeSecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listener, nil
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":0")
	assert.Equal(t, ":0", s.Address())
}

func TestHTTPServer_Stop(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":0")
	err := s.Stop(context.Background())
	assert.NoError(t, err)
}

func TestHTTPServer_Start_ListenError(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":0")
	sl := &fakeSecurityLayer{err: errors.New("boom")}

	err := s.Start(sl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestHTTPServer_Start_ServesAndStops(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewHTTPServer(mux, ln.Addr().String())
	sl := &fakeSecurityLayer{listener: ln}

	done := make(chan error, 1)
	go func() { done <- s.Start(sl) }()

	url := fmt.Sprintf("http://%s/ping", ln.Addr().String())
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Stop(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
