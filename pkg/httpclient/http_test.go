package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blackcoderx/lmfetch/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGet_SendsBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "lmfetch-test", r.UserAgent())
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := New(WithUserAgent("lmfetch-test"))
	resp, err := c.Get(context.Background(), srv.URL, auth.Credentials{Username: "user", Password: "pass"})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, []byte("payload"), resp.Body)
}

func TestClientGet_NonOKIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := New().Get(context.Background(), srv.URL, auth.Credentials{})
	require.NoError(t, err)

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClientGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New().Get(context.Background(), url, auth.Credentials{})
	assert.Error(t, err)
}

func TestClientGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(WithTimeout(50*time.Millisecond)).Get(context.Background(), srv.URL, auth.Credentials{})
	assert.Error(t, err)
}
