package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
	"github.com/AlvesR0/rss-telegram-bot/server/mocks"
)

func TestServer_StatusHandler(t *testing.T) {
	st := &mocks.StoreMock{
		ListFunc: func(ctx context.Context) ([]domain.Key, error) {
			return []domain.Key{{Owner: 1, Pin: 1234}, {Owner: 2, Pin: 5678}}, nil
		},
	}
	status := &mocks.StatusProviderMock{
		TimeUntilNextFunc: func() time.Duration { return 90 * time.Second },
	}

	srv := New(Config{Listen: ":0", Timeout: time.Second, Version: "test"}, st, status)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status      string `json:"status"`
		Version     string `json:"version"`
		Feeds       int    `json:"feeds"`
		NextUpdateS int    `json:"next_update_s"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, 2, body.Feeds)
	assert.Equal(t, 90, body.NextUpdateS)

	assert.Len(t, st.ListCalls(), 1)
	assert.Len(t, status.TimeUntilNextCalls(), 1)
}

func TestServer_StatusHandlerStoreError(t *testing.T) {
	st := &mocks.StoreMock{
		ListFunc: func(ctx context.Context) ([]domain.Key, error) {
			return nil, errors.New("boom")
		},
	}
	status := &mocks.StatusProviderMock{
		TimeUntilNextFunc: func() time.Duration { return time.Minute },
	}

	srv := New(Config{Listen: ":0", Timeout: time.Second, Version: "test"}, st, status)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "can't list feeds", body["error"])
}

func TestServer_Ping(t *testing.T) {
	st := &mocks.StoreMock{
		ListFunc: func(ctx context.Context) ([]domain.Key, error) { return nil, nil },
	}
	status := &mocks.StatusProviderMock{
		TimeUntilNextFunc: func() time.Duration { return 0 },
	}

	srv := New(Config{Listen: ":0", Timeout: time.Second, Version: "test"}, st, status)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(data))
}

func TestServer_RunAndShutdown(t *testing.T) {
	st := &mocks.StoreMock{
		ListFunc: func(ctx context.Context) ([]domain.Key, error) { return nil, nil },
	}
	status := &mocks.StatusProviderMock{
		TimeUntilNextFunc: func() time.Duration { return 0 },
	}

	srv := New(Config{Listen: "127.0.0.1:0", Timeout: time.Second, Version: "test"}, st, status)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond) // let the listener come up
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
