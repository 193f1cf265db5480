package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/series/observations", r.URL.Path)
		assert.Equal(t, "GS10", r.URL.Query().Get("series_id"))
		assert.Equal(t, "json", r.URL.Query().Get("file_type"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("observation_start"))
		w.Write([]byte(`{"observations":[
			{"date":"2024-06-26","value":"4.33"},
			{"date":"2024-06-27","value":"."},
			{"date":"2024-06-28","value":"4.36"}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", zerolog.Nop())
	client.SetBaseURL(server.URL)

	obs, err := client.GetSeries(context.Background(), "GS10", "2024-01-01")
	require.NoError(t, err)

	// The "." placeholder row is dropped
	require.Len(t, obs, 2)
	assert.Equal(t, "2024-06-26", obs[0].Date)
	assert.Equal(t, 4.33, obs[0].Value)
	assert.Equal(t, 4.36, obs[1].Value)
}

func TestGetSeriesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"observations":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", zerolog.Nop())
	client.SetBaseURL(server.URL)

	_, err := client.GetSeries(context.Background(), "NOPE", "")
	assert.Error(t, err)
}

func TestGetSeriesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("bad-key", zerolog.Nop())
	client.SetBaseURL(server.URL)

	_, err := client.GetSeries(context.Background(), "GS10", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
