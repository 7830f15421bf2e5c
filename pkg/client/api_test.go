package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat-history", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"history":[{"user":"a","bot":"b"},{"user":"c","bot":"d"}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	pairs, err := NewAPI(srv.URL).History(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "a", pairs[0].User)
	assert.Equal(t, "d", pairs[1].Bot)
}

func TestAPISend(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"response":"re: %s"}`, in.Message)
	})

	reply, err := NewAPI(srv.URL).Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "re: hello", reply)
}

func TestAPISendRefusals(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		status  int
		message string
	}{
		{
			name: "rejected with status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(400)
				fmt.Fprint(w, `{"status":400,"error":"Message cannot be empty"}`)
			},
			status:  400,
			message: "Message cannot be empty",
		},
		{
			name: "structured error in a 2xx body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"error":"model unavailable"}`)
			},
			status:  200,
			message: "model unavailable",
		},
		{
			name: "non-json failure body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(502)
				fmt.Fprint(w, "Bad Gateway")
			},
			status: 502,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := chatServer(t, tc.handler)

			_, err := NewAPI(srv.URL).Send(context.Background(), "x")
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.status, se.StatusCode)
			assert.Equal(t, tc.message, se.Message)
		})
	}
}

func TestAPIQuotes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stocks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"AAPL":{"name":"Apple Inc","price":231.5,"change":2.3,"change_percent":1.0}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	snap, err := NewAPI(srv.URL).Quotes(context.Background())
	require.NoError(t, err)
	require.Contains(t, snap, "AAPL")
	assert.InDelta(t, 231.5, snap["AAPL"].Price, 1e-9)
	assert.InDelta(t, 2.3, snap["AAPL"].Change, 1e-9)
}

func TestAPIMalformedReply(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat-history", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"history":[`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewAPI(srv.URL).History(context.Background())
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se), "a decode failure is not a status error")
}
