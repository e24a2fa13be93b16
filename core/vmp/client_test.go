package vmp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, server *httptest.Server, attempts int) (*Client, *[]time.Duration) {
	t.Helper()

	client := NewClient(Config{
		Host:           strings.TrimPrefix(server.URL, "https://"),
		Email:          "sync@example.org",
		LoginPath:      "api/auth/login",
		UpsertPath:     "api/jobs/upsert",
		UnlistPath:     "api/jobs/visibility",
		HoursPath:      "api/hours",
		LinkPath:       "api/volunteers/link",
		MaxAttempts:    attempts,
		BackoffSeconds: 3,
	}, zap.NewNop())
	client.http = server.Client()

	var slept []time.Duration
	client.sleep = func(d time.Duration) { slept = append(slept, d) }
	return client, &slept
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "sync@example.org", payload["email"])
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok"})
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	client, _ := newTestClient(t, server, 3)
	token, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestRetryBacksOffLinearly(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok"})
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	client, slept := newTestClient(t, server, 3)
	token, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, 3, calls)
	// attempt 1 waits 1x3s, attempt 2 waits 2x3s.
	assert.Equal(t, []time.Duration{3 * time.Second, 6 * time.Second}, *slept)
}

func TestRetryExhaustionFails(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	client, _ := newTestClient(t, server, 3)
	_, err := client.Login(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, 3, calls)
}

func TestUpsertOccurrencesParsesPartitionedResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/jobs/upsert", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var result BatchResult
		result.Success.Total = 1
		result.Success.IDs = []string{"A1"}
		result.Error.Total = 1
		result.Error.Data = []ItemError{{ID: "B2", Message: "bad record"}}
		_ = json.NewEncoder(w).Encode(result)
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	client, _ := newTestClient(t, server, 3)
	result, err := client.UpsertOccurrences(context.Background(), "tok",
		[]json.RawMessage{json.RawMessage(`{"vmpJobId":"A1"}`), json.RawMessage(`{"vmpJobId":"B2"}`)})
	assert.NoError(t, err)
	assert.Equal(t, []string{"A1"}, result.Success.IDs)
	assert.Equal(t, "B2", result.Error.Data[0].ID)
}

func TestUnlistSendsVisibilityPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/jobs/visibility", func(w http.ResponseWriter, r *http.Request) {
		var payload []map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "A1", payload[0]["vmpJobId"])
		assert.Equal(t, "unlisted", payload[0]["visibility"])

		var result BatchResult
		result.Success.Total = 1
		result.Success.IDs = []string{"A1"}
		_ = json.NewEncoder(w).Encode(result)
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	client, _ := newTestClient(t, server, 3)
	result, err := client.Unlist(context.Background(), "tok", "A1")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Error.Total)
}

func TestLinkVolunteerNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/volunteers/link", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	client, slept := newTestClient(t, server, 3)
	result, found, err := client.LinkVolunteer(context.Background(), "tok", "U404", true)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, result)
	// A 404 is terminal, never retried.
	assert.Empty(t, *slept)
}

func TestIsVolunteerLinked(t *testing.T) {
	linked := true
	mux := http.NewServeMux()
	mux.HandleFunc("/api/volunteers/link", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(LinkResult{IsLink: &linked})
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	client, _ := newTestClient(t, server, 3)
	isLinked, found, err := client.IsVolunteerLinked(context.Background(), "tok", "U1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.True(t, isLinked)
}
