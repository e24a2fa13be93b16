package solr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidOccurrenceIDs(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "reader", user)
		assert.Equal(t, "secret", pass)
		query = r.URL.Query()

		// The CSV response always carries the header row.
		_, _ = w.Write([]byte("occurrenceId\nA1\nB2\n"))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:             server.URL,
		Username:            "reader",
		Password:            "secret",
		MinVolunteersNeeded: 4,
		WindowMonths:        2,
	})

	ids, err := client.ValidOccurrenceIDs(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, ids)

	q := query["q"][0]
	assert.Contains(t, q, "IsOccurrenceActive:true")
	assert.Contains(t, q, "IsOrganizationServedActive:true")
	assert.Contains(t, q, "IsOpportunityActive:true")
	assert.Contains(t, q, `scheduleType:"Date & Time Specific"`)
	assert.Contains(t, q, "volunteersNeeded:[4 TO *]")
	assert.Contains(t, q, "endDateTime:[NOW TO NOW+2MONTHS]")
	// NOW is pinned to the caller's clock in epoch milliseconds.
	assert.Equal(t, "1756728000000", query["NOW"][0])
	assert.Equal(t, "csv", query["wt"][0])
	assert.Equal(t, "occurrenceId", query["group.field"][0])
}

func TestValidOccurrenceIDsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("occurrenceId\n"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	ids, err := client.ValidOccurrenceIDs(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFetchOccurrences(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"response":{"numFound":2,"docs":[
			{"occurrenceId":"A1","Language":"English","title":"Cleanup"},
			{"occurrenceId":"A1","Language":"Chinese","title":"清潔"}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	docs, err := client.FetchOccurrences(context.Background(), []string{"A1"})
	assert.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "Cleanup", docs[0].Title)
	assert.Equal(t, LanguageChinese, docs[1].Language)
	assert.Equal(t, "occurrenceId:(A1)", query["q"][0])
}

func TestFetchOccurrencesEmptyIDList(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused"})
	docs, err := client.FetchOccurrences(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, docs)
}

func TestFetchOccurrencesBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.FetchOccurrences(context.Background(), []string{"A1"})
	assert.Error(t, err)
}
