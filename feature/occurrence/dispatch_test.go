package occurrence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vmp-sync/core/config"
	"vmp-sync/core/storage"
	"vmp-sync/core/vmp"
	"vmp-sync/feature/occurrence/mapper"
	"vmp-sync/feature/occurrence/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

func platformServer(t *testing.T, upsert http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok"})
	})
	mux.HandleFunc("/api/jobs/upsert", upsert)
	return httptest.NewTLSServer(mux)
}

func testService(t *testing.T, server *httptest.Server) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := setupMockDB(t)

	cfg := config.SyncConfig{OccurrenceBatchSize: 10, FetchBatchSize: 100}
	client := vmp.NewClient(vmp.Config{
		Host:        strings.TrimPrefix(server.URL, "https://"),
		Email:       "sync@example.org",
		LoginPath:   "api/auth/login",
		UpsertPath:  "api/jobs/upsert",
		UnlistPath:  "api/jobs/visibility",
		MaxAttempts: 1,
	}, zap.NewNop()).WithHTTPClient(server.Client())

	archive, err := storage.NewArchiver(storage.Config{})
	assert.NoError(t, err)

	fetcher := fetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("img"), nil
	})

	m := mapper.New(mapper.Options{}, zap.NewNop())
	return NewService(cfg, nil, client, NewLedger(db), m, fetcher, archive, zap.NewNop()), mock
}

func TestDispatchOccurrencesPartitionsOutcome(t *testing.T) {
	var received []models.CanonicalRecord
	server := platformServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		var result vmp.BatchResult
		result.Success.Total = 1
		result.Success.IDs = []string{"A1"}
		result.Error.Total = 1
		result.Error.Data = []vmp.ItemError{{ID: "B2", Message: "organiser not found"}}
		_ = json.NewEncoder(w).Encode(result)
	})
	defer server.Close()

	service, mock := testService(t, server)

	rows := sqlmock.NewRows([]string{"occurrenceId", "status", "json", "send"}).
		AddRow("A1", models.StatusURLAdded, `{"vmpJobId":"A1","appImage":"https://img/a.jpg","webImage":"https://img/a.jpg"}`, true).
		AddRow("B2", models.StatusURLUpdated, `{"vmpJobId":"B2","appImage":"https://img/b.jpg","webImage":"https://img/b.jpg"}`, true)
	mock.ExpectQuery("SELECT \\* FROM `occurrences` WHERE send = ").
		WithArgs(true).
		WillReturnRows(rows)

	// The rejection is recorded first, then the batch's accepted ids.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `occurrences` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `occurrences` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	summary, err := service.DispatchOccurrences(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Sent 1 record(s) in 1 batch(es) to the VMP, 1 rejected", summary)

	// The outbound payload preserved order and carries inlined images.
	assert.Len(t, received, 2)
	assert.Equal(t, "A1", received[0].VmpJobID)
	assert.Equal(t, "B2", received[1].VmpJobID)
	assert.Equal(t, "aW1n", received[0].AppImage)
	assert.Equal(t, "aW1n", received[0].WebImage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchOccurrencesNothingPending(t *testing.T) {
	server := platformServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no batch should be sent")
	})
	defer server.Close()

	service, mock := testService(t, server)

	mock.ExpectQuery("SELECT \\* FROM `occurrences` WHERE send = ").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"occurrenceId", "status", "json", "send"}))

	summary, err := service.DispatchOccurrences(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Sent 0 record(s) in 0 batch(es) to the VMP", summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchOccurrencesAbortsOnLoginFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	server := httptest.NewTLSServer(mux)
	defer server.Close()

	service, mock := testService(t, server)

	rows := sqlmock.NewRows([]string{"occurrenceId", "status", "json", "send"}).
		AddRow("A1", models.StatusURLAdded, `{"vmpJobId":"A1"}`, true)
	mock.ExpectQuery("SELECT \\* FROM `occurrences` WHERE send = ").
		WithArgs(true).
		WillReturnRows(rows)

	_, err := service.DispatchOccurrences(context.Background())
	assert.Error(t, err)
	// The row was never touched; it stays pending for the next pass.
	assert.NoError(t, mock.ExpectationsWereMet())
}
