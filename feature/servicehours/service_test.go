package servicehours

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vmp-sync/core/config"
	"vmp-sync/core/vmp"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

const attendanceEnvelope = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <notifications xmlns="http://soap.sforce.com/2005/09/outbound">
      <Notification>
        <sObject xmlns:sf="urn:sobject.enterprise.soap.sforce.com">
          <sf:HOC__Attendance_Status__c>Attended (and Hours Verified)</sf:HOC__Attendance_Status__c>
          <sf:HOC__Occurrence__c>OCC-1</sf:HOC__Occurrence__c>
          <sf:HOC_Contact_JCVAR_UserId__c>U1</sf:HOC_Contact_JCVAR_UserId__c>
          <sf:HOC_Occurrence_Start_Date_Time__c>2025-09-01T02:00:00Z</sf:HOC_Occurrence_Start_Date_Time__c>
          <sf:HOC_Occurrence_End_Date_Time__c>2025-09-01T06:00:00Z</sf:HOC_Occurrence_End_Date_Time__c>
          <sf:HOC__Number_Hours_Served__c>4</sf:HOC__Number_Hours_Served__c>
        </sObject>
      </Notification>
      <Notification>
        <sObject xmlns:sf="urn:sobject.enterprise.soap.sforce.com">
          <sf:HOC__Attendance_Status__c>No Show</sf:HOC__Attendance_Status__c>
          <sf:HOC__Occurrence__c>OCC-2</sf:HOC__Occurrence__c>
          <sf:HOC_Contact_JCVAR_UserId__c>U2</sf:HOC_Contact_JCVAR_UserId__c>
        </sObject>
      </Notification>
    </notifications>
  </soapenv:Body>
</soapenv:Envelope>`

func TestCollectStagesOnlyVerifiedAttendance(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(config.SyncConfig{}, db, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `serviceHours`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	collected, err := service.Collect(context.Background(), []byte(attendanceEnvelope))
	assert.NoError(t, err)
	assert.Equal(t, 1, collected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectRejectsMalformedEnvelope(t *testing.T) {
	db, _ := setupMockDB(t)
	service := NewService(config.SyncConfig{}, db, nil, zap.NewNop())

	_, err := service.Collect(context.Background(), []byte("<notifications"))
	assert.Error(t, err)
}

func TestCollectSkipsUnparseableHours(t *testing.T) {
	envelope := strings.Replace(attendanceEnvelope, ">4<", ">four<", 1)

	db, mock := setupMockDB(t)
	service := NewService(config.SyncConfig{}, db, nil, zap.NewNop())

	collected, err := service.Collect(context.Background(), []byte(envelope))
	assert.NoError(t, err)
	assert.Equal(t, 0, collected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToRecordNormalizesTimestamps(t *testing.T) {
	record := toRecord(ServiceHourRow{
		OccurrenceID: "OCC-1",
		VolunteerID:  "U1",
		StartDate:    "2025-09-01T10:00:00+0800",
		EndDate:      "2025-09-01T14:00:00+0800",
		Hours:        4,
	})
	assert.Equal(t, "2025-09-01T02:00:00.000Z", record.StartDateTime)
	assert.Equal(t, "2025-09-01T06:00:00.000Z", record.EndDateTime)
	assert.Equal(t, 4.0, record.Hour)
}

func hoursServer(t *testing.T, linkedUsers map[string]bool, hours http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok"})
	})
	mux.HandleFunc("/api/volunteers/link", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		userID, _ := payload["varUserId"].(string)
		linked, known := linkedUsers[userID]
		if !known {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(vmp.LinkResult{IsLink: &linked})
	})
	mux.HandleFunc("/api/hours", hours)
	return httptest.NewTLSServer(mux)
}

func newHoursService(t *testing.T, server *httptest.Server, db *gorm.DB) *Service {
	t.Helper()
	client := vmp.NewClient(vmp.Config{
		Host:        strings.TrimPrefix(server.URL, "https://"),
		Email:       "sync@example.org",
		LoginPath:   "api/auth/login",
		HoursPath:   "api/hours",
		LinkPath:    "api/volunteers/link",
		MaxAttempts: 1,
	}, zap.NewNop()).WithHTTPClient(server.Client())

	return NewService(config.SyncConfig{HoursBatchSize: 100}, db, client, zap.NewNop())
}

func TestDispatchExcludesUnlinkedVolunteers(t *testing.T) {
	var sent []vmp.ServiceHourRecord
	server := hoursServer(t, map[string]bool{"U1": true, "U2": false},
		func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			var result vmp.BatchResult
			result.Success.Total = len(sent)
			_ = json.NewEncoder(w).Encode(result)
		})
	defer server.Close()

	db, mock := setupMockDB(t)
	service := newHoursService(t, server, db)

	rows := sqlmock.NewRows([]string{"id", "occurrenceId", "volunteerId", "startDate", "endDate", "hours", "status"}).
		AddRow(1, "OCC-1", "U1", "2025-09-01T02:00:00Z", "2025-09-01T06:00:00Z", 4.0, StatusNotSent).
		AddRow(2, "OCC-1", "U2", "2025-09-01T02:00:00Z", "2025-09-01T06:00:00Z", 4.0, StatusNotSent).
		AddRow(3, "OCC-2", "U3", "2025-09-02T02:00:00Z", "2025-09-02T06:00:00Z", 2.0, StatusNotSent)
	mock.ExpectQuery("SELECT \\* FROM `serviceHours` WHERE status = ").
		WithArgs(StatusNotSent).
		WillReturnRows(rows)

	// Only U1's row is sent and marked; U2 (unlinked) and U3 (unknown)
	// stay staged without an error.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `serviceHours` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	summary, err := service.Dispatch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Sent 1 service hour record(s) in 1 batch(es) to the VMP", summary)

	assert.Len(t, sent, 1)
	assert.Equal(t, "OCC-1", sent[0].VmpJobID)
	assert.Equal(t, "U1", sent[0].VarUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchMatchesRejectionsOnJobAndUser(t *testing.T) {
	server := hoursServer(t, map[string]bool{"U1": true},
		func(w http.ResponseWriter, r *http.Request) {
			var batch []vmp.ServiceHourRecord
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))

			var result vmp.BatchResult
			result.Error.Total = 1
			result.Error.Data = []vmp.ItemError{{JobID: "OCC-2", UserID: "U1", Message: "job not found"}}
			_ = json.NewEncoder(w).Encode(result)
		})
	defer server.Close()

	db, mock := setupMockDB(t)
	service := newHoursService(t, server, db)

	rows := sqlmock.NewRows([]string{"id", "occurrenceId", "volunteerId", "startDate", "endDate", "hours", "status"}).
		AddRow(1, "OCC-1", "U1", "2025-09-01T02:00:00Z", "2025-09-01T06:00:00Z", 4.0, StatusNotSent).
		AddRow(2, "OCC-2", "U1", "2025-09-02T02:00:00Z", "2025-09-02T06:00:00Z", 2.0, StatusNotSent)
	mock.ExpectQuery("SELECT \\* FROM `serviceHours` WHERE status = ").
		WithArgs(StatusNotSent).
		WillReturnRows(rows)

	// Row 1 sent, row 2 errored, in batch order.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `serviceHours` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `serviceHours` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	summary, err := service.Dispatch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Sent 1 service hour record(s) in 1 batch(es) to the VMP, 1 rejected", summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchNothingStaged(t *testing.T) {
	server := hoursServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no batch should be sent")
	})
	defer server.Close()

	db, mock := setupMockDB(t)
	service := newHoursService(t, server, db)

	mock.ExpectQuery("SELECT \\* FROM `serviceHours` WHERE status = ").
		WithArgs(StatusNotSent).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	summary, err := service.Dispatch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Sent %d service hour record(s) in %d batch(es) to the VMP", 0, 0), summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}
