/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Record creation outcomes (persisted, rejected, failed)
- Report filtering and totals
- Export formats
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll/logging"
	"github.com/warp/payroll/payroll"
	"github.com/warp/payroll/store/memory"
)

const (
	aliceJSON = `{"from_date":"01/01/2024","to_date":"01/07/2024","name":"Alice","hours":40,"rate":20,"tax_rate":0.1}`
	bobJSON   = `{"from_date":"01/08/2024","to_date":"01/14/2024","name":"Bob","hours":35,"rate":25,"tax_rate":0.2}`
)

func newTestServer(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.New()
	h := NewHandler(payroll.NewLedger(store), nil)
	return NewRouter(h, nil), store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateRecord_Persisted(t *testing.T) {
	// GIVEN: an empty store
	srv, store := newTestServer(t)

	// WHEN: Alice's timesheet is posted
	rec := do(t, srv, http.MethodPost, "/api/records", aliceJSON)

	// THEN: 201 with computed pay, and one line stored
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "persisted", resp.Status)
	assert.InDelta(t, 800.0, resp.Row.Gross, 1e-9)
	assert.InDelta(t, 80.0, resp.Row.Tax, 1e-9)
	assert.InDelta(t, 720.0, resp.Row.Net, 1e-9)
	assert.Equal(t, 1, store.Len())
}

func TestCreateRecord_Rejected(t *testing.T) {
	// GIVEN: a record whose name contains the field delimiter
	srv, store := newTestServer(t)
	body := `{"from_date":"01/01/2024","to_date":"01/07/2024","name":"A|B","hours":1,"rate":1,"tax_rate":0}`

	// WHEN: it is posted
	rec := do(t, srv, http.MethodPost, "/api/records", body)

	// THEN: 400 and nothing stored
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid record", resp.Error)
	assert.NotEmpty(t, resp.Details)
	assert.Equal(t, 0, store.Len())
}

func TestCreateRecord_BadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/records", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRecord_StoreFailureIsAccepted(t *testing.T) {
	// GIVEN: a store that refuses writes
	srv, store := newTestServer(t)
	store.FailAppends(errors.New("disk full"))

	// WHEN: a record is posted
	rec := do(t, srv, http.MethodPost, "/api/records", aliceJSON)

	// THEN: 202 with the computed pay and a warning
	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp CreateRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Contains(t, resp.Warning, "disk full")
	assert.InDelta(t, 800.0, resp.Row.Gross, 1e-9)
}

func TestGetReport_AllAndExact(t *testing.T) {
	// GIVEN: Alice and Bob on file
	srv, _ := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/records", aliceJSON)
	do(t, srv, http.MethodPost, "/api/records", bobJSON)

	t.Run("all", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/report", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "all", resp.Filter.Mode)
		assert.Equal(t, 2, resp.Totals.Count)
		assert.InDelta(t, 75.0, resp.Totals.Hours, 1e-9)
		assert.InDelta(t, 1675.0, resp.Totals.Gross, 1e-9)
		assert.InDelta(t, 255.0, resp.Totals.Tax, 1e-9)
		assert.InDelta(t, 1420.0, resp.Totals.Net, 1e-9)
	})

	t.Run("exact", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/report?date=1/1/2024", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "01/01/2024", resp.Filter.Date)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "Alice", resp.Rows[0].Name)
		assert.InDelta(t, 720.0, resp.Totals.Net, 1e-9)
	})

	t.Run("containing", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/report?date=01/10/2024&mode=containing", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "Bob", resp.Rows[0].Name)
	})
}

func TestGetReport_BadFilter(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, target := range []string{
		"/api/report?mode=containing",
		"/api/report?date=soon&mode=containing",
		"/api/report?date=01/01/2024&mode=sideways",
	} {
		rec := do(t, srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListRecords_ReportsSkippedLines(t *testing.T) {
	// GIVEN: a store holding one good line and one with seven fields
	store := memory.NewWithLines(
		"01/01/2024|01/07/2024|Alice|40|20|0.1",
		"01/01/2024|01/07/2024|Eve|1|2|0.1|extra",
	)
	srv := NewRouter(NewHandler(payroll.NewLedger(store), nil), nil)

	// WHEN: records are listed
	rec := do(t, srv, http.MethodGet, "/api/records", "")

	// THEN: the good line is returned and the bad one is reported
	require.Equal(t, http.StatusOK, rec.Code)
	var resp RecordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "Alice", resp.Records[0].Name)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, 2, resp.Skipped[0].Line)
}

func TestExportReport_Formats(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/records", aliceJSON)

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"csv", "text/csv", "from_date,"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
		{"pdf", "application/pdf", "%PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/report/export?format="+tt.format, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-report."+tt.format)
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.prefix))
		})
	}
}

func TestExportReport_UnknownFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/report/export?format=docx", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_LogsRequestsThroughLogger(t *testing.T) {
	// GIVEN: a router whose handler logs JSON to a buffer
	var logs bytes.Buffer
	log := logging.New(logging.Config{Level: "info", Format: "json", Output: &logs})
	srv := NewRouter(NewHandler(payroll.NewLedger(memory.New()), log), nil)

	// WHEN: a request is served
	rec := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN: one structured entry is written synchronously
	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "Request handled", entry["msg"])
	assert.Equal(t, "http", entry[logging.FieldComponent])
	assert.Equal(t, "/healthz", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry[logging.FieldStatus])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestRouter_LogsClientErrorsAtWarn(t *testing.T) {
	var logs bytes.Buffer
	log := logging.New(logging.Config{Level: "warn", Format: "json", Output: &logs})
	srv := NewRouter(NewHandler(payroll.NewLedger(memory.New()), log), nil)

	rec := do(t, srv, http.MethodGet, "/api/report/export?format=docx", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, float64(http.StatusBadRequest), entry[logging.FieldStatus])
}
