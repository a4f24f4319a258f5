/*
handlers.go - HTTP API handlers for the payroll ledger

PURPOSE:
  Exposes the ledger via REST API. Handles HTTP request/response and JSON
  serialization, and delegates everything else to payroll.Ledger.

ERROR HANDLING:
  Errors are returned as JSON {error, details} with an HTTP status:
  - 400: Invalid body, rejected record, bad query parameter
  - 500: The store could not be read

  A record the store refused to write is NOT an error response: it comes
  back as 202 with status "failed" and a warning, because the pay was
  still computed and the caller may want to show it.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/warp/payroll/export"
	"github.com/warp/payroll/logging"
	"github.com/warp/payroll/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger *payroll.Ledger
	log    *logging.Logger
}

// NewHandler creates a new handler over the given ledger.
func NewHandler(ledger *payroll.Ledger, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{
		Ledger: ledger,
		log:    log.WithComponent(logging.ComponentHTTP),
	}
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns every decodable record with its computed pay.
// GET /api/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	scan, err := h.Ledger.Scan(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read records", err)
		return
	}

	rows := make([]payroll.Row, len(scan.Records))
	for i, rec := range scan.Records {
		rows[i] = payroll.NewRow(rec)
	}

	writeJSON(w, http.StatusOK, RecordsResponse{
		Records: toRowDTOs(rows),
		Skipped: toSkippedDTOs(scan.Skipped),
	})
}

// CreateRecord appends one record.
// POST /api/records
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res := h.Ledger.Record(r.Context(), req.toRecord())

	resp := CreateRecordResponse{
		Status:       string(res.Status),
		Row:          toRowDTO(res.Row),
		DateFallback: res.DateFallback,
	}

	switch res.Status {
	case payroll.StatusRejected:
		writeError(w, http.StatusBadRequest, "Invalid record", res.Err)
	case payroll.StatusFailed:
		resp.Warning = res.Warning.Error()
		writeJSON(w, http.StatusAccepted, resp)
	default:
		writeJSON(w, http.StatusCreated, resp)
	}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetReport returns the filtered rows and their totals.
// GET /api/report?date=mm/dd/yyyy&mode=exact|containing
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report filter", err)
		return
	}

	rep, err := h.Ledger.Report(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

// ExportReport renders the report as a downloadable file.
// GET /api/report/export?format=csv|xlsx|pdf&date=...&mode=...
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	format := export.FormatCSV
	if raw := r.URL.Query().Get("format"); raw != "" {
		f, err := export.ParseFormat(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid export format", err)
			return
		}
		format = f
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report filter", err)
		return
	}

	rep, err := h.Ledger.Report(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	// Render fully before writing headers so a failed render is still a JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, rep); err != nil {
		h.log.Error("Export failed",
			logging.FieldOperation, logging.OpExport,
			logging.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "Failed to export report", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

var errContainingNeedsDate = errors.New("mode=containing requires a valid date")

// filterFromQuery reads date and mode. No date means every record.
func filterFromQuery(r *http.Request) (payroll.Filter, error) {
	q := r.URL.Query()
	date := q.Get("date")
	mode := payroll.FilterKind(q.Get("mode"))

	if date == "" {
		if mode == payroll.FilterContaining {
			return payroll.Filter{}, errContainingNeedsDate
		}
		return payroll.All(), nil
	}

	canonical, ok := payroll.NormalizeDate(date)

	switch mode {
	case "", payroll.FilterExactDate:
		// Exact matching is textual; an unparseable date simply matches
		// records stored with that same raw text.
		return payroll.ExactDate(canonical), nil
	case payroll.FilterContaining:
		if !ok {
			return payroll.Filter{}, fmt.Errorf("%w: %q", errContainingNeedsDate, date)
		}
		return payroll.Containing(canonical), nil
	case payroll.FilterAll:
		return payroll.All(), nil
	default:
		return payroll.Filter{}, fmt.Errorf("unknown mode %q: must be exact or containing", mode)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
