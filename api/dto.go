/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done by the ledger, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/warp/payroll/payroll"

// =============================================================================
// RECORDS
// =============================================================================

// CreateRecordRequest is the body of POST /api/records.
// TaxRate is a fraction (0.2 for 20%).
type CreateRecordRequest struct {
	FromDate string  `json:"from_date"`
	ToDate   string  `json:"to_date"`
	Name     string  `json:"name"`
	Hours    float64 `json:"hours"`
	Rate     float64 `json:"rate"`
	TaxRate  float64 `json:"tax_rate"`
}

func (r CreateRecordRequest) toRecord() payroll.Record {
	return payroll.Record{
		FromDate: r.FromDate,
		ToDate:   r.ToDate,
		Name:     r.Name,
		Hours:    r.Hours,
		Rate:     r.Rate,
		TaxRate:  r.TaxRate,
	}
}

// RowDTO is one record with its computed pay.
type RowDTO struct {
	FromDate string  `json:"from_date"`
	ToDate   string  `json:"to_date"`
	Name     string  `json:"name"`
	Hours    float64 `json:"hours"`
	Rate     float64 `json:"rate"`
	TaxRate  float64 `json:"tax_rate"`
	Gross    float64 `json:"gross"`
	Tax      float64 `json:"tax"`
	Net      float64 `json:"net"`
}

// CreateRecordResponse reports the outcome of an append.
type CreateRecordResponse struct {
	Status       string `json:"status"`
	Row          RowDTO `json:"row"`
	Warning      string `json:"warning,omitempty"`
	DateFallback bool   `json:"date_fallback,omitempty"`
}

// SkippedLineDTO is a stored line that did not decode.
type SkippedLineDTO struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// RecordsResponse is the body of GET /api/records.
type RecordsResponse struct {
	Records []RowDTO         `json:"records"`
	Skipped []SkippedLineDTO `json:"skipped"`
}

// =============================================================================
// REPORTS
// =============================================================================

type TotalsDTO struct {
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
	Gross float64 `json:"gross"`
	Tax   float64 `json:"tax"`
	Net   float64 `json:"net"`
}

type FilterDTO struct {
	Mode string `json:"mode"`
	Date string `json:"date,omitempty"`
}

// ReportResponse is the body of GET /api/report.
type ReportResponse struct {
	Filter  FilterDTO        `json:"filter"`
	Rows    []RowDTO         `json:"rows"`
	Totals  TotalsDTO        `json:"totals"`
	Skipped []SkippedLineDTO `json:"skipped"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toRowDTO(row payroll.Row) RowDTO {
	return RowDTO{
		FromDate: row.FromDate,
		ToDate:   row.ToDate,
		Name:     row.Name,
		Hours:    row.Hours,
		Rate:     row.Rate,
		TaxRate:  row.TaxRate,
		Gross:    row.Gross,
		Tax:      row.Tax,
		Net:      row.Net,
	}
}

func toRowDTOs(rows []payroll.Row) []RowDTO {
	dtos := make([]RowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toRowDTO(row)
	}
	return dtos
}

func toSkippedDTOs(skipped []payroll.SkippedLine) []SkippedLineDTO {
	dtos := make([]SkippedLineDTO, len(skipped))
	for i, s := range skipped {
		dtos[i] = SkippedLineDTO{Line: s.Line, Reason: s.Reason}
	}
	return dtos
}

func toReportResponse(rep payroll.Report) ReportResponse {
	t := rep.Totals
	return ReportResponse{
		Filter: FilterDTO{Mode: string(rep.Filter.Kind), Date: rep.Filter.Date},
		Rows:   toRowDTOs(rep.Rows),
		Totals: TotalsDTO{
			Count: t.Count,
			Hours: t.Hours,
			Gross: t.Gross,
			Tax:   t.Tax,
			Net:   t.Net,
		},
		Skipped: toSkippedDTOs(rep.Skipped),
	}
}
