package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/warp/payroll/payroll"
)

// RecordAppendedMessage announces one record that reached the store.
// Pay values are included so consumers do not have to recompute them.
type RecordAppendedMessage struct {
	ID        uuid.UUID     `json:"id"`
	Record    RecordPayload `json:"record"`
	Gross     float64       `json:"gross"`
	Tax       float64       `json:"tax"`
	Net       float64       `json:"net"`
	Timestamp time.Time     `json:"timestamp"`
}

type RecordPayload struct {
	FromDate string  `json:"from_date"`
	ToDate   string  `json:"to_date"`
	Name     string  `json:"name"`
	Hours    float64 `json:"hours"`
	Rate     float64 `json:"rate"`
	TaxRate  float64 `json:"tax_rate"`
}

// NewRecordAppendedMessage builds a message with a fresh ID.
func NewRecordAppendedMessage(row payroll.Row) *RecordAppendedMessage {
	return &RecordAppendedMessage{
		ID: uuid.New(),
		Record: RecordPayload{
			FromDate: row.FromDate,
			ToDate:   row.ToDate,
			Name:     row.Name,
			Hours:    row.Hours,
			Rate:     row.Rate,
			TaxRate:  row.TaxRate,
		},
		Gross:     row.Gross,
		Tax:       row.Tax,
		Net:       row.Net,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordAppendedMessageFromJSON parses a message body.
func RecordAppendedMessageFromJSON(data []byte) (*RecordAppendedMessage, error) {
	var msg RecordAppendedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
