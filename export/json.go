package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mariia-hub/booking-reports/entity"
	"github.com/shopspring/decimal"
)

// Envelope is the JSON export document. The top-level export id, timestamp
// and row count exist for audit trails; decimal fields marshal as strings,
// so re-parsing an export loses nothing.
type Envelope struct {
	ExportID   string    `json:"export_id"`
	ExportedAt time.Time `json:"exported_at"`
	RowCount   int       `json:"row_count"`
	Report     ReportDoc `json:"report"`
}

type ReportDoc struct {
	Name        string    `json:"name"`
	PeriodFrom  time.Time `json:"period_from"`
	PeriodTo    time.Time `json:"period_to"`
	Dimension   string    `json:"dimension"`
	Granularity int       `json:"granularity,omitempty"`
	Rows        []RowDoc  `json:"rows"`
	Totals      RowDoc    `json:"totals"`
	GeneratedAt time.Time `json:"generated_at"`
}

type RowDoc struct {
	Key               string          `json:"key"`
	Bookings          int             `json:"bookings"`
	DistinctCustomers int             `json:"distinct_customers"`
	GrossAmount       decimal.Decimal `json:"gross_amount"`
	RefundedAmount    decimal.Decimal `json:"refunded_amount"`
	NetRevenue        decimal.Decimal `json:"net_revenue"`
	AvgOrderValue     decimal.Decimal `json:"avg_order_value"`
	CompletionRate    decimal.Decimal `json:"completion_rate"`
	CancellationRate  decimal.Decimal `json:"cancellation_rate"`
	FillRate          decimal.Decimal `json:"fill_rate"`
}

// WriteJSON writes the pretty-printed JSON export and returns the envelope
// that was written, including the generated export id.
func WriteJSON(w io.Writer, r *entity.Report) (*Envelope, error) {
	env := &Envelope{
		ExportID:   uuid.NewString(),
		ExportedAt: time.Now().UTC(),
		RowCount:   len(r.Rows),
		Report: ReportDoc{
			Name:        r.Name,
			PeriodFrom:  r.Period.From,
			PeriodTo:    r.Period.To,
			Dimension:   string(r.Dimension),
			Granularity: int(r.Granularity),
			Rows:        make([]RowDoc, len(r.Rows)),
			Totals:      rowDoc(r.Totals),
			GeneratedAt: r.GeneratedAt,
		},
	}
	for i, row := range r.Rows {
		env.Report.Rows[i] = rowDoc(row)
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}
	return env, nil
}

// ParseJSON reads a JSON export back into its envelope.
func ParseJSON(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &env, nil
}

func rowDoc(row entity.ReportRow) RowDoc {
	return RowDoc{
		Key:               row.Key,
		Bookings:          row.Count,
		DistinctCustomers: row.DistinctCustomers,
		GrossAmount:       row.SumAmount,
		RefundedAmount:    row.SumRefund,
		NetRevenue:        row.Metrics.NetRevenue,
		AvgOrderValue:     row.Metrics.AverageOrderValue,
		CompletionRate:    row.Metrics.CompletionRate,
		CancellationRate:  row.Metrics.CancellationRate,
		FillRate:          row.Metrics.FillRate,
	}
}
