package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/mariia-hub/booking-reports/entity"
	"github.com/shopspring/decimal"
)

type bookingRow struct {
	ID           string          `db:"id"`
	ServiceID    sql.NullString  `db:"service_id"`
	ProviderID   sql.NullString  `db:"provider_id"`
	CustomerID   sql.NullString  `db:"customer_id"`
	BookedAt     sql.NullTime    `db:"booked_at"`
	Status       string          `db:"status"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	RefundAmount decimal.Decimal `db:"refund_amount"`
	Currency     string          `db:"currency"`
}

// GetBookings returns raw booking rows for the window. Rows with a NULL
// booked_at are always included so they surface in the report's unknown
// bucket instead of vanishing between windows.
func (bs *BookingStore) GetBookings(ctx context.Context, period entity.TimeRange, filter entity.RecordFilter) ([]entity.BookingRecord, error) {
	query := `
		SELECT b.id, b.service_id, b.provider_id, b.customer_id, b.booked_at,
			b.status, b.total_amount, COALESCE(b.refund_amount, 0) AS refund_amount, b.currency
		FROM booking b
		WHERE (b.booked_at IS NULL OR (b.booked_at >= :from AND b.booked_at < :to))
	`
	params := map[string]any{"from": period.From, "to": period.To}
	if filter.ServiceID != "" {
		query += " AND b.service_id = :serviceId"
		params["serviceId"] = filter.ServiceID
	}
	if filter.ProviderID != "" {
		query += " AND b.provider_id = :providerId"
		params["providerId"] = filter.ProviderID
	}
	if filter.Currency != "" {
		query += " AND UPPER(b.currency) = UPPER(:currency)"
		params["currency"] = filter.Currency
	}
	query += " ORDER BY b.booked_at"

	rows, err := QueryListNamed[bookingRow](ctx, bs.db, query, params)
	if err != nil {
		return nil, err
	}

	records := make([]entity.BookingRecord, len(rows))
	for i, r := range rows {
		records[i] = r.toRecord()
	}
	return records, nil
}

// CountBookings returns the number of rows a window would fetch. The
// dashboard uses it to warn before exporting very large reports.
func (bs *BookingStore) CountBookings(ctx context.Context, period entity.TimeRange) (int32, error) {
	query := `
		SELECT COUNT(*) FROM booking b
		WHERE (b.booked_at IS NULL OR (b.booked_at >= :from AND b.booked_at < :to))
	`
	return QueryCountNamed(ctx, bs.db, query, map[string]any{"from": period.From, "to": period.To})
}

func (r bookingRow) toRecord() entity.BookingRecord {
	rec := entity.BookingRecord{
		ID:           r.ID,
		ServiceID:    r.ServiceID.String,
		ProviderID:   r.ProviderID.String,
		CustomerID:   r.CustomerID.String,
		Status:       entity.BookingStatus(r.Status),
		TotalAmount:  r.TotalAmount,
		RefundAmount: r.RefundAmount,
		Currency:     r.Currency,
	}
	if r.BookedAt.Valid {
		rec.BookingDate = r.BookedAt.Time.Format(time.RFC3339)
	}
	return rec
}
