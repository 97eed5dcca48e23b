package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mariia-hub/booking-reports/entity"
)

// WriteCSV writes the report rows as CSV: header row first, one row per
// bucket. encoding/csv quotes any field containing a comma or quote, so the
// output stays parseable even with hostile keys.
func WriteCSV(w io.Writer, r *entity.Report) error {
	cw := csv.NewWriter(w)

	header := []string{
		keyHeader(r.Dimension),
		"bookings",
		"distinct_customers",
		"gross_amount",
		"refunded_amount",
		"net_revenue",
		"avg_order_value",
		"completion_rate",
		"cancellation_rate",
		"fill_rate",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}

	for _, row := range r.Rows {
		record := []string{
			row.Key,
			strconv.Itoa(row.Count),
			strconv.Itoa(row.DistinctCustomers),
			row.SumAmount.String(),
			row.SumRefund.String(),
			row.Metrics.NetRevenue.String(),
			row.Metrics.AverageOrderValue.String(),
			row.Metrics.CompletionRate.String(),
			row.Metrics.CancellationRate.String(),
			row.Metrics.FillRate.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv row %s: %w", row.Key, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
