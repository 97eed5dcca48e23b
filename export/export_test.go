package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mariia-hub/booking-reports/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *entity.Report {
	mkRow := func(key string, count int, amount, refund int64) entity.ReportRow {
		sum := decimal.NewFromInt(amount)
		ref := decimal.NewFromInt(refund)
		return entity.ReportRow{
			Key:               key,
			Count:             count,
			DistinctCustomers: count,
			SumAmount:         sum,
			SumRefund:         ref,
			Metrics: entity.DerivedMetrics{
				AverageOrderValue: sum.Div(decimal.NewFromInt(int64(count))).Round(2),
				NetRevenue:        sum.Sub(ref),
				CompletionRate:    decimal.NewFromFloat(66.7),
				CancellationRate:  decimal.NewFromFloat(33.3),
				FillRate:          decimal.NewFromFloat(66.7),
			},
		}
	}
	return &entity.Report{
		Name: "Daily Bookings",
		Period: entity.TimeRange{
			From: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		Dimension:   entity.ByTime,
		Granularity: entity.GranularityDay,
		Rows: []entity.ReportRow{
			mkRow("2024-03-11", 2, 300, 0),
			mkRow("2024-03-12", 1, 50, 50),
		},
		Totals:      mkRow("total", 3, 350, 50),
		GeneratedAt: time.Date(2024, 3, 14, 8, 30, 0, 0, time.UTC),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"date", "bookings", "distinct_customers", "gross_amount", "refunded_amount",
		"net_revenue", "avg_order_value", "completion_rate", "cancellation_rate", "fill_rate",
	}, rows[0])
	assert.Equal(t, "2024-03-11", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "300", rows[1][3])
	assert.Equal(t, "0", rows[2][5]) // 50 gross minus 50 refunded
}

func TestWriteCSVQuotesHostileKeys(t *testing.T) {
	r := sampleReport()
	r.Dimension = entity.ByService
	r.Rows[0].Key = `massage, "deep tissue"`

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r))

	// field survives the round trip with comma and quotes intact
	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "service_id", rows[0][0])
	assert.Equal(t, `massage, "deep tissue"`, rows[1][0])
}

func TestJSONRoundTrip(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	env, err := WriteJSON(&buf, r)
	require.NoError(t, err)
	assert.NotEmpty(t, env.ExportID)
	assert.Equal(t, 2, env.RowCount)

	parsed, err := ParseJSON(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, env.ExportID, parsed.ExportID)
	assert.Equal(t, r.Name, parsed.Report.Name)
	require.Len(t, parsed.Report.Rows, 2)

	// decimals marshal as strings, so totals re-parse without loss
	assert.True(t, parsed.Report.Totals.GrossAmount.Equal(r.Totals.SumAmount))
	assert.True(t, parsed.Report.Totals.NetRevenue.Equal(r.Totals.Metrics.NetRevenue))
	assert.True(t, parsed.Report.Rows[0].CompletionRate.Equal(decimal.NewFromFloat(66.7)))
}

func TestFilename(t *testing.T) {
	r := sampleReport()

	assert.Equal(t, "daily-bookings-2024-03-14.csv", Filename(r, FormatCSV))
	assert.Equal(t, "daily-bookings-2024-03-14.json", Filename(r, FormatJSON))

	r.Name = "  Bookings   By  Provider "
	assert.Equal(t, "bookings-by-provider-2024-03-14.csv", Filename(r, FormatCSV))
}

func TestFilenameStripsPathSeparators(t *testing.T) {
	r := sampleReport()
	r.Name = `../nightly/book\ings`

	name := Filename(r, FormatCSV)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, `\`)
	assert.Equal(t, "..-nightly-book-ings-2024-03-14.csv", name)

	// a hostile configured name cannot climb out of the output dir
	dir := t.TempDir()
	path, err := WriteFile(dir, r, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, sampleReport(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "daily-bookings-2024-03-14.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "net_revenue")

	_, err = WriteFile(dir, sampleReport(), Format("xml"))
	require.Error(t, err)
}

func TestFormatValid(t *testing.T) {
	assert.True(t, FormatCSV.Valid())
	assert.True(t, FormatJSON.Valid())
	assert.False(t, Format("xlsx").Valid())
	assert.False(t, Format("").Valid())
}
