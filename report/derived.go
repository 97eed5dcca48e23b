package report

import (
	"github.com/mariia-hub/booking-reports/currency"
	"github.com/mariia-hub/booking-reports/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Derive computes ratio metrics from a completed bucket. Pure function of
// already-summed values; every division guards the zero denominator so
// empty buckets yield 0 for all fields, never NaN or a panic. Divided
// amounts round to cur's minor units, so a JPY bucket reports whole yen.
func Derive(b *entity.Bucket, cur string) entity.DerivedMetrics {
	m := entity.DerivedMetrics{
		AverageOrderValue: decimal.Zero,
		NetRevenue:        b.SumAmount.Sub(b.SumRefund),
		CompletionRate:    decimal.Zero,
		CancellationRate:  decimal.Zero,
		FillRate:          decimal.Zero,
	}
	if b.Count == 0 {
		return m
	}
	count := decimal.NewFromInt(int64(b.Count))
	m.AverageOrderValue = currency.Round(b.SumAmount.Div(count), cur)
	m.CompletionRate = statusRate(b, count, entity.Completed)
	m.CancellationRate = statusRate(b, count, entity.Cancelled)
	m.FillRate = statusRate(b, count, entity.Confirmed, entity.Completed)
	return m
}

func statusRate(b *entity.Bucket, count decimal.Decimal, statuses ...entity.BookingStatus) decimal.Decimal {
	n := 0
	for _, s := range statuses {
		n += b.StatusCounts[s]
	}
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n)).Div(count).Mul(hundred).Round(1)
}

func row(b *entity.Bucket, cur string) entity.ReportRow {
	return entity.ReportRow{
		Key:               b.Key,
		Count:             b.Count,
		DistinctCustomers: b.DistinctCustomers(),
		SumAmount:         b.SumAmount,
		SumRefund:         b.SumRefund,
		Metrics:           Derive(b, cur),
	}
}
