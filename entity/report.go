package entity

import (
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/mariia-hub/booking-reports/currency"
	"github.com/shopspring/decimal"
)

// Granularity controls time bucket size for time-keyed reports (day, week, month).
type Granularity int

const (
	GranularityDay   Granularity = 1
	GranularityWeek  Granularity = 2
	GranularityMonth Granularity = 3
)

// Dimension selects the grouping axis for a report.
type Dimension string

const (
	ByTime     Dimension = "time"
	ByService  Dimension = "service"
	ByProvider Dimension = "provider"
	ByCurrency Dimension = "currency"
)

type TimeRange struct {
	From time.Time
	To   time.Time
}

// Bucket accumulates running totals for one grouping key. It is created on
// the first record matching the key and mutated by every subsequent match.
type Bucket struct {
	Key          string
	Count        int
	SumAmount    decimal.Decimal
	SumRefund    decimal.Decimal
	StatusCounts map[BookingStatus]int
	CustomerIDs  map[string]struct{}
}

func NewBucket(key string) *Bucket {
	return &Bucket{
		Key:          key,
		SumAmount:    decimal.Zero,
		SumRefund:    decimal.Zero,
		StatusCounts: make(map[BookingStatus]int),
		CustomerIDs:  make(map[string]struct{}),
	}
}

// DistinctCustomers returns the number of unique customers seen in the bucket.
func (b *Bucket) DistinctCustomers() int {
	return len(b.CustomerIDs)
}

// DerivedMetrics holds ratios computed from a completed bucket. All fields
// are 0 for an empty bucket; rates are percentages.
type DerivedMetrics struct {
	AverageOrderValue decimal.Decimal
	NetRevenue        decimal.Decimal
	CompletionRate    decimal.Decimal
	CancellationRate  decimal.Decimal
	FillRate          decimal.Decimal
}

// ReportRow is one rendered bucket: key, raw totals and derived metrics.
type ReportRow struct {
	Key               string
	Count             int
	DistinctCustomers int
	SumAmount         decimal.Decimal
	SumRefund         decimal.Decimal
	Metrics           DerivedMetrics
}

type MetricWithComparison struct {
	Value        decimal.Decimal
	CompareValue *decimal.Decimal
	ChangePct    *float64
}

// ReportSummary carries whole-period headline metrics with optional
// compare-period deltas.
type ReportSummary struct {
	NetRevenue        MetricWithComparison
	Bookings          MetricWithComparison
	AvgOrderValue     MetricWithComparison
	CompletionRate    MetricWithComparison
	CancellationRate  MetricWithComparison
	DistinctCustomers MetricWithComparison
}

// ScheduleInsight is one labeled prediction surfaced on the dashboard.
// The backing provider decides how real the prediction is.
type ScheduleInsight struct {
	Label      string
	Detail     string
	Confidence float64
}

// Report is the in-memory result table of one report computation.
type Report struct {
	Name          string
	Period        TimeRange
	ComparePeriod *TimeRange
	Dimension     Dimension
	Granularity   Granularity
	Rows          []ReportRow
	Totals        ReportRow
	Summary       ReportSummary
	Insights      []ScheduleInsight
	GeneratedAt   time.Time
}

// Overview bundles the dashboard's standard breakdowns for one period.
type Overview struct {
	Period     TimeRange
	ByDay      *Report
	ByService  *Report
	ByProvider *Report
	Insights   []ScheduleInsight
}

// RecordFilter narrows a booking fetch to a service, provider or currency.
type RecordFilter struct {
	ServiceID  string
	ProviderID string
	Currency   string
}

// ReportRequest describes one report computation.
type ReportRequest struct {
	Name          string
	Period        TimeRange
	ComparePeriod *TimeRange
	Dimension     Dimension
	Granularity   Granularity
	Filter        RecordFilter
}

// Validate checks the request before any fetch is issued.
func (r *ReportRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("report name is required")
	}
	if r.Period.From.IsZero() || r.Period.To.IsZero() {
		return fmt.Errorf("report period is required")
	}
	if !r.Period.To.After(r.Period.From) {
		return fmt.Errorf("report period end %s must be after start %s",
			r.Period.To.Format(time.RFC3339), r.Period.From.Format(time.RFC3339))
	}
	if r.ComparePeriod != nil && !r.ComparePeriod.To.After(r.ComparePeriod.From) {
		return fmt.Errorf("compare period end must be after start")
	}
	if !govalidator.IsIn(string(r.Dimension), string(ByTime), string(ByService), string(ByProvider), string(ByCurrency)) {
		return fmt.Errorf("unknown report dimension %q", r.Dimension)
	}
	if r.Dimension == ByTime {
		switch r.Granularity {
		case GranularityDay, GranularityWeek, GranularityMonth:
		default:
			return fmt.Errorf("unknown granularity %d", r.Granularity)
		}
	}
	if r.Filter.ServiceID != "" && !govalidator.IsUUID(r.Filter.ServiceID) {
		return fmt.Errorf("service id %q is not a valid uuid", r.Filter.ServiceID)
	}
	if r.Filter.ProviderID != "" && !govalidator.IsUUID(r.Filter.ProviderID) {
		return fmt.Errorf("provider id %q is not a valid uuid", r.Filter.ProviderID)
	}
	if r.Filter.Currency != "" && !currency.Valid(r.Filter.Currency) {
		return fmt.Errorf("currency %q is not a valid ISO 4217 code", r.Filter.Currency)
	}
	return nil
}
