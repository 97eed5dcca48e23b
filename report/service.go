package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"log/slog"

	"github.com/mariia-hub/booking-reports/currency"
	"github.com/mariia-hub/booking-reports/entity"
	"github.com/mariia-hub/booking-reports/prediction"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Config holds reporting defaults applied when a request leaves them unset.
type Config struct {
	BaseCurrency       string `mapstructure:"base_currency"`
	DefaultGranularity string `mapstructure:"default_granularity"`
	PredictionSeed     int64  `mapstructure:"prediction_seed"`
}

func (c *Config) granularity() entity.Granularity {
	switch c.DefaultGranularity {
	case "week":
		return entity.GranularityWeek
	case "month":
		return entity.GranularityMonth
	default:
		return entity.GranularityDay
	}
}

// ErrFetchFailed marks a report that could not load its source rows. Retry
// policy belongs to the caller; the service never retries on its own.
var ErrFetchFailed = errors.New("failed to load data")

// RecordSource is the read-only query capability against the booking store.
type RecordSource interface {
	GetBookings(ctx context.Context, period entity.TimeRange, filter entity.RecordFilter) ([]entity.BookingRecord, error)
}

// Service computes booking reports. Each computation owns its bucket map,
// so concurrent report requests share nothing but the source.
type Service struct {
	cfg  Config
	src  RecordSource
	pred prediction.Provider
	now  func() time.Time
}

// New creates a report service. c may be nil for defaults. pred may be
// nil; a configured prediction seed then backs the insight feed, otherwise
// overviews carry no insights.
func New(c *Config, src RecordSource, pred prediction.Provider) *Service {
	if c == nil {
		c = &Config{}
	}
	if c.BaseCurrency == "" {
		c.BaseCurrency = currency.DefaultCurrency
	}
	if pred == nil && c.PredictionSeed != 0 {
		pred = &prediction.Seeded{Seed: c.PredictionSeed}
	}
	return &Service{
		cfg:  *c,
		src:  src,
		pred: pred,
		now:  time.Now,
	}
}

// BuildReport runs one fetch-fold-derive pass and returns the rendered
// report table. Cancelling ctx abandons the partial bucket map; nothing is
// persisted.
func (s *Service) BuildReport(ctx context.Context, req entity.ReportRequest) (*entity.Report, error) {
	if req.Dimension == entity.ByTime && req.Granularity == 0 {
		req.Granularity = s.cfg.granularity()
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report request: %w", err)
	}

	records, err := s.src.GetBookings(ctx, req.Period, req.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resolve := ResolverFor(req.Dimension, req.Granularity)
	buckets := Aggregate(records, resolve)

	cur := s.cfg.BaseCurrency
	if req.Filter.Currency != "" {
		cur = req.Filter.Currency
	}

	r := &entity.Report{
		Name:          req.Name,
		Period:        req.Period,
		ComparePeriod: req.ComparePeriod,
		Dimension:     req.Dimension,
		Granularity:   req.Granularity,
		Totals:        row(foldTotal(records), cur),
		GeneratedAt:   s.now().UTC(),
	}

	if req.Dimension == entity.ByTime {
		r.Rows = timeRows(buckets, req.Period, req.Granularity, cur)
	} else {
		r.Rows = categoryRows(buckets, req.Dimension, cur)
	}

	r.Summary = summarize(r.Totals)
	if req.ComparePeriod != nil {
		compareRecords, err := s.src.GetBookings(ctx, *req.ComparePeriod, req.Filter)
		if err != nil {
			// Compare data is decoration; the primary report still stands.
			slog.Default().WarnContext(ctx, "can't load compare period",
				slog.String("report", req.Name),
				slog.String("err", err.Error()),
			)
		} else {
			applyCompare(&r.Summary, row(foldTotal(compareRecords), cur))
		}
	}

	return r, nil
}

// BuildOverview computes the dashboard's standard breakdowns concurrently.
// Each breakdown is an independent report request with its own bucket map.
func (s *Service) BuildOverview(ctx context.Context, period entity.TimeRange, comparePeriod *entity.TimeRange) (*entity.Overview, error) {
	ov := &entity.Overview{Period: period}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ov.ByDay, err = s.BuildReport(gctx, entity.ReportRequest{
			Name:          "bookings-by-day",
			Period:        period,
			ComparePeriod: comparePeriod,
			Dimension:     entity.ByTime,
			Granularity:   entity.GranularityDay,
		})
		return err
	})
	g.Go(func() error {
		var err error
		ov.ByService, err = s.BuildReport(gctx, entity.ReportRequest{
			Name:      "bookings-by-service",
			Period:    period,
			Dimension: entity.ByService,
		})
		return err
	})
	g.Go(func() error {
		var err error
		ov.ByProvider, err = s.BuildReport(gctx, entity.ReportRequest{
			Name:      "bookings-by-provider",
			Period:    period,
			Dimension: entity.ByProvider,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.pred != nil {
		insights, err := s.pred.ScheduleInsights(ctx, period)
		if err != nil {
			slog.Default().WarnContext(ctx, "can't load schedule insights",
				slog.String("err", err.Error()),
			)
		} else {
			ov.Insights = insights
		}
	}

	return ov, nil
}

// timeRows renders buckets chronologically and fills missing buckets with
// zero rows so charts stay continuous. The unknown bucket goes last.
func timeRows(buckets map[string]*entity.Bucket, period entity.TimeRange, g entity.Granularity, cur string) []entity.ReportRow {
	var rows []entity.ReportRow
	at := bucketStart(period.From, g)
	end := bucketStart(period.To.Add(-time.Nanosecond), g)
	for !at.After(end) {
		key := at.Format(keyDateLayout)
		if b, ok := buckets[key]; ok {
			rows = append(rows, row(b, cur))
		} else {
			rows = append(rows, row(entity.NewBucket(key), cur))
		}
		at = bucketNext(at, g)
	}
	if b, ok := buckets[KeyUnknown]; ok {
		rows = append(rows, row(b, cur))
	}
	return rows
}

// categoryRows renders buckets ordered by net revenue descending. Currency
// buckets round in their own currency; every other dimension uses cur.
func categoryRows(buckets map[string]*entity.Bucket, dim entity.Dimension, cur string) []entity.ReportRow {
	rows := make([]entity.ReportRow, 0, len(buckets))
	for _, b := range buckets {
		c := cur
		if dim == entity.ByCurrency && b.Key != KeyUnknown {
			c = b.Key
		}
		rows = append(rows, row(b, c))
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Metrics.NetRevenue.Equal(rows[j].Metrics.NetRevenue) {
			return rows[i].Metrics.NetRevenue.GreaterThan(rows[j].Metrics.NetRevenue)
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func summarize(total entity.ReportRow) entity.ReportSummary {
	return entity.ReportSummary{
		NetRevenue:        entity.MetricWithComparison{Value: total.Metrics.NetRevenue},
		Bookings:          entity.MetricWithComparison{Value: decimal.NewFromInt(int64(total.Count))},
		AvgOrderValue:     entity.MetricWithComparison{Value: total.Metrics.AverageOrderValue},
		CompletionRate:    entity.MetricWithComparison{Value: total.Metrics.CompletionRate},
		CancellationRate:  entity.MetricWithComparison{Value: total.Metrics.CancellationRate},
		DistinctCustomers: entity.MetricWithComparison{Value: decimal.NewFromInt(int64(total.DistinctCustomers))},
	}
}

func applyCompare(s *entity.ReportSummary, compare entity.ReportRow) {
	set := func(m *entity.MetricWithComparison, prev decimal.Decimal) {
		m.CompareValue = ptr(prev)
		m.ChangePct = changePct(m.Value, prev)
	}
	set(&s.NetRevenue, compare.Metrics.NetRevenue)
	set(&s.Bookings, decimal.NewFromInt(int64(compare.Count)))
	set(&s.AvgOrderValue, compare.Metrics.AverageOrderValue)
	set(&s.CompletionRate, compare.Metrics.CompletionRate)
	set(&s.CancellationRate, compare.Metrics.CancellationRate)
	set(&s.DistinctCustomers, decimal.NewFromInt(int64(compare.DistinctCustomers)))
}

func changePct(current, previous decimal.Decimal) *float64 {
	if previous.IsZero() {
		return nil
	}
	diff := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	f, _ := diff.Float64()
	return &f
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
