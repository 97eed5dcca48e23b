package exportworker

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/mariia-hub/booking-reports/entity"
	"github.com/mariia-hub/booking-reports/export"
)

func (w *Worker) worker(ctx context.Context) {
	ticker := time.NewTicker(w.c.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.exportOnce(ctx); err != nil {
				slog.Default().ErrorContext(ctx, "can't export scheduled report",
					slog.String("report", w.c.ReportName),
					slog.String("err", err.Error()),
				)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) exportOnce(ctx context.Context) error {
	now := time.Now().UTC()
	r, err := w.svc.BuildReport(ctx, entity.ReportRequest{
		Name:        w.c.ReportName,
		Period:      entity.TimeRange{From: now.Add(-w.c.Window), To: now},
		Dimension:   entity.ByTime,
		Granularity: entity.GranularityDay,
	})
	if err != nil {
		return fmt.Errorf("can't build report: %w", err)
	}

	path, err := export.WriteFile(w.c.OutputDir, r, export.Format(w.c.Format))
	if err != nil {
		return err
	}
	slog.Default().InfoContext(ctx, "exported scheduled report",
		slog.String("report", w.c.ReportName),
		slog.String("path", path),
		slog.Int("rows", len(r.Rows)),
	)
	return nil
}
