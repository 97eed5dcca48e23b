package exportworker

import (
	"context"
	"fmt"
	"time"

	"github.com/mariia-hub/booking-reports/export"
	"github.com/mariia-hub/booking-reports/report"
)

// Config holds configuration for the scheduled export worker.
type Config struct {
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	Window         time.Duration `mapstructure:"window"` // period covered by each export, counted back from now
	OutputDir      string        `mapstructure:"output_dir"`
	ReportName     string        `mapstructure:"report_name"`
	Format         string        `mapstructure:"format"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		WorkerInterval: 24 * time.Hour,
		Window:         24 * time.Hour,
		OutputDir:      ".",
		ReportName:     "daily-bookings",
		Format:         string(export.FormatCSV),
	}
}

// Worker periodically builds the configured report and writes the export
// file. Failures are logged and retried on the next tick; nothing is fatal.
type Worker struct {
	svc  *report.Service
	c    *Config
	ctx  context.Context
	stop context.CancelFunc
}

// New creates a new export worker.
func New(c *Config, svc *report.Service) *Worker {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.WorkerInterval == 0 {
		c.WorkerInterval = 24 * time.Hour
	}
	if c.Window == 0 {
		c.Window = 24 * time.Hour
	}
	if c.ReportName == "" {
		c.ReportName = "daily-bookings"
	}
	if c.Format == "" {
		c.Format = string(export.FormatCSV)
	}
	return &Worker{
		svc: svc,
		c:   c,
	}
}

// Start starts the worker.
func (w *Worker) Start(ctx context.Context) error {
	if w.ctx != nil && w.stop != nil {
		return fmt.Errorf("export worker already started")
	}
	if !export.Format(w.c.Format).Valid() {
		return fmt.Errorf("unsupported export format %q", w.c.Format)
	}
	w.ctx, w.stop = context.WithCancel(ctx)
	go w.worker(w.ctx)
	return nil
}

// Stop stops the worker gracefully.
func (w *Worker) Stop() error {
	if w.stop == nil {
		return fmt.Errorf("export worker already stopped or not started")
	}
	w.stop()
	w.stop = nil
	return nil
}
