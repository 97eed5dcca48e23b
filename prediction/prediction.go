// Package prediction models the scheduling-insight feed shown on the
// dashboard. The real predictive backend is an external collaborator; the
// providers here are explicit stand-ins so callers depend on a port, not on
// random numbers sprinkled through view code.
package prediction

import (
	"context"
	"math/rand"

	"github.com/mariia-hub/booking-reports/entity"
)

// Provider serves schedule insights for a reporting period.
type Provider interface {
	ScheduleInsights(ctx context.Context, period entity.TimeRange) ([]entity.ScheduleInsight, error)
}

// Static always returns the same insights. Deterministic test double.
type Static struct {
	Insights []entity.ScheduleInsight
}

func (s *Static) ScheduleInsights(_ context.Context, _ entity.TimeRange) ([]entity.ScheduleInsight, error) {
	return s.Insights, nil
}

var seededLabels = []struct {
	label  string
	detail string
}{
	{"peak demand expected", "evening slots are filling faster than the weekly average"},
	{"utilization trending up", "provider calendars show fewer open slots than last period"},
	{"cancellation risk elevated", "short-notice bookings historically cancel more often"},
	{"repeat visits likely", "returning customers dominate the selected window"},
}

// Seeded generates pseudo-random insights deterministically: the same seed
// and period always yield the same feed. It reproduces the shape of the
// legacy dashboard's mock predictions without hiding the randomness.
type Seeded struct {
	Seed int64
}

func (s *Seeded) ScheduleInsights(_ context.Context, period entity.TimeRange) ([]entity.ScheduleInsight, error) {
	rng := rand.New(rand.NewSource(s.Seed ^ period.From.Unix() ^ period.To.Unix()))
	n := 2 + rng.Intn(len(seededLabels)-1)
	insights := make([]entity.ScheduleInsight, 0, n)
	for _, i := range rng.Perm(len(seededLabels))[:n] {
		insights = append(insights, entity.ScheduleInsight{
			Label:      seededLabels[i].label,
			Detail:     seededLabels[i].detail,
			Confidence: float64(50+rng.Intn(45)) / 100,
		})
	}
	return insights, nil
}

// Disabled never returns insights. Mirrors an unconfigured provider.
type Disabled struct{}

func (Disabled) ScheduleInsights(_ context.Context, _ entity.TimeRange) ([]entity.ScheduleInsight, error) {
	return nil, nil
}
