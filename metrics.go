package formstate

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on validation activity.
type MetricsProvider interface {
	// OnValidate is called after the client validator returns. Touched is the
	// number of fields it was given and duration the time it took.
	OnValidate(touched int, duration time.Duration)

	// OnMerge is called after every merge pass with the resulting validity.
	OnMerge(valid bool)

	// OnValidityChange is called when the validity flag flips.
	OnValidityChange(from, to bool)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnValidate(_ int, _ time.Duration) {}
func (NoOpMetricsProvider) OnMerge(_ bool)                    {}
func (NoOpMetricsProvider) OnValidityChange(_, _ bool)        {}
