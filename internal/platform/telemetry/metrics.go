package telemetry

import "go.opentelemetry.io/otel/metric"

// Metrics holds the HTTP instruments.
type Metrics struct {
	RequestDuration metric.Float64Histogram
	RequestCount    metric.Int64Counter
	ActiveRequests  metric.Int64UpDownCounter
}

// NewMetrics creates all metric instruments from the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.RequestDuration, err = meter.Float64Histogram("todo.http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.RequestCount, err = meter.Int64Counter("todo.http.requests",
		metric.WithDescription("HTTP requests served"),
	)
	if err != nil {
		return nil, err
	}

	m.ActiveRequests, err = meter.Int64UpDownCounter("todo.http.active_requests",
		metric.WithDescription("HTTP requests currently in flight"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}
