package launch

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/rah-0/launchpad/internal/launch"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics are recorded against the global OTel meter (no-op if not configured).
type metrics struct {
	created     metric.Int64Counter
	transitions metric.Int64Counter
	faults      metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	m := meter()
	var (
		out metrics
		err error
	)

	out.created, err = m.Int64Counter(
		"launch.created",
		metric.WithDescription("Total launches created"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating created counter: %w", err)
	}

	out.transitions, err = m.Int64Counter(
		"launch.transitions",
		metric.WithDescription("Total launch state transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	out.faults, err = m.Int64Counter(
		"launch.faults",
		metric.WithDescription("Total launches that entered the FAULT path"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating faults counter: %w", err)
	}

	return &out, nil
}
