// Package bizprom counts combinator calls with Prometheus.
package bizprom

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ib-77/fnexec/pkg/biz"
)

const (
	OutcomePass   = "pass"
	OutcomeReject = "reject"
	OutcomeFault  = "fault"
	OutcomeSkip   = "skip"
)

// Metrics holds the collectors behind the hooks.
type Metrics struct {
	steps *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Total number of chain steps by step kind and outcome",
			},
			[]string{"step", "outcome"},
		),
	}
	if reg != nil {
		if err := reg.Register(m.steps); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Steps exposes the counter, e.g. for testutil.
func (m *Metrics) Steps() *prometheus.CounterVec {
	return m.steps
}

// Hooks returns biz hooks that increment the counter.
func (m *Metrics) Hooks() biz.Hooks {
	return biz.Hooks{
		OnPass:   m.count(OutcomePass),
		OnReject: m.count(OutcomeReject),
		OnFault:  m.count(OutcomeFault),
		OnSkip:   m.count(OutcomeSkip),
	}
}

// Option is shorthand for biz.WithHooks(m.Hooks()).
func (m *Metrics) Option() biz.Option {
	return biz.WithHooks(m.Hooks())
}

func (m *Metrics) count(outcome string) func(context.Context, *biz.StepEvent) {
	return func(_ context.Context, e *biz.StepEvent) {
		m.steps.WithLabelValues(string(e.Step), outcome).Inc()
	}
}
