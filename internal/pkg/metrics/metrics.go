package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service counters as explicit named fields. Constructed
// once in main and injected where needed; no package-level default registry.
type Metrics struct {
	Registry *prometheus.Registry

	ParseRuns       prometheus.Counter
	ParseEntries    prometheus.Counter
	ParseErrors     prometheus.Counter
	UnmatchedNames  prometheus.Counter
	FallbackCalls   prometheus.Counter
	ImportsCreated  prometheus.Counter
	PayrollRuns     prometheus.Counter
	ExportsRendered prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		ParseRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_parse_runs_total",
			Help: "Number of attendance text parse runs.",
		}),
		ParseEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_parse_entries_total",
			Help: "Number of parsed attendance entries.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_parse_errors_total",
			Help: "Number of advisory parse errors recorded.",
		}),
		UnmatchedNames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_unmatched_names_total",
			Help: "Number of raw names that matched no roster entry.",
		}),
		FallbackCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_fallback_calls_total",
			Help: "Number of external-model fallback invocations.",
		}),
		ImportsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_imports_created_total",
			Help: "Number of persisted attendance imports.",
		}),
		PayrollRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payroll_runs_total",
			Help: "Number of payroll summarization runs.",
		}),
		ExportsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payroll_exports_rendered_total",
			Help: "Number of payroll export files rendered.",
		}),
	}

	reg.MustRegister(
		m.ParseRuns, m.ParseEntries, m.ParseErrors, m.UnmatchedNames,
		m.FallbackCalls, m.ImportsCreated, m.PayrollRuns, m.ExportsRendered,
	)

	return m
}
