package metrics_fx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"tripwise/pkg/metrics"
)

var Module = fx.Provide(
	provideRegistry,
	metrics.New,
)

// provideRegistry builds a private registry with the Go runtime and process
// collectors. It is served on /metrics.
func provideRegistry() (*prometheus.Registry, prometheus.Registerer) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, reg
}
