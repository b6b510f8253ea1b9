// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package statusmonitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

const (
	metricsNamespace = "moduledeployer"
)

// Collector publishes the last observed module states.
type Collector struct {
	moduleState *prometheus.GaugeVec
	modules     *prometheus.GaugeVec
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		moduleState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "module_state",
			Help:      "The aggregate state of each deployed module, 1 for the current state.",
		}, []string{"id", "state"}),
		modules: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "modules",
			Help:      "The number of deployed modules in each state.",
		}, []string{"state"}),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.moduleState.Describe(ch)
	c.modules.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.moduleState.Collect(ch)
	c.modules.Collect(ch)
}

func (c *Collector) update(states map[module.DeploymentID]status.State) {
	c.moduleState.Reset()
	counts := make(map[status.State]int)
	for id, st := range states {
		c.moduleState.WithLabelValues(id.String(), st.String()).Set(1)
		counts[st]++
	}
	for _, st := range status.AllStates() {
		c.modules.WithLabelValues(st.String()).Set(float64(counts[st]))
	}
}
