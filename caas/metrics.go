// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package caas

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

const metricsNamespace = "moduledeployer"

const (
	opDeploy    = "deploy"
	opUndeploy  = "undeploy"
	opStatus    = "status"
	opStatusAll = "status-all"
)

// Collector is a prometheus.Collector that collects metrics about
// deployer operations.
type Collector struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "operations_total",
				Help:      "The number of deployer operations by result.",
			}, []string{"operation", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "operation_duration_seconds",
				Help:      "The time taken by deployer operations.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			}, []string{"operation"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.operations.Describe(ch)
	c.duration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.operations.Collect(ch)
	c.duration.Collect(ch)
}

func (c *Collector) observe(op string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	c.operations.WithLabelValues(op, result).Inc()
	c.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// InstrumentedDeployer records every call made through it on a Collector.
type InstrumentedDeployer struct {
	deployer  ModuleDeployer
	collector *Collector
}

// NewInstrumentedDeployer wraps deployer so its calls are observed by collector.
func NewInstrumentedDeployer(deployer ModuleDeployer, collector *Collector) *InstrumentedDeployer {
	return &InstrumentedDeployer{deployer: deployer, collector: collector}
}

// Deploy is part of the ModuleDeployer interface.
func (d *InstrumentedDeployer) Deploy(ctx context.Context, req module.DeploymentRequest) (_ module.DeploymentID, err error) {
	defer func(start time.Time) { d.collector.observe(opDeploy, start, err) }(time.Now())
	return d.deployer.Deploy(ctx, req)
}

// Undeploy is part of the ModuleDeployer interface.
func (d *InstrumentedDeployer) Undeploy(ctx context.Context, id module.DeploymentID) (err error) {
	defer func(start time.Time) { d.collector.observe(opUndeploy, start, err) }(time.Now())
	return d.deployer.Undeploy(ctx, id)
}

// Status is part of the ModuleDeployer interface.
func (d *InstrumentedDeployer) Status(ctx context.Context, id module.DeploymentID) (_ status.ModuleStatus, err error) {
	defer func(start time.Time) { d.collector.observe(opStatus, start, err) }(time.Now())
	return d.deployer.Status(ctx, id)
}

// StatusAll is part of the ModuleDeployer interface.
func (d *InstrumentedDeployer) StatusAll(ctx context.Context) (_ map[module.DeploymentID]status.ModuleStatus, err error) {
	defer func(start time.Time) { d.collector.observe(opStatusAll, start, err) }(time.Now())
	return d.deployer.StatusAll(ctx)
}
