// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/worker/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juju/moduledeployer/caas"
	"github.com/juju/moduledeployer/cmd"
	"github.com/juju/moduledeployer/internal/worker/statusmonitor"
)

const monitorDoc = `
Monitor polls the status of every module and serves prometheus metrics on
/metrics and the last observed states on /healthz until interrupted.
`

type monitorCommand struct {
	cmd.CommandBase
	config *deployerConfig

	interval time.Duration
	listen   string
}

func (c *monitorCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "monitor",
		Purpose: "Watch module states and serve metrics.",
		Doc:     monitorDoc,
	}
}

func (c *monitorCommand) SetFlags(f *gnuflag.FlagSet) {
	f.DurationVar(&c.interval, "interval", statusmonitor.DefaultInterval, "Time between two status polls")
	f.StringVar(&c.listen, "listen", ":9090", "Address to serve metrics on")
}

func (c *monitorCommand) Init(args []string) error {
	if c.interval <= 0 {
		return errors.NotValidf("interval %v", c.interval)
	}
	return cmd.CheckEmpty(args)
}

func (c *monitorCommand) Run(ctx *cmd.Context) error {
	deployer, err := c.config.Deployer(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	operations := caas.NewMetricsCollector()
	states := statusmonitor.NewMetricsCollector()
	registry.MustRegister(operations, states)

	w, err := statusmonitor.NewWorker(statusmonitor.Config{
		Deployer:  caas.NewInstrumentedDeployer(deployer, operations),
		Collector: states,
		Clock:     clock.WallClock,
		Interval:  c.interval,
	})
	if err != nil {
		return errors.Trace(err)
	}
	defer func() { _ = worker.Stop(w) }()
	reporter, ok := w.(healthReporter)
	if !ok {
		return errors.Errorf("status monitor %T does not report", w)
	}

	listener, err := net.Listen("tcp", c.listen)
	if err != nil {
		return errors.Annotatef(err, "listening on %q", c.listen)
	}
	server := &http.Server{
		Handler:           newMonitorRouter(registry, reporter),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Serve(listener)
	}()
	ctx.Infof("serving metrics on %s", listener.Addr())

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
	case err := <-serverErr:
		runErr = errors.Annotate(err, "serving metrics")
	case <-waitChan(w):
		runErr = errors.Annotate(w.Wait(), "status monitor stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = errors.Trace(err)
	}
	return runErr
}

func waitChan(w worker.Worker) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		_ = w.Wait()
		close(done)
	}()
	return done
}

type healthReporter interface {
	Report() map[string]interface{}
}

// newMonitorRouter routes the metrics and health endpoints.
func newMonitorRouter(gatherer prometheus.Gatherer, reporter healthReporter) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reporter.Report()); err != nil {
			logger.Warningf("writing health report: %v", err)
		}
	}).Methods(http.MethodGet)
	return router
}
