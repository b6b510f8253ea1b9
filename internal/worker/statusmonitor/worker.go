// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package statusmonitor

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/worker/v4"
	"github.com/juju/worker/v4/catacomb"

	"github.com/juju/moduledeployer/caas"
	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

var logger = loggo.GetLogger("moduledeployer.worker.statusmonitor")

// DefaultInterval is the time between two status polls.
const DefaultInterval = 30 * time.Second

// Config holds configuration required to run the status monitor.
type Config struct {
	// Deployer is polled for the status of every module.
	Deployer caas.ModuleDeployer

	// Collector receives the observed states.
	Collector *Collector

	// Clock is used by the worker to create timers.
	Clock clock.Clock

	// Interval is the time between two polls.
	Interval time.Duration
}

// Validate ensures that the configuration is
// correctly populated for worker operation.
func (config Config) Validate() error {
	if config.Deployer == nil {
		return errors.NotValidf("nil Deployer")
	}
	if config.Collector == nil {
		return errors.NotValidf("nil Collector")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.Interval <= 0 {
		return errors.NotValidf("non-positive Interval")
	}
	return nil
}

type monitorWorker struct {
	catacomb catacomb.Catacomb
	config   Config

	mu        sync.Mutex
	states    map[module.DeploymentID]status.State
	lastPoll  time.Time
	lastError error
}

// NewWorker starts a status monitor based on the input configuration.
func NewWorker(config Config) (worker.Worker, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	w := &monitorWorker{
		config: config,
		states: make(map[module.DeploymentID]status.State),
	}
	if err := catacomb.Invoke(catacomb.Plan{
		Site: &w.catacomb,
		Work: w.loop,
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return w, nil
}

func (w *monitorWorker) loop() error {
	ctx := w.catacomb.Context(context.Background())

	w.poll(ctx)
	timer := w.config.Clock.NewTimer(w.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-w.catacomb.Dying():
			return w.catacomb.ErrDying()
		case <-timer.Chan():
			w.poll(ctx)
			timer.Reset(w.config.Interval)
		}
	}
}

// poll records the current module states. Failures are logged and retried
// on the next tick.
func (w *monitorWorker) poll(ctx context.Context) {
	all, err := w.config.Deployer.StatusAll(ctx)
	if ctx.Err() != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastPoll = w.config.Clock.Now()
	w.lastError = err
	if err != nil {
		logger.Warningf("cannot query module status: %v", err)
		return
	}

	current := make(map[module.DeploymentID]status.State, len(all))
	for id, st := range all {
		state := st.State()
		current[id] = state
		if prev, ok := w.states[id]; !ok {
			logger.Infof("module %s found, %s", id, state)
		} else if prev != state {
			logger.Infof("module %s is %s, was %s", id, state, prev)
		}
	}
	for id := range w.states {
		if _, ok := current[id]; !ok {
			logger.Infof("module %s is gone", id)
		}
	}
	w.states = current
	w.config.Collector.update(current)
}

// Report is shown in the monitor health output.
func (w *monitorWorker) Report() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	modules := make(map[string]interface{}, len(w.states))
	for id, st := range w.states {
		modules[id.String()] = st.String()
	}
	report := map[string]interface{}{
		"modules": modules,
	}
	if !w.lastPoll.IsZero() {
		report["last-poll"] = w.lastPoll.UTC().Format(time.RFC3339)
	}
	if w.lastError != nil {
		report["last-error"] = w.lastError.Error()
	}
	return report
}

// Kill (worker.Worker) tells the worker to stop and return from its loop.
func (w *monitorWorker) Kill() {
	w.catacomb.Kill(nil)
}

// Wait (worker.Worker) waits for the worker to stop,
// and returns the error with which it exited.
func (w *monitorWorker) Wait() error {
	return w.catacomb.Wait()
}
