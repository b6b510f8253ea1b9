// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package caas

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/retry"

	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

var logger = loggo.GetLogger("moduledeployer.caas")

// DefaultWaitDelay is the time between status polls.
const DefaultWaitDelay = 2 * time.Second

// WaitArgs holds the arguments to WaitForState.
type WaitArgs struct {
	Deployer ModuleDeployer
	ID       module.DeploymentID
	State    status.State

	// Delay is the time between polls; DefaultWaitDelay if zero.
	Delay time.Duration

	// MaxDuration bounds the total wait. Attempts bounds the number of polls.
	// At least one of them must be set.
	MaxDuration time.Duration
	Attempts    int

	Clock clock.Clock
}

// Validate checks the arguments are usable.
func (a WaitArgs) Validate() error {
	if a.Deployer == nil {
		return errors.NotValidf("nil Deployer")
	}
	if a.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if err := a.ID.Validate(); err != nil {
		return errors.Trace(err)
	}
	if _, err := status.ParseState(a.State.String()); err != nil {
		return errors.Trace(err)
	}
	if a.MaxDuration <= 0 && a.Attempts <= 0 {
		return errors.NotValidf("wait without MaxDuration or Attempts")
	}
	return nil
}

type stateMismatch struct {
	id   module.DeploymentID
	have status.State
	want status.State
}

func (e *stateMismatch) Error() string {
	return "module " + e.id.String() + " is " + e.have.String() + ", waiting for " + e.want.String()
}

// WaitForState polls the deployer until the deployment reaches the wanted
// state and returns the matching status. A Timeout error is returned when
// the poll budget runs out.
func WaitForState(ctx context.Context, args WaitArgs) (status.ModuleStatus, error) {
	if err := args.Validate(); err != nil {
		return status.ModuleStatus{}, errors.Trace(err)
	}
	delay := args.Delay
	if delay <= 0 {
		delay = DefaultWaitDelay
	}
	var last status.ModuleStatus
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			st, err := args.Deployer.Status(ctx, args.ID)
			if err != nil {
				return errors.Trace(err)
			}
			last = st
			if have := st.State(); have != args.State {
				return &stateMismatch{id: args.ID, have: have, want: args.State}
			}
			return nil
		},
		IsFatalError: func(err error) bool {
			_, retryable := errors.Cause(err).(*stateMismatch)
			return !retryable
		},
		NotifyFunc: func(err error, attempt int) {
			logger.Debugf("attempt %d: %v", attempt, err)
		},
		Attempts:    args.Attempts,
		Delay:       delay,
		MaxDuration: args.MaxDuration,
		Clock:       args.Clock,
		Stop:        ctx.Done(),
	})
	if err == nil {
		return last, nil
	}
	// A done context wins over an exhausted budget.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return last, errors.Trace(ctxErr)
	}
	switch {
	case retry.IsRetryStopped(err):
		return last, errors.Trace(context.Canceled)
	case retry.IsAttemptsExceeded(err), retry.IsDurationExceeded(err):
		return last, errors.NewTimeout(retry.LastError(err), "waiting for module "+args.ID.String())
	}
	return last, errors.Trace(err)
}
