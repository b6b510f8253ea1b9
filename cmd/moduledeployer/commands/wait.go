// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/moduledeployer/caas"
	"github.com/juju/moduledeployer/cmd"
	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

const defaultWaitTimeout = 5 * time.Minute

type waitCommand struct {
	cmd.CommandBase
	config *deployerConfig
	clock  clock.Clock

	id      module.DeploymentID
	state   string
	timeout time.Duration
	delay   time.Duration
	want    status.State
}

func (c *waitCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "wait",
		Args:    "<group.label>",
		Purpose: "Wait for a module to reach a state.",
		Doc:     "Wait polls the status of a module until its aggregate state matches\n--state, failing when --timeout passes first.",
	}
}

func (c *waitCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.state, "state", string(status.Deployed), "The state to wait for")
	f.DurationVar(&c.timeout, "timeout", defaultWaitTimeout, "How long to wait")
	f.DurationVar(&c.delay, "poll-interval", caas.DefaultWaitDelay, "Time between two status queries")
}

func (c *waitCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no module specified")
	}
	id, err := module.ParseDeploymentID(args[0])
	if err != nil {
		return errors.Trace(err)
	}
	c.id = id
	if c.want, err = status.ParseState(c.state); err != nil {
		return errors.Trace(err)
	}
	if c.timeout <= 0 {
		return errors.NotValidf("timeout %v", c.timeout)
	}
	return cmd.CheckEmpty(args[1:])
}

func (c *waitCommand) Run(ctx *cmd.Context) error {
	deployer, err := c.config.Deployer(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	clk := c.clock
	if clk == nil {
		clk = clock.WallClock
	}
	st, err := caas.WaitForState(ctx, caas.WaitArgs{
		Deployer:    deployer,
		ID:          c.id,
		State:       c.want,
		Delay:       c.delay,
		MaxDuration: c.timeout,
		Clock:       clk,
	})
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(ctx.Stdout, "%s %s\n", st.ID, st.State())
	return nil
}
