// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/errors"

	"github.com/juju/moduledeployer/cmd"
	"github.com/juju/moduledeployer/core/module"
)

type undeployCommand struct {
	cmd.CommandBase
	config *deployerConfig

	id module.DeploymentID
}

func (c *undeployCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "undeploy",
		Args:    "<group.label>",
		Purpose: "Remove a deployed module.",
		Doc:     "Undeploy deletes the replication controller and the service of a module.\nUndeploying a missing module is not an error.",
	}
}

func (c *undeployCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no module specified")
	}
	id, err := module.ParseDeploymentID(args[0])
	if err != nil {
		return errors.Trace(err)
	}
	c.id = id
	return cmd.CheckEmpty(args[1:])
}

func (c *undeployCommand) Run(ctx *cmd.Context) error {
	deployer, err := c.config.Deployer(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	if err := deployer.Undeploy(ctx, c.id); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("undeployed %s", c.id)
	return nil
}
