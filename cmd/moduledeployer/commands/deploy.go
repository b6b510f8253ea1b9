// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/moduledeployer/cmd"
	"github.com/juju/moduledeployer/core/module"
)

const deployDoc = `
Deploy runs a module identified by its maven coordinates. The module is
named by its group and label; the label defaults to the module name.

A service is created when the module names a port with the "port" or
"server.port" parameter. The "count" property sets the number of instances.

Examples:
    moduledeployer deploy --coordinates org.springframework.cloud.stream.module:time-source:1.0.0 \
        --group ticktock --name time --param fixedDelay=5 --property count=2
`

type deployCommand struct {
	cmd.CommandBase
	config *deployerConfig

	coordinates string
	group       string
	label       string
	name        string
	params      keyValues
	props       keyValues

	request module.DeploymentRequest
}

func (c *deployCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "deploy",
		Purpose: "Deploy a module.",
		Doc:     deployDoc,
	}
}

func (c *deployCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.coordinates, "coordinates", "", "Module coordinates group:artifact[:extension[:classifier]]:version")
	f.StringVar(&c.group, "group", "", "The group the module belongs to")
	f.StringVar(&c.label, "label", "", "The module label, defaults to the name")
	f.StringVar(&c.name, "name", "", "The module name")
	f.Var(&c.params, "param", "A module parameter key=value, may be repeated")
	f.Var(&c.props, "property", "A deployment property key=value, may be repeated")
}

func (c *deployCommand) Init(args []string) error {
	if err := cmd.CheckEmpty(args); err != nil {
		return err
	}
	if c.coordinates == "" {
		return errors.New("--coordinates is required")
	}
	if c.name == "" {
		return errors.New("--name is required")
	}
	coords, err := module.ParseCoordinates(c.coordinates)
	if err != nil {
		return errors.Trace(err)
	}
	def := module.Definition{
		Name:       c.name,
		Group:      c.group,
		Label:      c.label,
		Parameters: c.params,
	}
	if c.request, err = module.NewDeploymentRequest(def, coords, c.props); err != nil {
		return errors.Trace(err)
	}
	return nil
}

func (c *deployCommand) Run(ctx *cmd.Context) error {
	deployer, err := c.config.Deployer(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	id, err := deployer.Deploy(ctx, c.request)
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintln(ctx.Stdout, id)
	return nil
}
